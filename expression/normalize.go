package expression

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// basedLiteral matches a sized or unsized SystemVerilog based literal such as
// 8'hFF, 'b1010 or 16'sd42.
var basedLiteral = regexp.MustCompile(`^(?:[0-9][0-9_]*)?\s*'[sS]?([bBoOdDhH])\s*([0-9a-fA-F_xXzZ?]+)`)

// normalize rewrites SystemVerilog syntax that the ECMAScript grammar does not
// know into an equivalent form: based literals become decimal numbers,
// concatenations and assignment patterns become array literals and digit
// separators are dropped. String literals are copied verbatim.
func normalize(expr string) (string, error) {
	var b strings.Builder
	b.Grow(len(expr) + 8)

	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == '"':
			end := closingQuote(expr, i)
			if end < 0 {
				return "", fmt.Errorf("unterminated string literal at offset %d", i)
			}
			b.WriteString(expr[i : end+1])
			i = end + 1

		case isIdentStart(c):
			j := i + 1
			for j < len(expr) && isIdentPart(expr[j]) {
				j++
			}
			b.WriteString(expr[i:j])
			i = j

		case isDigit(c) || c == '\'':
			if m := basedLiteral.FindStringSubmatch(expr[i:]); m != nil {
				v, err := basedValue(m[1], m[2])
				if err != nil {
					return "", err
				}
				b.WriteString(strconv.FormatUint(v, 10))
				i += len(m[0])
				continue
			}
			if c == '\'' {
				// '{...} assignment pattern
				if i+1 < len(expr) && expr[i+1] == '{' {
					i++
					continue
				}
				return "", fmt.Errorf("unexpected quote at offset %d", i)
			}
			j := i
			var digits []byte
			for j < len(expr) && (isDigit(expr[j]) || expr[j] == '_') {
				if expr[j] != '_' {
					digits = append(digits, expr[j])
				}
				j++
			}
			// Leading zeros would read as a legacy octal literal. Fraction
			// digits and reals keep theirs.
			fraction := i > 0 && expr[i-1] == '.'
			if !fraction && (j == len(expr) || (expr[j] != '.' && expr[j] != 'e' && expr[j] != 'E')) {
				for len(digits) > 1 && digits[0] == '0' {
					digits = digits[1:]
				}
			}
			b.Write(digits)
			i = j

		case c == '{':
			b.WriteByte('[')
			i++

		case c == '}':
			b.WriteByte(']')
			i++

		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

func basedValue(base, digits string) (uint64, error) {
	digits = strings.ReplaceAll(digits, "_", "")
	if strings.ContainsAny(digits, "xXzZ?") {
		return 0, fmt.Errorf("literal %q contains unknown bits", digits)
	}
	radix := 10
	switch base {
	case "b", "B":
		radix = 2
	case "o", "O":
		radix = 8
	case "h", "H":
		radix = 16
	}
	v, err := strconv.ParseUint(digits, radix, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid base-%d literal %q: %w", radix, digits, err)
	}
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("literal %q out of range", digits)
	}
	return v, nil
}

func closingQuote(s string, open int) int {
	for j := open + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j
		}
	}
	return -1
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
