package expression

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/dop251/goja/token"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrOperandType    = errors.New("operand type not supported by operator")
	ErrOverflow       = errors.New("result does not fit in 64 bits")
)

type kind int

const (
	kindInt kind = iota
	kindReal
	kindString
	kindArray
)

// value is an evaluated operand. Integers follow SystemVerilog 64-bit
// arithmetic, reals are IEEE doubles.
type value struct {
	kind  kind
	i     int64
	f     float64
	s     string
	items []value
}

func intValue(i int64) value     { return value{kind: kindInt, i: i} }
func realValue(f float64) value  { return value{kind: kindReal, f: f} }
func stringValue(s string) value { return value{kind: kindString, s: s} }

func boolValue(b bool) value {
	if b {
		return intValue(1)
	}
	return intValue(0)
}

func (v value) String() string {
	switch v.kind {
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindReal:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case kindString:
		return `"` + v.s + `"`
	}
	parts := make([]string, len(v.items))
	for i, item := range v.items {
		parts[i] = item.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func (v value) numeric() bool { return v.kind == kindInt || v.kind == kindReal }

func (v value) float() float64 {
	if v.kind == kindInt {
		return float64(v.i)
	}
	return v.f
}

func (v value) truthy() (bool, error) {
	switch v.kind {
	case kindInt:
		return v.i != 0, nil
	case kindReal:
		return v.f != 0, nil
	}
	return false, ErrOperandType
}

func binary(op token.Token, l, r value) (value, error) {
	if l.kind == kindString || r.kind == kindString {
		return stringBinary(op, l, r)
	}
	if !l.numeric() || !r.numeric() {
		return value{}, ErrOperandType
	}
	ints := l.kind == kindInt && r.kind == kindInt

	switch op {
	case token.PLUS:
		if ints {
			return checked(addInt(l.i, r.i))
		}
		return realValue(l.float() + r.float()), nil
	case token.MINUS:
		if ints {
			return checked(subInt(l.i, r.i))
		}
		return realValue(l.float() - r.float()), nil
	case token.MULTIPLY:
		if ints {
			return checked(mulInt(l.i, r.i))
		}
		return realValue(l.float() * r.float()), nil
	case token.SLASH:
		if r.float() == 0 {
			return value{}, ErrDivisionByZero
		}
		if ints {
			if l.i == math.MinInt64 && r.i == -1 {
				return value{}, ErrOverflow
			}
			return intValue(l.i / r.i), nil
		}
		return realValue(l.float() / r.float()), nil
	case token.REMAINDER:
		if !ints {
			return value{}, ErrOperandType
		}
		if r.i == 0 {
			return value{}, ErrDivisionByZero
		}
		return intValue(l.i % r.i), nil
	case token.EXPONENT:
		return power(l, r)
	case token.SHIFT_LEFT, token.SHIFT_RIGHT, token.UNSIGNED_SHIFT_RIGHT:
		if !ints || r.i < 0 {
			return value{}, ErrOperandType
		}
		if op == token.SHIFT_LEFT {
			return checked(shiftLeft(l.i, r.i))
		}
		return intValue(l.i >> uint64(r.i)), nil
	case token.AND, token.OR, token.EXCLUSIVE_OR:
		if !ints {
			return value{}, ErrOperandType
		}
		switch op {
		case token.AND:
			return intValue(l.i & r.i), nil
		case token.OR:
			return intValue(l.i | r.i), nil
		}
		return intValue(l.i ^ r.i), nil
	case token.LOGICAL_AND, token.LOGICAL_OR:
		lt, _ := l.truthy()
		rt, _ := r.truthy()
		if op == token.LOGICAL_AND {
			return boolValue(lt && rt), nil
		}
		return boolValue(lt || rt), nil
	case token.EQUAL, token.STRICT_EQUAL:
		if ints {
			return boolValue(l.i == r.i), nil
		}
		return boolValue(l.float() == r.float()), nil
	case token.NOT_EQUAL, token.STRICT_NOT_EQUAL:
		if ints {
			return boolValue(l.i != r.i), nil
		}
		return boolValue(l.float() != r.float()), nil
	case token.LESS:
		if ints {
			return boolValue(l.i < r.i), nil
		}
		return boolValue(l.float() < r.float()), nil
	case token.LESS_OR_EQUAL:
		if ints {
			return boolValue(l.i <= r.i), nil
		}
		return boolValue(l.float() <= r.float()), nil
	case token.GREATER:
		if ints {
			return boolValue(l.i > r.i), nil
		}
		return boolValue(l.float() > r.float()), nil
	case token.GREATER_OR_EQUAL:
		if ints {
			return boolValue(l.i >= r.i), nil
		}
		return boolValue(l.float() >= r.float()), nil
	}
	return value{}, ErrOperandType
}

func stringBinary(op token.Token, l, r value) (value, error) {
	if l.kind != kindString || r.kind != kindString {
		return value{}, ErrOperandType
	}
	switch op {
	case token.EQUAL, token.STRICT_EQUAL:
		return boolValue(l.s == r.s), nil
	case token.NOT_EQUAL, token.STRICT_NOT_EQUAL:
		return boolValue(l.s != r.s), nil
	}
	return value{}, ErrOperandType
}

func power(base, exp value) (value, error) {
	if !base.numeric() || !exp.numeric() {
		return value{}, ErrOperandType
	}
	if base.kind == kindInt && exp.kind == kindInt {
		if exp.i >= 0 {
			return checked(powInt(base.i, exp.i))
		}
		if base.i == 0 {
			return value{}, ErrDivisionByZero
		}
	}
	f := math.Pow(base.float(), exp.float())
	if math.IsInf(f, 0) {
		return value{}, ErrOverflow
	}
	if math.IsNaN(f) {
		return value{}, ErrOperandType
	}
	return realValue(f), nil
}

func checked(i int64, ok bool) (value, error) {
	if !ok {
		return value{}, ErrOverflow
	}
	return intValue(i), nil
}

func addInt(a, b int64) (int64, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func subInt(a, b int64) (int64, bool) {
	c := a - b
	return c, (c < a) == (b > 0)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return c, true
}

func shiftLeft(a, n int64) (int64, bool) {
	if a == 0 {
		return 0, true
	}
	if n >= 63 {
		return 0, false
	}
	c := a << uint64(n)
	return c, c>>uint64(n) == a
}

// powInt squares and multiplies, so the work grows with the bit length of
// the exponent.
func powInt(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		var ok bool
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

func unary(op token.Token, v value) (value, error) {
	switch op {
	case token.MINUS:
		switch v.kind {
		case kindInt:
			if v.i == math.MinInt64 {
				return value{}, ErrOverflow
			}
			return intValue(-v.i), nil
		case kindReal:
			return realValue(-v.f), nil
		}
	case token.PLUS:
		if v.numeric() {
			return v, nil
		}
	case token.NOT:
		t, err := v.truthy()
		if err != nil {
			return value{}, err
		}
		return boolValue(!t), nil
	case token.BITWISE_NOT:
		if v.kind == kindInt {
			return intValue(^v.i), nil
		}
	}
	return value{}, ErrOperandType
}

// clog2 is the ceiling of the base-2 logarithm; 0 and 1 yield 0.
func clog2(v value) (value, error) {
	if !v.numeric() || v.float() < 0 {
		return value{}, ErrOperandType
	}
	n, bits := v.float(), int64(0)
	for n > 1 {
		n /= 2
		bits++
	}
	return intValue(bits), nil
}
