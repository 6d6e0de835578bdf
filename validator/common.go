package validator

import (
	"fmt"
	"strconv"
	"strings"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// ExpressionParser evaluates the expressions stored in the document model.
// ok is false when the expression cannot be evaluated at all; a successful
// evaluation may still yield a value of the wrong kind.
type ExpressionParser interface {
	Parse(expr string) (value string, ok bool)
}

// hasValidName requires at least one non-space character.
func hasValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

func evalUint(p ExpressionParser, expr string) (uint64, bool) {
	v, ok := p.Parse(expr)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	return n, err == nil
}

func evalInt(p ExpressionParser, expr string) (int64, bool) {
	v, ok := p.Parse(expr)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	return n, err == nil
}

func evalFloat(p ExpressionParser, expr string) (float64, bool) {
	v, ok := p.Parse(expr)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}

// isValidIsPresent accepts an empty expression or one evaluating to 0 or 1.
func isValidIsPresent(p ExpressionParser, expr string) bool {
	if strings.TrimSpace(expr) == "" {
		return true
	}
	n, ok := evalInt(p, expr)
	return ok && (n == 0 || n == 1)
}

// isPresent treats an empty expression as present.
func isPresent(p ExpressionParser, expr string) bool {
	if strings.TrimSpace(expr) == "" {
		return true
	}
	n, ok := evalInt(p, expr)
	return ok && n == 1
}

// withArticle prefixes term with "a" or "an".
func withArticle(term string) string {
	if term != "" && strings.ContainsRune("aeiouAEIOU", rune(term[0])) {
		return "an " + term
	}
	return "a " + term
}

func isBoolString(s string) bool {
	return s == "" || s == "true" || s == "false"
}

// duplicates returns every name that occurs more than once, once each, in
// the order the repetitions are found.
func duplicates(names []string) []string {
	seen := make(map[string]bool, len(names))
	reported := map[string]bool{}
	var out []string
	for _, n := range names {
		if seen[n] && !reported[n] {
			out = append(out, n)
			reported[n] = true
		}
		seen[n] = true
	}
	return out
}

func parameterNames(params []*ipxact.Parameter) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// hasValidParameters checks parameter name uniqueness and each parameter.
func hasValidParameters(v *ParameterValidator, params []*ipxact.Parameter) bool {
	if len(duplicates(parameterNames(params))) > 0 {
		return false
	}
	for _, p := range params {
		if !v.Validate(p) {
			return false
		}
	}
	return true
}

func findErrorsInParameters(errs []string, v *ParameterValidator, params []*ipxact.Parameter, context string) []string {
	for _, name := range duplicates(parameterNames(params)) {
		errs = append(errs, fmt.Sprintf("Name %s of parameters in %s is not unique.", name, context))
	}
	for _, p := range params {
		errs = v.FindErrorsIn(errs, p, context)
	}
	return errs
}

// modeRefChecker validates 2022 mode references. References must be unique
// across every sibling checked with the same checker.
type modeRefChecker struct {
	seen  map[string]bool
	modes map[string]*ipxact.Mode
}

func newModeRefChecker(modes map[string]*ipxact.Mode) *modeRefChecker {
	return &modeRefChecker{seen: map[string]bool{}, modes: modes}
}

// known reports whether ref names a component mode. Components without any
// modes accept every reference.
func (m *modeRefChecker) known(ref string) bool {
	if len(m.modes) == 0 {
		return true
	}
	_, ok := m.modes[ref]
	return ok
}

func (m *modeRefChecker) valid(refs []ipxact.ModeReference) bool {
	ok := true
	for _, r := range refs {
		if r.Reference == "" || m.seen[r.Reference] || !m.known(r.Reference) {
			ok = false
		}
		if r.Reference != "" {
			m.seen[r.Reference] = true
		}
	}
	return ok
}

func (m *modeRefChecker) findErrors(errs []string, refs []ipxact.ModeReference, element, context string) []string {
	for _, r := range refs {
		switch {
		case r.Reference == "":
			errs = append(errs, fmt.Sprintf("Empty mode reference value set for %s in %s", element, context))
		case m.seen[r.Reference]:
			errs = append(errs, fmt.Sprintf("Duplicate mode reference value %s set for %s in %s", r.Reference, element, context))
		case !m.known(r.Reference):
			errs = append(errs, fmt.Sprintf("Mode %s referenced in %s within %s does not exist", r.Reference, element, context))
		}
		if r.Reference != "" {
			m.seen[r.Reference] = true
		}
	}
	return errs
}
