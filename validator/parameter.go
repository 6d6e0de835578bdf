package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

var (
	parameterTypes = regexp.MustCompile(`^(bit|byte|shortint|int|longint|shortreal|real|string)?$`)
	stringLiteral  = regexp.MustCompile(`^\s*".*"\s*$`)
)

// ParameterValidator checks a single parameter. It is the leaf shared by
// every other validator.
type ParameterValidator struct {
	parser ExpressionParser
	index  *ipxact.Index
}

// NewParameterValidator returns a validator that resolves values with parser.
func NewParameterValidator(parser ExpressionParser) *ParameterValidator {
	return &ParameterValidator{parser: parser, index: ipxact.NewIndex(nil)}
}

// ComponentChange refreshes the available choices and the revision.
func (v *ParameterValidator) ComponentChange(c *ipxact.Component) {
	v.setIndex(ipxact.NewIndex(c))
}

func (v *ParameterValidator) setIndex(idx *ipxact.Index) { v.index = idx }

// Validate reports whether p passes every parameter check.
func (v *ParameterValidator) Validate(p *ipxact.Parameter) bool {
	return v.HasValidName(p) &&
		v.HasValidValue(p) &&
		v.HasValidType(p) &&
		v.HasValidChoice(p) &&
		v.HasValidResolve(p) &&
		v.HasValidValueID(p) &&
		v.HasValidVectors(p)
}

func (v *ParameterValidator) HasValidName(p *ipxact.Parameter) bool {
	return hasValidName(p.Name)
}

// HasValidValue requires a value that suits the type, respects the bounds
// and, when a choice is referenced, is one of its enumerations.
func (v *ParameterValidator) HasValidValue(p *ipxact.Parameter) bool {
	return p.Value != "" &&
		v.HasValidValueForType(p.Value, p.Type) &&
		!v.ValueIsLessThanMinimum(p) &&
		!v.ValueIsGreaterThanMaximum(p) &&
		v.HasValidValueForChoice(p)
}

// HasValidValueForType reports whether value evaluates to a literal of the
// given type. An untyped value is accepted as is.
func (v *ParameterValidator) HasValidValueForType(value, typ string) bool {
	if typ == "" {
		return true
	}
	solved, ok := v.parser.Parse(value)
	if !ok {
		return false
	}
	for _, item := range arrayItems(solved) {
		if !literalMatchesType(item, typ) {
			return false
		}
	}
	return true
}

func literalMatchesType(literal, typ string) bool {
	switch typ {
	case "bit":
		_, err := strconv.ParseInt(literal, 10, 64)
		return err == nil
	case "byte":
		n, err := strconv.ParseInt(literal, 10, 64)
		return err == nil && n >= -128 && n <= 127
	case "shortint":
		_, err := strconv.ParseInt(literal, 10, 16)
		return err == nil
	case "int":
		_, err := strconv.ParseInt(literal, 10, 32)
		return err == nil
	case "longint":
		if strings.HasPrefix(literal, "-") {
			_, err := strconv.ParseInt(literal, 10, 64)
			return err == nil
		}
		_, err := strconv.ParseUint(literal, 10, 64)
		return err == nil
	case "shortreal":
		_, err := strconv.ParseFloat(literal, 32)
		return err == nil
	case "real":
		_, err := strconv.ParseFloat(literal, 64)
		return err == nil
	case "string":
		return stringLiteral.MatchString(literal)
	}
	return false
}

// arrayItems splits an evaluated {a,b,c} array into its items. Scalars are
// returned as a single item.
func arrayItems(solved string) []string {
	if !strings.HasPrefix(solved, "{") || !strings.HasSuffix(solved, "}") {
		return []string{solved}
	}
	inner := solved[1 : len(solved)-1]
	var items []string
	depth, start := 0, 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				items = append(items, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	return append(items, strings.TrimSpace(inner[start:]))
}

func boundsApply(p *ipxact.Parameter) bool {
	return p.Type != "bit" && p.Type != "string"
}

func (v *ParameterValidator) ValueIsLessThanMinimum(p *ipxact.Parameter) bool {
	if p.Minimum == "" || !boundsApply(p) {
		return false
	}
	value, ok := evalFloat(v.parser, p.Value)
	minimum, minOK := evalFloat(v.parser, p.Minimum)
	return ok && minOK && value < minimum
}

func (v *ParameterValidator) ValueIsGreaterThanMaximum(p *ipxact.Parameter) bool {
	if p.Maximum == "" || !boundsApply(p) {
		return false
	}
	value, ok := evalFloat(v.parser, p.Value)
	maximum, maxOK := evalFloat(v.parser, p.Maximum)
	return ok && maxOK && value > maximum
}

// HasValidValueForChoice checks the value against the referenced choice.
// A missing choice is reported by HasValidChoice instead.
func (v *ParameterValidator) HasValidValueForChoice(p *ipxact.Parameter) bool {
	if p.ChoiceRef == "" {
		return true
	}
	choice, ok := v.index.Choices[p.ChoiceRef]
	if !ok {
		return true
	}
	if choice.HasEnumeration(p.Value) {
		return true
	}
	solved, ok := v.parser.Parse(p.Value)
	if !ok {
		return false
	}
	for _, item := range arrayItems(solved) {
		if !choice.HasEnumeration(item) {
			return false
		}
	}
	return true
}

func (v *ParameterValidator) HasValidType(p *ipxact.Parameter) bool {
	return parameterTypes.MatchString(p.Type)
}

// HasValidChoice reports whether a referenced choice exists.
func (v *ParameterValidator) HasValidChoice(p *ipxact.Parameter) bool {
	if p.ChoiceRef == "" {
		return true
	}
	_, ok := v.index.Choices[p.ChoiceRef]
	return ok
}

func (v *ParameterValidator) HasValidResolve(p *ipxact.Parameter) bool {
	switch p.Resolve {
	case "", "immediate", "user", "generated":
		return true
	}
	return false
}

// HasValidValueID requires a value ID for user and generated parameters.
func (v *ParameterValidator) HasValidValueID(p *ipxact.Parameter) bool {
	if p.Resolve == "user" || p.Resolve == "generated" {
		return p.ValueID != ""
	}
	return true
}

// HasValidVectors allows vectors on bit parameters only. Vector IDs exist
// from the 2022 revision on.
func (v *ParameterValidator) HasValidVectors(p *ipxact.Parameter) bool {
	if len(p.Vectors) == 0 {
		return true
	}
	if p.Type != "bit" {
		return false
	}
	for _, vec := range p.Vectors {
		if !v.hasValidVector(vec) {
			return false
		}
	}
	return true
}

func (v *ParameterValidator) hasValidVector(vec ipxact.Vector) bool {
	if vec.ID != "" && v.index.Revision != ipxact.Std22 {
		return false
	}
	_, leftOK := evalUint(v.parser, vec.Left)
	_, rightOK := evalUint(v.parser, vec.Right)
	return leftOK && rightOK
}

// FindErrorsIn appends a message for every failing check of p.
func (v *ParameterValidator) FindErrorsIn(errs []string, p *ipxact.Parameter, context string) []string {
	const element = "parameter"

	if !v.HasValidName(p) {
		errs = append(errs, fmt.Sprintf("No valid name specified for %s %s within %s", element, p.Name, context))
	}
	errs = v.findErrorsInValue(errs, p, element, context)
	if !v.HasValidType(p) {
		errs = append(errs, fmt.Sprintf("Invalid type %s specified for %s %s within %s", p.Type, element, p.Name, context))
	}
	if !v.HasValidChoice(p) {
		errs = append(errs, fmt.Sprintf("Choice %s referenced in %s %s is not specified within %s", p.ChoiceRef, element, p.Name, context))
	}
	if !v.HasValidResolve(p) {
		errs = append(errs, fmt.Sprintf("Invalid resolve %s specified for %s %s within %s", p.Resolve, element, p.Name, context))
	}
	if !v.HasValidValueID(p) {
		errs = append(errs, fmt.Sprintf("No identifier specified for %s %s with resolve %s within %s", element, p.Name, p.Resolve, context))
	}
	if !v.HasValidVectors(p) {
		errs = append(errs, fmt.Sprintf("Invalid bit vector values specified for %s %s within %s", element, p.Name, context))
	}
	return errs
}

func (v *ParameterValidator) findErrorsInValue(errs []string, p *ipxact.Parameter, element, context string) []string {
	if p.Value == "" {
		return append(errs, fmt.Sprintf("No value specified for %s %s within %s", element, p.Name, context))
	}
	if !v.HasValidValueForType(p.Value, p.Type) {
		errs = append(errs, fmt.Sprintf("Value '%s' is not valid for type %s in %s %s within %s", p.Value, p.Type, element, p.Name, context))
	}
	if v.ValueIsLessThanMinimum(p) {
		errs = append(errs, fmt.Sprintf("Value '%s' violates minimum value %s in %s %s within %s", p.Value, p.Minimum, element, p.Name, context))
	}
	if v.ValueIsGreaterThanMaximum(p) {
		errs = append(errs, fmt.Sprintf("Value '%s' violates maximum value %s in %s %s within %s", p.Value, p.Maximum, element, p.Name, context))
	}
	if !v.HasValidValueForChoice(p) {
		errs = append(errs, fmt.Sprintf("Value '%s' references unknown enumeration for choice %s in %s %s within %s", p.Value, p.ChoiceRef, element, p.Name, context))
	}
	return errs
}
