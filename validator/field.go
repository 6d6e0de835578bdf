package validator

import (
	"fmt"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// FieldValidator checks a register field.
type FieldValidator struct {
	parser     ExpressionParser
	parameters *ParameterValidator
}

// NewFieldValidator returns a validator for register fields.
func NewFieldValidator(parser ExpressionParser, parameters *ParameterValidator) *FieldValidator {
	return &FieldValidator{parser: parser, parameters: parameters}
}

// Validate reports whether f passes every field check.
func (v *FieldValidator) Validate(f *ipxact.Field) bool {
	return v.HasValidName(f) &&
		v.HasValidIsPresent(f) &&
		v.HasValidBitOffset(f) &&
		v.HasValidResets(f) &&
		v.HasValidWriteValueConstraint(f) &&
		v.HasValidReserved(f) &&
		v.HasValidBitWidth(f) &&
		v.HasValidEnumeratedValues(f) &&
		v.HasValidParameters(f) &&
		v.HasValidAccess(f) &&
		v.HasValidFlags(f)
}

func (v *FieldValidator) HasValidName(f *ipxact.Field) bool {
	return hasValidName(f.Name)
}

func (v *FieldValidator) HasValidIsPresent(f *ipxact.Field) bool {
	return isValidIsPresent(v.parser, f.IsPresent)
}

func (v *FieldValidator) HasValidBitOffset(f *ipxact.Field) bool {
	_, ok := evalUint(v.parser, f.BitOffset)
	return ok
}

// HasValidBitWidth requires a positive width.
func (v *FieldValidator) HasValidBitWidth(f *ipxact.Field) bool {
	n, ok := evalUint(v.parser, f.BitWidth)
	return ok && n > 0
}

// HasValidResets requires every reset to carry a non-negative value and an
// optional non-negative mask.
func (v *FieldValidator) HasValidResets(f *ipxact.Field) bool {
	for _, r := range f.Resets {
		if !v.hasValidResetValue(r) || !v.hasValidResetMask(r) {
			return false
		}
	}
	return true
}

func (v *FieldValidator) hasValidResetValue(r ipxact.FieldReset) bool {
	if r.Value == "" {
		return false
	}
	_, ok := evalUint(v.parser, r.Value)
	return ok
}

func (v *FieldValidator) hasValidResetMask(r ipxact.FieldReset) bool {
	if r.Mask == "" {
		return true
	}
	_, ok := evalUint(v.parser, r.Mask)
	return ok
}

func (v *FieldValidator) HasValidWriteValueConstraint(f *ipxact.Field) bool {
	wc := f.WriteConstraint
	if wc == nil || wc.WriteAsRead {
		return true
	}
	if wc.UseEnumeratedValues {
		return hasWritableEnumeration(f)
	}
	minimum, minOK := evalUint(v.parser, wc.Minimum)
	maximum, maxOK := evalUint(v.parser, wc.Maximum)
	return minOK && maxOK && minimum <= maximum
}

func hasWritableEnumeration(f *ipxact.Field) bool {
	for _, e := range f.EnumeratedValues {
		if e.Usage == "" || e.Usage == "write" || e.Usage == "read-write" {
			return true
		}
	}
	return false
}

func (v *FieldValidator) HasValidReserved(f *ipxact.Field) bool {
	return isValidIsPresent(v.parser, f.Reserved)
}

func (v *FieldValidator) HasValidEnumeratedValues(f *ipxact.Field) bool {
	names := make([]string, 0, len(f.EnumeratedValues))
	for _, e := range f.EnumeratedValues {
		if !v.hasValidEnumeratedValue(e) {
			return false
		}
		names = append(names, e.Name)
	}
	return len(duplicates(names)) == 0
}

func (v *FieldValidator) hasValidEnumeratedValue(e *ipxact.EnumeratedValue) bool {
	if !hasValidName(e.Name) || !isValidEnumUsage(e.Usage) {
		return false
	}
	_, ok := evalUint(v.parser, e.Value)
	return ok
}

func isValidEnumUsage(usage string) bool {
	return usage == "" || usage == "read" || usage == "write" || usage == "read-write"
}

func (v *FieldValidator) HasValidParameters(f *ipxact.Field) bool {
	return hasValidParameters(v.parameters, f.Parameters)
}

// HasValidAccess rejects a modified write on read-only fields and a read
// action on fields that cannot be read.
func (v *FieldValidator) HasValidAccess(f *ipxact.Field) bool {
	if f.Access == ipxact.AccessReadOnly && f.ModifiedWrite != "" {
		return false
	}
	if (f.Access == ipxact.AccessWriteOnly || f.Access == ipxact.AccessWriteOnce) && f.ReadAction != "" {
		return false
	}
	return true
}

// HasValidFlags checks the boolean volatile and testable attributes.
func (v *FieldValidator) HasValidFlags(f *ipxact.Field) bool {
	return isBoolString(f.Volatile) && isBoolString(f.Testable)
}

// FindErrorsIn appends a message for every failing check of f.
func (v *FieldValidator) FindErrorsIn(errs []string, f *ipxact.Field, context string) []string {
	if !v.HasValidName(f) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for %s within %s", f.Name, context))
	}
	if !v.HasValidIsPresent(f) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent value specified for %s within %s. Value should evaluate to 0 or 1.", f.Name, context))
	}
	if !v.HasValidBitOffset(f) {
		errs = append(errs, fmt.Sprintf("Invalid bit offset set for field %s within %s", f.Name, context))
	}
	for _, r := range f.Resets {
		if !v.hasValidResetValue(r) {
			errs = append(errs, fmt.Sprintf("Invalid reset value set for field %s within %s", f.Name, context))
		}
		if !v.hasValidResetMask(r) {
			errs = append(errs, fmt.Sprintf("Invalid reset mask set for field %s within %s", f.Name, context))
		}
	}
	errs = v.findErrorsInWriteValueConstraint(errs, f, context)
	if !v.HasValidReserved(f) {
		errs = append(errs, fmt.Sprintf("Invalid reserved set for field %s within %s", f.Name, context))
	}
	if !v.HasValidBitWidth(f) {
		errs = append(errs, fmt.Sprintf("Invalid bit width set for field %s within %s", f.Name, context))
	}
	errs = v.findErrorsInEnumeratedValues(errs, f, context)
	fieldContext := "field " + f.Name + " within " + context
	errs = findErrorsInParameters(errs, v.parameters, f.Parameters, fieldContext)
	if f.Access == ipxact.AccessReadOnly && f.ModifiedWrite != "" {
		errs = append(errs, fmt.Sprintf("In field %s within %s, access type readOnly does not allow a field to include a modified write value.", f.Name, context))
	}
	if (f.Access == ipxact.AccessWriteOnly || f.Access == ipxact.AccessWriteOnce) && f.ReadAction != "" {
		errs = append(errs, fmt.Sprintf("In field %s within %s, access type write only and write once do not allow a field to include a read action value.", f.Name, context))
	}
	if !isBoolString(f.Volatile) {
		errs = append(errs, fmt.Sprintf("Invalid volatile value %s set for field %s within %s", f.Volatile, f.Name, context))
	}
	if !isBoolString(f.Testable) {
		errs = append(errs, fmt.Sprintf("Invalid testable value %s set for field %s within %s", f.Testable, f.Name, context))
	}
	return errs
}

func (v *FieldValidator) findErrorsInWriteValueConstraint(errs []string, f *ipxact.Field, context string) []string {
	wc := f.WriteConstraint
	if wc == nil || wc.WriteAsRead {
		return errs
	}
	if wc.UseEnumeratedValues {
		if !hasWritableEnumeration(f) {
			errs = append(errs, fmt.Sprintf("Write value constraint of field %s within %s uses enumerated values, but the field has no writable enumerated value", f.Name, context))
		}
		return errs
	}
	minimum, minOK := evalUint(v.parser, wc.Minimum)
	maximum, maxOK := evalUint(v.parser, wc.Maximum)
	if !minOK {
		errs = append(errs, fmt.Sprintf("Invalid minimum value set for write value constraint in field %s within %s", f.Name, context))
	}
	if !maxOK {
		errs = append(errs, fmt.Sprintf("Invalid maximum value set for write value constraint in field %s within %s", f.Name, context))
	}
	if minOK && maxOK && minimum > maximum {
		errs = append(errs, fmt.Sprintf("The minimum value must be less than or equal to the maximum value in write value constraint of field %s within %s", f.Name, context))
	}
	return errs
}

func (v *FieldValidator) findErrorsInEnumeratedValues(errs []string, f *ipxact.Field, context string) []string {
	names := make([]string, 0, len(f.EnumeratedValues))
	for _, e := range f.EnumeratedValues {
		names = append(names, e.Name)
		if !hasValidName(e.Name) {
			errs = append(errs, fmt.Sprintf("Invalid name specified for enumerated value %s in field %s within %s", e.Name, f.Name, context))
		}
		if _, ok := evalUint(v.parser, e.Value); !ok {
			errs = append(errs, fmt.Sprintf("Invalid value set for enumerated value %s in field %s within %s", e.Name, f.Name, context))
		}
		if !isValidEnumUsage(e.Usage) {
			errs = append(errs, fmt.Sprintf("Invalid usage %s set for enumerated value %s in field %s within %s", e.Usage, e.Name, f.Name, context))
		}
	}
	for _, name := range duplicates(names) {
		errs = append(errs, fmt.Sprintf("Name %s of enumerated values in field %s within %s is not unique.", name, f.Name, context))
	}
	return errs
}
