package validator

import (
	"fmt"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// RegisterValidator checks a register, its fields and its alternate
// registers.
type RegisterValidator struct {
	parser ExpressionParser
	base   *RegisterBaseValidator
	fields *FieldValidator
	index  *ipxact.Index
}

// NewRegisterValidator composes the register base and field validators.
func NewRegisterValidator(parser ExpressionParser, base *RegisterBaseValidator, fields *FieldValidator) *RegisterValidator {
	return &RegisterValidator{parser: parser, base: base, fields: fields, index: ipxact.NewIndex(nil)}
}

// ComponentChange refreshes the revision and the available modes.
func (v *RegisterValidator) ComponentChange(c *ipxact.Component) {
	v.setIndex(ipxact.NewIndex(c))
}

func (v *RegisterValidator) setIndex(idx *ipxact.Index) {
	v.index = idx
	v.base.parameters.setIndex(idx)
}

// Validate reports whether r, its fields and alternate registers are valid.
func (v *RegisterValidator) Validate(r *ipxact.Register) bool {
	return v.base.Validate(&r.RegisterBase) &&
		v.HasValidSize(r) &&
		v.HasValidFields(r) &&
		v.HasValidAlternateRegisters(r) &&
		v.HasValidStructure(r)
}

func (v *RegisterValidator) definedByReference(r *ipxact.Register) bool {
	return v.index.Revision == ipxact.Std22 && r.DefinitionRef != ""
}

// HasValidSize requires a non-zero size unless a 2022 definition reference
// supplies it.
func (v *RegisterValidator) HasValidSize(r *ipxact.Register) bool {
	if r.Size == "" && v.definedByReference(r) {
		return true
	}
	n, ok := evalUint(v.parser, r.Size)
	return ok && n > 0
}

// HasValidFields requires unique, valid fields that fit the register size
// without overlapping.
func (v *RegisterValidator) HasValidFields(r *ipxact.Register) bool {
	if len(r.Fields) == 0 {
		return v.definedByReference(r)
	}
	return v.hasValidFieldList(r.Fields, r.Volatile, r.Access, r.Size)
}

// HasValidStructure rejects a 2022 register that has both a definition
// reference and locally defined fields.
func (v *RegisterValidator) HasValidStructure(r *ipxact.Register) bool {
	return !v.definedByReference(r) || len(r.Fields) == 0
}

func (v *RegisterValidator) hasValidFieldList(fields []*ipxact.Field, volatile string, access ipxact.AccessType, size string) bool {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	if len(duplicates(names)) > 0 {
		return false
	}

	registerSize, sizeOK := evalUint(v.parser, size)
	reserve := &memoryReserve{}
	for i, f := range fields {
		if !v.fields.Validate(f) {
			return false
		}
		if sizeOK && !v.fieldIsContained(f, registerSize) {
			return false
		}
		for _, other := range fields[:i] {
			if f.TypeIdentifier != "" && f.TypeIdentifier == other.TypeIdentifier && !fieldsHaveSimilarDefinition(f, other) {
				return false
			}
		}
		if f.Volatile == "true" && volatile == "false" {
			return false
		}
		if v.index.Revision == ipxact.Std14 && !accessAllows(access, f.Access) {
			return false
		}
		v.reserveField(reserve, f)
	}
	return !reserve.hasOverlap()
}

func (v *RegisterValidator) fieldIsContained(f *ipxact.Field, registerSize uint64) bool {
	offset, offsetOK := evalUint(v.parser, f.BitOffset)
	width, widthOK := evalUint(v.parser, f.BitWidth)
	return offsetOK && widthOK && width <= registerSize && offset <= registerSize-width
}

func (v *RegisterValidator) reserveField(reserve *memoryReserve, f *ipxact.Field) {
	if !isPresent(v.parser, f.IsPresent) {
		return
	}
	offset, offsetOK := evalUint(v.parser, f.BitOffset)
	width, widthOK := evalUint(v.parser, f.BitWidth)
	if offsetOK && widthOK {
		reserve.addSized(f.Name, offset, width)
	}
}

// accessAllows checks a 2014 access against the access of its container.
func accessAllows(outer, inner ipxact.AccessType) bool {
	if outer == ipxact.AccessUnspecified || inner == ipxact.AccessUnspecified || outer == ipxact.AccessReadWrite {
		return true
	}
	switch outer {
	case ipxact.AccessReadOnly:
		return inner == ipxact.AccessReadOnly
	case ipxact.AccessWriteOnly:
		return inner == ipxact.AccessWriteOnly || inner == ipxact.AccessWriteOnce
	case ipxact.AccessReadWriteOnce:
		return inner == ipxact.AccessReadOnly || inner == ipxact.AccessReadWriteOnce || inner == ipxact.AccessWriteOnce
	case ipxact.AccessWriteOnce:
		return inner == ipxact.AccessWriteOnce
	}
	return false
}

// fieldsHaveSimilarDefinition compares the definition parts of two fields
// sharing a type identifier.
func fieldsHaveSimilarDefinition(a, b *ipxact.Field) bool {
	if a.BitWidth != b.BitWidth || a.Access != b.Access || a.Volatile != b.Volatile ||
		a.ModifiedWrite != b.ModifiedWrite || a.ReadAction != b.ReadAction ||
		a.Testable != b.Testable || a.Reserved != b.Reserved ||
		len(a.EnumeratedValues) != len(b.EnumeratedValues) {
		return false
	}
	for i, e := range a.EnumeratedValues {
		o := b.EnumeratedValues[i]
		if e.Name != o.Name || e.Value != o.Value || e.Usage != o.Usage {
			return false
		}
	}
	return true
}

// HasValidAlternateRegisters checks alternate register names, fields and
// their selection: alternate groups in 2014, mode references in 2022.
func (v *RegisterValidator) HasValidAlternateRegisters(r *ipxact.Register) bool {
	names := make([]string, 0, len(r.AlternateRegisters))
	modeRefs := newModeRefChecker(v.index.Modes)
	for _, alt := range r.AlternateRegisters {
		names = append(names, alt.Name)
		if !hasValidName(alt.Name) ||
			!isValidIsPresent(v.parser, alt.IsPresent) ||
			!hasValidParameters(v.base.parameters, alt.Parameters) ||
			len(alt.Fields) == 0 ||
			!v.hasValidFieldList(alt.Fields, alt.Volatile, alt.Access, r.Size) {
			return false
		}
		if v.index.Revision == ipxact.Std22 {
			if len(alt.ModeRefs) == 0 || !modeRefs.valid(alt.ModeRefs) {
				return false
			}
		} else if !hasValidAlternateGroups(alt.AlternateGroups) {
			return false
		}
	}
	return len(duplicates(names)) == 0
}

func hasValidAlternateGroups(groups []string) bool {
	if len(groups) == 0 {
		return false
	}
	for _, g := range groups {
		if !hasValidName(g) {
			return false
		}
	}
	return len(duplicates(groups)) == 0
}

// FindErrorsIn reports the register r found within context.
func (v *RegisterValidator) FindErrorsIn(errs []string, r *ipxact.Register, context string) []string {
	errs = v.base.FindErrorsIn(errs, &r.RegisterBase, context)
	registerContext := fmt.Sprintf("register '%s' within %s", r.Name, context)
	fieldContext := fmt.Sprintf("register %s within %s", r.Name, context)

	if !v.HasValidSize(r) {
		errs = append(errs, "Invalid size specified for "+registerContext)
	}
	if len(r.Fields) == 0 {
		if !v.definedByReference(r) {
			errs = append(errs, fmt.Sprintf("Register %s must contain at least one field", r.Name))
		}
	} else {
		errs = v.findErrorsInFieldList(errs, r.Name, r.Fields, r.Volatile, r.Access, r.Size, fieldContext)
	}
	errs = v.findErrorsInAlternateRegisters(errs, r, fieldContext)
	if !v.HasValidStructure(r) {
		errs = append(errs, fmt.Sprintf("Register %s in %s must not be explicitly defined while also containing a definition reference.", r.Name, context))
	}
	return errs
}

func (v *RegisterValidator) findErrorsInFieldList(errs []string, registerName string, fields []*ipxact.Field,
	volatile string, access ipxact.AccessType, size string, context string) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	for _, name := range duplicates(names) {
		errs = append(errs, fmt.Sprintf("Name %s of fields in %s is not unique.", name, context))
	}

	registerSize, sizeOK := evalUint(v.parser, size)
	reserve := &memoryReserve{}
	for i, f := range fields {
		errs = v.fields.FindErrorsIn(errs, f, context)
		if sizeOK && !v.fieldIsContained(f, registerSize) {
			errs = append(errs, fmt.Sprintf("Field %s is not contained within %s", f.Name, context))
		}
		for _, other := range fields[:i] {
			if f.TypeIdentifier != "" && f.TypeIdentifier == other.TypeIdentifier && !fieldsHaveSimilarDefinition(f, other) {
				errs = append(errs, fmt.Sprintf("Fields %s and %s have type identifier %s, but different field definitions within %s",
					other.Name, f.Name, f.TypeIdentifier, context))
			}
		}
		if f.Volatile == "true" && volatile == "false" {
			errs = append(errs, fmt.Sprintf("Volatile cannot be set to false in %s, where contained field %s has volatile true", context, f.Name))
		}
		if v.index.Revision == ipxact.Std14 && !accessAllows(access, f.Access) {
			errs = append(errs, fmt.Sprintf("Access cannot be set to %s in field %s, where containing register %s has access %s",
				f.Access, f.Name, registerName, access))
		}
		v.reserveField(reserve, f)
	}
	return reserve.findErrorsInOverlap(errs, "Fields", context)
}

func (v *RegisterValidator) findErrorsInAlternateRegisters(errs []string, r *ipxact.Register, context string) []string {
	names := make([]string, 0, len(r.AlternateRegisters))
	modeRefs := newModeRefChecker(v.index.Modes)
	for _, alt := range r.AlternateRegisters {
		names = append(names, alt.Name)
		altContext := fmt.Sprintf("alternate register %s within %s", alt.Name, context)

		if !hasValidName(alt.Name) {
			errs = append(errs, fmt.Sprintf("Invalid name specified for alternate register %s within %s", alt.Name, context))
		}
		if !isValidIsPresent(v.parser, alt.IsPresent) {
			errs = append(errs, fmt.Sprintf("Invalid isPresent set for alternate register %s within %s", alt.Name, context))
		}
		errs = findErrorsInParameters(errs, v.base.parameters, alt.Parameters, altContext)
		if len(alt.Fields) == 0 {
			errs = append(errs, fmt.Sprintf("Register %s must contain at least one field", alt.Name))
		} else {
			errs = v.findErrorsInFieldList(errs, alt.Name, alt.Fields, alt.Volatile, alt.Access, r.Size, altContext)
		}

		if v.index.Revision == ipxact.Std22 {
			if len(alt.ModeRefs) == 0 {
				errs = append(errs, fmt.Sprintf("Alternate register %s within %s must reference at least one mode", alt.Name, context))
			}
			errs = modeRefs.findErrors(errs, alt.ModeRefs, "alternate register "+alt.Name, context)
		} else if !hasValidAlternateGroups(alt.AlternateGroups) {
			errs = append(errs, fmt.Sprintf("Alternate groups are not unique or not empty in alternate register %s within %s", alt.Name, context))
		}
	}
	for _, name := range duplicates(names) {
		errs = append(errs, fmt.Sprintf("Name %s of alternate registers in %s is not unique.", name, context))
	}
	return errs
}
