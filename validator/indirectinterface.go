package validator

import (
	"fmt"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// IndirectInterfaceValidator checks an indirect interface. Its address and
// data references are resolved against the fields of the component's
// memory maps.
type IndirectInterfaceValidator struct {
	parser     ExpressionParser
	parameters *ParameterValidator
	index      *ipxact.Index
}

// NewIndirectInterfaceValidator returns a validator with an empty index; call
// ComponentChange before validating.
func NewIndirectInterfaceValidator(parser ExpressionParser, parameters *ParameterValidator) *IndirectInterfaceValidator {
	return &IndirectInterfaceValidator{parser: parser, parameters: parameters, index: ipxact.NewIndex(nil)}
}

// ComponentChange re-indexes the fields, memory maps and bus interfaces of c.
func (v *IndirectInterfaceValidator) ComponentChange(c *ipxact.Component) {
	v.setIndex(ipxact.NewIndex(c))
}

func (v *IndirectInterfaceValidator) setIndex(idx *ipxact.Index) {
	v.index = idx
	v.parameters.setIndex(idx)
}

// Validate reports whether ii passes every indirect interface check.
func (v *IndirectInterfaceValidator) Validate(ii *ipxact.IndirectInterface) bool {
	return v.HasValidName(ii) &&
		v.HasValidAddressReference(ii) &&
		v.HasValidDataReference(ii) &&
		v.HasEitherMemoryMapReferenceOrTransparentBridge(ii) &&
		v.HasValidMemoryMapReference(ii) &&
		v.HasValidTransparentBridges(ii) &&
		v.HasValidBitsInLau(ii) &&
		v.HasValidEndianness(ii) &&
		hasValidParameters(v.parameters, ii.Parameters)
}

func (v *IndirectInterfaceValidator) HasValidName(ii *ipxact.IndirectInterface) bool {
	return hasValidName(ii.Name)
}

// resolveField finds ref outside the memory map the interface gives access
// to.
func (v *IndirectInterfaceValidator) resolveField(ii *ipxact.IndirectInterface, ref string) (ipxact.FieldLocation, bool) {
	if ref == "" {
		return ipxact.FieldLocation{}, false
	}
	loc, ok := v.index.FindField(ref)
	if !ok || v.isInIndirectMap(ii, loc) {
		return ipxact.FieldLocation{}, false
	}
	return loc, true
}

func (v *IndirectInterfaceValidator) isInIndirectMap(ii *ipxact.IndirectInterface, loc ipxact.FieldLocation) bool {
	return ii.MemoryMapRef != "" && loc.MemoryMap.Name == ii.MemoryMapRef
}

// HasValidAddressReference requires a field whose access lets the address
// be written repeatedly.
func (v *IndirectInterfaceValidator) HasValidAddressReference(ii *ipxact.IndirectInterface) bool {
	loc, ok := v.resolveField(ii, ii.AddressRef)
	return ok && loc.Field.Access.RepeatedlyWritable()
}

// HasValidDataReference accepts a field of any access.
func (v *IndirectInterfaceValidator) HasValidDataReference(ii *ipxact.IndirectInterface) bool {
	_, ok := v.resolveField(ii, ii.DataRef)
	return ok
}

// HasEitherMemoryMapReferenceOrTransparentBridge requires exactly one of the
// two ways to reach the indirectly accessed memory.
func (v *IndirectInterfaceValidator) HasEitherMemoryMapReferenceOrTransparentBridge(ii *ipxact.IndirectInterface) bool {
	return (ii.MemoryMapRef != "") != (len(ii.TransparentBridges) > 0)
}

func (v *IndirectInterfaceValidator) HasValidMemoryMapReference(ii *ipxact.IndirectInterface) bool {
	if ii.MemoryMapRef == "" {
		return true
	}
	_, ok := v.index.MemoryMaps[ii.MemoryMapRef]
	return ok
}

func (v *IndirectInterfaceValidator) HasValidTransparentBridges(ii *ipxact.IndirectInterface) bool {
	for _, b := range ii.TransparentBridges {
		if !v.bridgeReferencesInitiator(b) || !isValidIsPresent(v.parser, b.IsPresent) {
			return false
		}
	}
	return true
}

func (v *IndirectInterfaceValidator) bridgeReferencesInitiator(b *ipxact.TransparentBridge) bool {
	bus, ok := v.index.BusInterfaces[b.InitiatorRef]
	return ok && bus.Mode == v.index.Revision.InitiatorMode()
}

func (v *IndirectInterfaceValidator) HasValidBitsInLau(ii *ipxact.IndirectInterface) bool {
	if ii.BitsInLau == "" {
		return true
	}
	_, ok := evalUint(v.parser, ii.BitsInLau)
	return ok
}

func (v *IndirectInterfaceValidator) HasValidEndianness(ii *ipxact.IndirectInterface) bool {
	return ii.Endianness == "" || ii.Endianness == "big" || ii.Endianness == "little"
}

// FindErrorsIn appends a message for every failing check of ii.
func (v *IndirectInterfaceValidator) FindErrorsIn(errs []string, ii *ipxact.IndirectInterface, context string) []string {
	if !v.HasValidName(ii) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for indirect interface '%s' within %s", ii.Name, context))
	}
	errs = v.findErrorsInAddressReference(errs, ii, context)
	errs = v.findErrorsInDataReference(errs, ii, context)

	hasMemoryMap, hasBridges := ii.MemoryMapRef != "", len(ii.TransparentBridges) > 0
	if hasMemoryMap && hasBridges {
		errs = append(errs, fmt.Sprintf("Both memory map and transparent bridges defined for indirect interface '%s' within %s.", ii.Name, context))
	} else if !hasMemoryMap && !hasBridges {
		errs = append(errs, fmt.Sprintf("No memory map or transparent bridges defined for indirect interface '%s' within %s.", ii.Name, context))
	}
	if !v.HasValidMemoryMapReference(ii) {
		errs = append(errs, fmt.Sprintf("Invalid memory map '%s' referenced in indirect interface '%s' within %s.", ii.MemoryMapRef, ii.Name, context))
	}
	errs = v.findErrorsInTransparentBridges(errs, ii, context)

	if !v.HasValidBitsInLau(ii) {
		errs = append(errs, fmt.Sprintf("Invalid bits in lau '%s' defined in indirect interface '%s' within %s.", ii.BitsInLau, ii.Name, context))
	}
	if !v.HasValidEndianness(ii) {
		errs = append(errs, fmt.Sprintf("Invalid endianness '%s' defined in indirect interface '%s' within %s.", ii.Endianness, ii.Name, context))
	}
	return findErrorsInParameters(errs, v.parameters, ii.Parameters, fmt.Sprintf("indirect interface %s within %s", ii.Name, context))
}

func (v *IndirectInterfaceValidator) findErrorsInAddressReference(errs []string, ii *ipxact.IndirectInterface, context string) []string {
	if ii.AddressRef == "" {
		return append(errs, fmt.Sprintf("No field specified for address in indirect interface '%s' within %s", ii.Name, context))
	}
	loc, ok := v.index.FindField(ii.AddressRef)
	if !ok {
		return append(errs, fmt.Sprintf("Field '%s' not found for address in indirect interface '%s' within %s", ii.AddressRef, ii.Name, context))
	}
	if v.isInIndirectMap(ii, loc) {
		errs = append(errs, fmt.Sprintf("Field '%s' is defined within indirect memory map '%s' in indirect interface %s within %s",
			ii.AddressRef, ii.MemoryMapRef, ii.Name, context))
	}
	if !loc.Field.Access.RepeatedlyWritable() {
		errs = append(errs, fmt.Sprintf("Field '%s' has invalid access '%s' for address in indirect interface %s within %s",
			ii.AddressRef, loc.Field.Access, ii.Name, context))
	}
	return errs
}

func (v *IndirectInterfaceValidator) findErrorsInDataReference(errs []string, ii *ipxact.IndirectInterface, context string) []string {
	if ii.DataRef == "" {
		return append(errs, fmt.Sprintf("No field specified for data in indirect interface '%s' within %s", ii.Name, context))
	}
	loc, ok := v.index.FindField(ii.DataRef)
	if !ok {
		return append(errs, fmt.Sprintf("Field '%s' not found for data in indirect interface '%s' within %s", ii.DataRef, ii.Name, context))
	}
	if v.isInIndirectMap(ii, loc) {
		errs = append(errs, fmt.Sprintf("Field '%s' is defined within indirect memory map '%s' in indirect interface %s within %s",
			ii.DataRef, ii.MemoryMapRef, ii.Name, context))
	}
	return errs
}

func (v *IndirectInterfaceValidator) findErrorsInTransparentBridges(errs []string, ii *ipxact.IndirectInterface, context string) []string {
	term := v.index.Revision.InitiatorTerm()
	for _, b := range ii.TransparentBridges {
		bus, ok := v.index.BusInterfaces[b.InitiatorRef]
		if !ok {
			errs = append(errs, fmt.Sprintf("Transparent bridge references an invalid bus interface '%s' in indirect interface '%s' within %s.",
				b.InitiatorRef, ii.Name, context))
		} else if bus.Mode != v.index.Revision.InitiatorMode() {
			errs = append(errs, fmt.Sprintf("Transparent bridge references a non-%s bus interface '%s' in indirect interface '%s' within %s.",
				term, b.InitiatorRef, ii.Name, context))
		}
		if !isValidIsPresent(v.parser, b.IsPresent) {
			errs = append(errs, fmt.Sprintf("Invalid isPresent set for transparent bridge '%s' in indirect interface '%s' within %s.",
				b.InitiatorRef, ii.Name, context))
		}
	}
	return errs
}
