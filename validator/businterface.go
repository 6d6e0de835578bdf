package validator

import (
	"fmt"
	"slices"
	"strings"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// BusInterfaceValidator checks a bus interface and the references its mode
// brings: an address space for initiators, a memory map or transparent
// bridges for targets.
type BusInterfaceValidator struct {
	parser ExpressionParser
	index  *ipxact.Index
}

// NewBusInterfaceValidator returns a validator with an empty index; call
// ComponentChange before validating.
func NewBusInterfaceValidator(parser ExpressionParser) *BusInterfaceValidator {
	return &BusInterfaceValidator{parser: parser, index: ipxact.NewIndex(nil)}
}

// ComponentChange re-indexes the bus interfaces, address spaces and memory
// maps of c.
func (v *BusInterfaceValidator) ComponentChange(c *ipxact.Component) {
	v.setIndex(ipxact.NewIndex(c))
}

func (v *BusInterfaceValidator) setIndex(idx *ipxact.Index) { v.index = idx }

// Validate checks b against the revision of the indexed component.
func (v *BusInterfaceValidator) Validate(b *ipxact.BusInterface) bool {
	return v.HasValidName(b) &&
		v.HasValidIsPresent(b) &&
		v.HasValidInterfaceMode(b) &&
		v.HasValidInitiatorReferences(b) &&
		v.HasValidTargetReferences(b)
}

func (v *BusInterfaceValidator) HasValidName(b *ipxact.BusInterface) bool {
	return hasValidName(b.Name)
}

func (v *BusInterfaceValidator) HasValidIsPresent(b *ipxact.BusInterface) bool {
	return isValidIsPresent(v.parser, b.IsPresent)
}

// HasValidInterfaceMode requires a mode that exists in the document
// revision.
func (v *BusInterfaceValidator) HasValidInterfaceMode(b *ipxact.BusInterface) bool {
	return slices.Contains(v.index.Revision.ValidModes(), b.Mode)
}

// HasValidInitiatorReferences checks the address space reference and base
// address of an initiator interface. Other modes pass.
func (v *BusInterfaceValidator) HasValidInitiatorReferences(b *ipxact.BusInterface) bool {
	if b.Mode != v.index.Revision.InitiatorMode() {
		return true
	}
	return v.hasValidAddressSpaceRef(b) && v.hasValidBaseAddress(b)
}

func (v *BusInterfaceValidator) hasValidAddressSpaceRef(b *ipxact.BusInterface) bool {
	if b.AddressSpaceRef == "" {
		return true
	}
	_, ok := v.index.AddressSpaces[b.AddressSpaceRef]
	return ok
}

func (v *BusInterfaceValidator) hasValidBaseAddress(b *ipxact.BusInterface) bool {
	if b.BaseAddress == "" {
		return true
	}
	_, ok := evalUint(v.parser, b.BaseAddress)
	return ok
}

// HasValidTargetReferences checks the memory map reference and transparent
// bridges of a target interface. Other modes pass.
func (v *BusInterfaceValidator) HasValidTargetReferences(b *ipxact.BusInterface) bool {
	if b.Mode != v.index.Revision.TargetMode() {
		return true
	}
	if b.MemoryMapRef != "" && len(b.Bridges) > 0 {
		return false
	}
	if !v.hasValidMemoryMapRef(b) {
		return false
	}
	for _, bridge := range b.Bridges {
		if !v.bridgeReferencesInitiator(bridge) || !isValidIsPresent(v.parser, bridge.IsPresent) {
			return false
		}
	}
	return true
}

func (v *BusInterfaceValidator) hasValidMemoryMapRef(b *ipxact.BusInterface) bool {
	if b.MemoryMapRef == "" {
		return true
	}
	_, ok := v.index.MemoryMaps[b.MemoryMapRef]
	return ok
}

func (v *BusInterfaceValidator) bridgeReferencesInitiator(bridge *ipxact.TransparentBridge) bool {
	bus, ok := v.index.BusInterfaces[bridge.InitiatorRef]
	return ok && bus.Mode == v.index.Revision.InitiatorMode()
}

// FindErrorsIn appends a message for every failing check of b.
func (v *BusInterfaceValidator) FindErrorsIn(errs []string, b *ipxact.BusInterface, context string) []string {
	busContext := fmt.Sprintf("bus interface %s within %s", b.Name, context)

	if !v.HasValidName(b) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for bus interface %s within %s", b.Name, context))
	}
	if !v.HasValidIsPresent(b) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for bus interface %s within %s", b.Name, context))
	}
	if !v.HasValidInterfaceMode(b) {
		errs = append(errs, fmt.Sprintf("Unknown interface mode set for bus interface %s within %s", b.Name, context))
	}

	switch b.Mode {
	case v.index.Revision.InitiatorMode():
		if !v.hasValidAddressSpaceRef(b) {
			errs = append(errs, fmt.Sprintf("Could not find address space %s referenced by the %s", b.AddressSpaceRef, busContext))
		}
		if !v.hasValidBaseAddress(b) {
			errs = append(errs, fmt.Sprintf("Invalid base address set for %s", busContext))
		}
	case v.index.Revision.TargetMode():
		if b.MemoryMapRef != "" && len(b.Bridges) > 0 {
			errs = append(errs, fmt.Sprintf("Both a memory map reference and transparent bridges are contained within %s", busContext))
		}
		if !v.hasValidMemoryMapRef(b) {
			errs = append(errs, fmt.Sprintf("Memory map %s referenced by the %s was not found", b.MemoryMapRef, busContext))
		}
		term := v.index.Revision.InitiatorTerm()
		for _, bridge := range b.Bridges {
			if target, ok := v.index.BusInterfaces[bridge.InitiatorRef]; !ok {
				errs = append(errs, fmt.Sprintf("%s bus interface %s referenced by the %s was not found",
					strings.ToUpper(term[:1])+term[1:], bridge.InitiatorRef, busContext))
			} else if target.Mode != v.index.Revision.InitiatorMode() {
				errs = append(errs, fmt.Sprintf("Bus interface %s referenced by the transparent bridge of the %s is not %s bus interface",
					bridge.InitiatorRef, busContext, withArticle(term)))
			}
			if !isValidIsPresent(v.parser, bridge.IsPresent) {
				errs = append(errs, fmt.Sprintf("Transparent bridge within the %s has invalid isPresent", busContext))
			}
		}
	}
	return errs
}
