package validator

import (
	"fmt"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// ComponentValidator checks a whole component. It owns one instance of every
// element validator and keeps them pointed at the same component index.
type ComponentValidator struct {
	parser    ExpressionParser
	component *ipxact.Component
	index     *ipxact.Index

	parameters         *ParameterValidator
	memoryMaps         *MemoryMapValidator
	addressSpaces      *AddressSpaceValidator
	busInterfaces      *BusInterfaceValidator
	indirectInterfaces *IndirectInterfaceValidator
}

// NewComponentValidator wires the element validators around parser.
func NewComponentValidator(parser ExpressionParser) *ComponentValidator {
	parameters := NewParameterValidator(parser)
	registerBase := NewRegisterBaseValidator(parser, parameters)
	fields := NewFieldValidator(parser, parameters)
	registers := NewRegisterValidator(parser, registerBase, fields)
	blocks := NewMemoryBlockValidator(parser, parameters)
	addressBlocks := NewAddressBlockValidator(parser, blocks, registers)
	subspaces := NewSubspaceMapValidator(parser, blocks)
	mapBase := NewMemoryMapBaseValidator(parser, addressBlocks, subspaces)

	v := &ComponentValidator{
		parser:             parser,
		parameters:         parameters,
		memoryMaps:         NewMemoryMapValidator(parser, mapBase),
		addressSpaces:      NewAddressSpaceValidator(parser, parameters),
		busInterfaces:      NewBusInterfaceValidator(parser),
		indirectInterfaces: NewIndirectInterfaceValidator(parser, parameters),
	}
	v.setIndex(ipxact.NewIndex(nil))
	return v
}

// ComponentChange rebuilds the index of c and hands it to every element
// validator. Call it whenever the component's collections are replaced.
func (v *ComponentValidator) ComponentChange(c *ipxact.Component) {
	v.component = c
	v.setIndex(ipxact.NewIndex(c))
}

func (v *ComponentValidator) setIndex(idx *ipxact.Index) {
	v.index = idx
	v.parameters.setIndex(idx)
	v.memoryMaps.setIndex(idx)
	v.busInterfaces.setIndex(idx)
	v.indirectInterfaces.setIndex(idx)
}

// use switches to c when it is not the component last seen.
func (v *ComponentValidator) use(c *ipxact.Component) {
	if v.component != c {
		v.ComponentChange(c)
	}
}

// Context returns the context string used for top level elements.
func (v *ComponentValidator) Context() string { return v.index.Context }

// Index returns the lookup tables of the current component.
func (v *ComponentValidator) Index() *ipxact.Index { return v.index }

func (v *ComponentValidator) Parameters() *ParameterValidator { return v.parameters }

func (v *ComponentValidator) MemoryMaps() *MemoryMapValidator { return v.memoryMaps }

func (v *ComponentValidator) AddressSpaces() *AddressSpaceValidator { return v.addressSpaces }

func (v *ComponentValidator) BusInterfaces() *BusInterfaceValidator { return v.busInterfaces }

func (v *ComponentValidator) IndirectInterfaces() *IndirectInterfaceValidator {
	return v.indirectInterfaces
}

// Validate re-indexes c when it is a different component and reports whether
// every area of it is valid.
func (v *ComponentValidator) Validate(c *ipxact.Component) bool {
	v.use(c)
	return v.HasValidNames(c) &&
		v.HasValidParameters(c) &&
		v.HasValidMemoryMaps(c) &&
		v.HasValidAddressSpaces(c) &&
		v.HasValidBusInterfaces(c) &&
		v.HasValidIndirectInterfaces(c)
}

// FindErrorsIn reports every problem of c, using "component <vlnv>" as the
// context of its top level elements.
func (v *ComponentValidator) FindErrorsIn(errs []string, c *ipxact.Component) []string {
	v.use(c)
	errs = v.FindErrorsInNames(errs, c)
	errs = v.FindErrorsInParameters(errs, c)
	for _, m := range c.MemoryMaps {
		errs = v.memoryMaps.FindErrorsIn(errs, m, v.Context())
	}
	for _, s := range c.AddressSpaces {
		errs = v.addressSpaces.FindErrorsIn(errs, s, v.Context())
	}
	for _, b := range c.BusInterfaces {
		errs = v.busInterfaces.FindErrorsIn(errs, b, v.Context())
	}
	for _, ii := range c.IndirectInterfaces {
		errs = v.indirectInterfaces.FindErrorsIn(errs, ii, v.Context())
	}
	return errs
}

// namedGroup is a collection of component children whose names must be
// unique.
type namedGroup struct {
	label string
	names []string
}

func componentNameGroups(c *ipxact.Component) []namedGroup {
	groups := []namedGroup{
		{label: "Memory map name %s within %s is not unique."},
		{label: "Bus interface name %s within %s is not unique."},
		{label: "Address space name %s within %s is not unique."},
		{label: "Indirect interface name '%s' within %s is not unique."},
		{label: "Remap state name %s within %s is not unique."},
		{label: "Mode name %s within %s is not unique."},
		{label: "Choice name %s within %s is not unique."},
	}
	for _, m := range c.MemoryMaps {
		groups[0].names = append(groups[0].names, m.Name)
	}
	for _, b := range c.BusInterfaces {
		groups[1].names = append(groups[1].names, b.Name)
	}
	for _, s := range c.AddressSpaces {
		groups[2].names = append(groups[2].names, s.Name)
	}
	for _, ii := range c.IndirectInterfaces {
		groups[3].names = append(groups[3].names, ii.Name)
	}
	for _, r := range c.RemapStates {
		groups[4].names = append(groups[4].names, r.Name)
	}
	for _, m := range c.Modes {
		groups[5].names = append(groups[5].names, m.Name)
	}
	for _, ch := range c.Choices {
		groups[6].names = append(groups[6].names, ch.Name)
	}
	return groups
}

// HasValidNames checks that sibling names are unique, and that remap
// states, modes and choices are named and choices enumerate something.
func (v *ComponentValidator) HasValidNames(c *ipxact.Component) bool {
	for _, g := range componentNameGroups(c) {
		if len(duplicates(g.names)) > 0 {
			return false
		}
	}
	for _, r := range c.RemapStates {
		if !hasValidName(r.Name) {
			return false
		}
	}
	for _, m := range c.Modes {
		if !hasValidName(m.Name) {
			return false
		}
	}
	for _, ch := range c.Choices {
		if !hasValidName(ch.Name) || len(ch.Enumerations) == 0 {
			return false
		}
	}
	return true
}

// FindErrorsInNames reports invalid and duplicated names of the component's
// top-level collections.
func (v *ComponentValidator) FindErrorsInNames(errs []string, c *ipxact.Component) []string {
	v.use(c)
	context := v.Context()
	for _, g := range componentNameGroups(c) {
		for _, name := range duplicates(g.names) {
			errs = append(errs, fmt.Sprintf(g.label, name, context))
		}
	}
	for _, r := range c.RemapStates {
		if !hasValidName(r.Name) {
			errs = append(errs, fmt.Sprintf("Invalid name specified for remap state %s within %s", r.Name, context))
		}
	}
	for _, m := range c.Modes {
		if !hasValidName(m.Name) {
			errs = append(errs, fmt.Sprintf("Invalid name specified for mode %s within %s", m.Name, context))
		}
	}
	for _, ch := range c.Choices {
		if !hasValidName(ch.Name) {
			errs = append(errs, fmt.Sprintf("Invalid name specified for choice %s within %s", ch.Name, context))
		}
		if len(ch.Enumerations) == 0 {
			errs = append(errs, fmt.Sprintf("Choice %s within %s must contain at least one enumeration", ch.Name, context))
		}
	}
	return errs
}

func (v *ComponentValidator) HasValidParameters(c *ipxact.Component) bool {
	v.use(c)
	return hasValidParameters(v.parameters, c.Parameters)
}

func (v *ComponentValidator) FindErrorsInParameters(errs []string, c *ipxact.Component) []string {
	v.use(c)
	return findErrorsInParameters(errs, v.parameters, c.Parameters, v.Context())
}

func (v *ComponentValidator) HasValidMemoryMaps(c *ipxact.Component) bool {
	v.use(c)
	for _, m := range c.MemoryMaps {
		if !v.memoryMaps.Validate(m) {
			return false
		}
	}
	return true
}

func (v *ComponentValidator) HasValidAddressSpaces(c *ipxact.Component) bool {
	v.use(c)
	for _, s := range c.AddressSpaces {
		if !v.addressSpaces.Validate(s) {
			return false
		}
	}
	return true
}

func (v *ComponentValidator) HasValidBusInterfaces(c *ipxact.Component) bool {
	v.use(c)
	for _, b := range c.BusInterfaces {
		if !v.busInterfaces.Validate(b) {
			return false
		}
	}
	return true
}

func (v *ComponentValidator) HasValidIndirectInterfaces(c *ipxact.Component) bool {
	v.use(c)
	for _, ii := range c.IndirectInterfaces {
		if !v.indirectInterfaces.Validate(ii) {
			return false
		}
	}
	return true
}
