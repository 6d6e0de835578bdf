package validator

import (
	"fmt"
	"strings"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// MemoryMapValidator checks a memory map and its memory remaps.
type MemoryMapValidator struct {
	parser ExpressionParser
	base   *MemoryMapBaseValidator
	index  *ipxact.Index
}

// NewMemoryMapValidator validates maps and their remaps with base.
func NewMemoryMapValidator(parser ExpressionParser, base *MemoryMapBaseValidator) *MemoryMapValidator {
	return &MemoryMapValidator{parser: parser, base: base, index: ipxact.NewIndex(nil)}
}

// ComponentChange refreshes the available remap states, modes and the
// revision.
func (v *MemoryMapValidator) ComponentChange(c *ipxact.Component) {
	v.setIndex(ipxact.NewIndex(c))
}

func (v *MemoryMapValidator) setIndex(idx *ipxact.Index) {
	v.index = idx
	v.base.setIndex(idx)
}

// Validate checks m, its address unit bits and its remaps.
func (v *MemoryMapValidator) Validate(m *ipxact.MemoryMap) bool {
	return v.base.Validate(&m.MemoryMapBase, m.AddressUnitBits) &&
		v.HasValidAddressUnitBits(m) &&
		v.HasValidMemoryRemaps(m) &&
		v.HasValidStructure(m)
}

// HasValidAddressUnitBits requires a positive value. A map without address
// unit bits must not contain memory blocks.
func (v *MemoryMapValidator) HasValidAddressUnitBits(m *ipxact.MemoryMap) bool {
	if strings.TrimSpace(m.AddressUnitBits) == "" {
		return len(m.MemoryBlocks) == 0
	}
	n, ok := evalUint(v.parser, m.AddressUnitBits)
	return ok && n > 0
}

// HasValidMemoryRemaps scans the remaps in order and fails on a repeated
// name, a repeated remap state, an unknown remap state, an invalid remap
// body or, in 2022, an invalid mode reference.
func (v *MemoryMapValidator) HasValidMemoryRemaps(m *ipxact.MemoryMap) bool {
	names := map[string]bool{}
	states := map[string]bool{}
	modeRefs := newModeRefChecker(v.index.Modes)
	for _, remap := range m.MemoryRemaps {
		if names[remap.Name] ||
			(remap.RemapState != "" && states[remap.RemapState]) ||
			!v.RemapStateIsValid(remap) ||
			!v.base.Validate(&remap.MemoryMapBase, m.AddressUnitBits) ||
			!v.remapHasValidStructure(remap) {
			return false
		}
		if v.index.Revision == ipxact.Std22 && !modeRefs.valid(remap.ModeRefs) {
			return false
		}
		names[remap.Name] = true
		if remap.RemapState != "" {
			states[remap.RemapState] = true
		}
	}
	return true
}

// RemapStateIsValid accepts an empty remap state or the name of a remap
// state of the component.
func (v *MemoryMapValidator) RemapStateIsValid(remap *ipxact.MemoryRemap) bool {
	if remap.RemapState == "" {
		return true
	}
	_, ok := v.index.RemapStates[remap.RemapState]
	return ok
}

// HasValidStructure rejects a 2022 map that has a definition reference
// together with locally defined contents.
func (v *MemoryMapValidator) HasValidStructure(m *ipxact.MemoryMap) bool {
	if v.index.Revision != ipxact.Std22 || m.DefinitionRef == "" {
		return true
	}
	return len(m.MemoryBlocks) == 0 && len(m.MemoryRemaps) == 0 &&
		m.AddressUnitBits == "" && m.Shared == ""
}

func (v *MemoryMapValidator) remapHasValidStructure(remap *ipxact.MemoryRemap) bool {
	return v.index.Revision != ipxact.Std22 || remap.DefinitionRef == "" || len(remap.MemoryBlocks) == 0
}

// FindErrorsIn appends a message for every failing check of m and its remaps.
func (v *MemoryMapValidator) FindErrorsIn(errs []string, m *ipxact.MemoryMap, context string) []string {
	errs = v.base.FindErrorsIn(errs, &m.MemoryMapBase, m.AddressUnitBits, "memory map", context)
	if !v.HasValidAddressUnitBits(m) {
		errs = append(errs, fmt.Sprintf("Invalid address unit bits specified for memory map %s within %s", m.Name, context))
	}
	errs = v.findErrorsInMemoryRemaps(errs, m)
	if !v.HasValidStructure(m) {
		errs = append(errs, fmt.Sprintf("Memory map %s in %s cannot contain both a definition reference and memory blocks, remaps or definitions for address unit bits or shared values.",
			m.Name, context))
	}
	return errs
}

func (v *MemoryMapValidator) findErrorsInMemoryRemaps(errs []string, m *ipxact.MemoryMap) []string {
	mapContext := "memory map " + m.Name
	names := make([]string, 0, len(m.MemoryRemaps))
	states := map[string]bool{}
	modeRefs := newModeRefChecker(v.index.Modes)
	for _, remap := range m.MemoryRemaps {
		names = append(names, remap.Name)
		errs = v.base.FindErrorsIn(errs, &remap.MemoryMapBase, m.AddressUnitBits, "memory remap", mapContext)

		if !v.RemapStateIsValid(remap) {
			errs = append(errs, fmt.Sprintf("Invalid remap state %s set for memory remap %s within %s", remap.RemapState, remap.Name, mapContext))
		}
		if remap.RemapState != "" {
			if states[remap.RemapState] {
				errs = append(errs, fmt.Sprintf("Remap states are not unique for each memory remap within %s", mapContext))
			}
			states[remap.RemapState] = true
		}
		if v.index.Revision == ipxact.Std22 {
			errs = modeRefs.findErrors(errs, remap.ModeRefs, "memory remap "+remap.Name, mapContext)
		}
		if !v.remapHasValidStructure(remap) {
			errs = append(errs, fmt.Sprintf("Memory remap %s in %s cannot contain both a definition reference and address blocks / subspace maps.",
				remap.Name, mapContext))
		}
	}
	for _, name := range duplicates(names) {
		errs = append(errs, fmt.Sprintf("Name %s of memory remaps in %s is not unique.", name, mapContext))
	}
	return errs
}
