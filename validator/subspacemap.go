package validator

import (
	"fmt"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// SubspaceMapValidator checks a subspace map: the memory block attributes,
// the initiator bus interface it references and the optional segment of
// that interface's address space.
type SubspaceMapValidator struct {
	parser ExpressionParser
	blocks *MemoryBlockValidator
	index  *ipxact.Index
}

// NewSubspaceMapValidator returns a validator with an empty index; call
// ComponentChange before validating.
func NewSubspaceMapValidator(parser ExpressionParser, blocks *MemoryBlockValidator) *SubspaceMapValidator {
	return &SubspaceMapValidator{parser: parser, blocks: blocks, index: ipxact.NewIndex(nil)}
}

// ComponentChange refreshes the available bus interfaces, address spaces
// and the revision.
func (v *SubspaceMapValidator) ComponentChange(c *ipxact.Component) {
	v.setIndex(ipxact.NewIndex(c))
}

func (v *SubspaceMapValidator) setIndex(idx *ipxact.Index) { v.index = idx }

// Validate checks the block attributes and both references of s.
func (v *SubspaceMapValidator) Validate(s *ipxact.SubspaceMap) bool {
	return v.blocks.Validate(&s.MemoryBlockBase) &&
		v.HasValidMasterReference(s) &&
		v.HasValidSegmentReference(s)
}

// HasValidMasterReference requires a reference to a bus interface in the
// initiating mode of the document revision: master in 2014, initiator in
// 2022.
func (v *SubspaceMapValidator) HasValidMasterReference(s *ipxact.SubspaceMap) bool {
	if s.InitiatorRef == "" {
		return false
	}
	bus, ok := v.index.BusInterfaces[s.InitiatorRef]
	return ok && bus.Mode == v.index.Revision.InitiatorMode()
}

// HasValidSegmentReference accepts an empty reference. Otherwise the
// address space behind the initiator interface must resolve and contain the
// segment.
func (v *SubspaceMapValidator) HasValidSegmentReference(s *ipxact.SubspaceMap) bool {
	if s.SegmentRef == "" {
		return true
	}
	space, ok := v.index.InitiatorSpace(s.InitiatorRef)
	return ok && space.HasSegment(s.SegmentRef)
}

// FindErrorsIn appends a message for every failing check of s.
func (v *SubspaceMapValidator) FindErrorsIn(errs []string, s *ipxact.SubspaceMap, context string) []string {
	errs = v.blocks.FindErrorsIn(errs, &s.MemoryBlockBase, "subspace map", context)
	errs = v.findErrorsInMasterReference(errs, s, context)
	if !v.HasValidSegmentReference(s) {
		space, ok := v.index.InitiatorSpace(s.InitiatorRef)
		if ok {
			errs = append(errs, fmt.Sprintf("Segment %s referenced in %s within %s does not exist in address space %s",
				s.SegmentRef, s.Name, context, space.Name))
		} else {
			errs = append(errs, fmt.Sprintf("Could not find the address space of segment %s referenced in %s within %s",
				s.SegmentRef, s.Name, context))
		}
	}
	return errs
}

func (v *SubspaceMapValidator) findErrorsInMasterReference(errs []string, s *ipxact.SubspaceMap, context string) []string {
	term := v.index.Revision.InitiatorTerm()
	if s.InitiatorRef == "" {
		return append(errs, fmt.Sprintf("No %s bus interface reference set for %s within %s", term, s.Name, context))
	}
	bus, ok := v.index.BusInterfaces[s.InitiatorRef]
	if !ok {
		return append(errs, fmt.Sprintf("Bus interface %s referenced in %s within %s does not exist", s.InitiatorRef, s.Name, context))
	}
	if bus.Mode != v.index.Revision.InitiatorMode() {
		errs = append(errs, fmt.Sprintf("Bus interface %s referenced in %s within %s is not %s bus interface",
			s.InitiatorRef, s.Name, context, withArticle(term)))
	}
	return errs
}
