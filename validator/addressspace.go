package validator

import (
	"fmt"
	"strings"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// AddressSpaceValidator checks an address space and its segments.
type AddressSpaceValidator struct {
	parser     ExpressionParser
	parameters *ParameterValidator
}

// NewAddressSpaceValidator returns a validator for component address spaces.
func NewAddressSpaceValidator(parser ExpressionParser, parameters *ParameterValidator) *AddressSpaceValidator {
	return &AddressSpaceValidator{parser: parser, parameters: parameters}
}

// Validate reports whether s passes every address space check.
func (v *AddressSpaceValidator) Validate(s *ipxact.AddressSpace) bool {
	return v.HasValidName(s) &&
		v.HasValidIsPresent(s) &&
		v.HasValidRange(s) &&
		v.HasValidWidth(s) &&
		v.HasValidSegments(s) &&
		v.HasValidAddressUnitBits(s) &&
		hasValidParameters(v.parameters, s.Parameters)
}

func (v *AddressSpaceValidator) HasValidName(s *ipxact.AddressSpace) bool {
	return hasValidName(s.Name)
}

func (v *AddressSpaceValidator) HasValidIsPresent(s *ipxact.AddressSpace) bool {
	return isValidIsPresent(v.parser, s.IsPresent)
}

func (v *AddressSpaceValidator) HasValidRange(s *ipxact.AddressSpace) bool {
	n, ok := evalUint(v.parser, s.Range)
	return ok && n > 0
}

func (v *AddressSpaceValidator) HasValidWidth(s *ipxact.AddressSpace) bool {
	_, ok := evalUint(v.parser, s.Width)
	return ok
}

// HasValidAddressUnitBits accepts an empty value, which means 8 bits.
func (v *AddressSpaceValidator) HasValidAddressUnitBits(s *ipxact.AddressSpace) bool {
	if strings.TrimSpace(s.AddressUnitBits) == "" {
		return true
	}
	n, ok := evalUint(v.parser, s.AddressUnitBits)
	return ok && n > 0
}

// HasValidSegments requires uniquely named, valid segments that fit in the
// space and do not overlap.
func (v *AddressSpaceValidator) HasValidSegments(s *ipxact.AddressSpace) bool {
	names := make([]string, 0, len(s.Segments))
	reserve := &memoryReserve{}
	for _, seg := range s.Segments {
		names = append(names, seg.Name)
		if !v.segmentIsValid(seg) || !v.segmentIsContained(s, seg) {
			return false
		}
		v.reserveSegment(reserve, seg)
	}
	return len(duplicates(names)) == 0 && !reserve.hasOverlap()
}

func (v *AddressSpaceValidator) segmentIsValid(seg *ipxact.Segment) bool {
	return hasValidName(seg.Name) &&
		isValidIsPresent(v.parser, seg.IsPresent) &&
		v.segmentHasValidAddressOffset(seg) &&
		v.segmentHasValidRange(seg)
}

func (v *AddressSpaceValidator) segmentHasValidAddressOffset(seg *ipxact.Segment) bool {
	_, ok := evalUint(v.parser, seg.AddressOffset)
	return ok
}

func (v *AddressSpaceValidator) segmentHasValidRange(seg *ipxact.Segment) bool {
	n, ok := evalUint(v.parser, seg.Range)
	return ok && n > 0
}

// segmentIsContained passes when any bound cannot be evaluated; those are
// reported on their own.
func (v *AddressSpaceValidator) segmentIsContained(s *ipxact.AddressSpace, seg *ipxact.Segment) bool {
	spaceRange, spaceOK := evalUint(v.parser, s.Range)
	offset, offsetOK := evalUint(v.parser, seg.AddressOffset)
	size, sizeOK := evalUint(v.parser, seg.Range)
	if !spaceOK || !offsetOK || !sizeOK {
		return true
	}
	return size <= spaceRange && offset <= spaceRange-size
}

func (v *AddressSpaceValidator) reserveSegment(reserve *memoryReserve, seg *ipxact.Segment) {
	if !isPresent(v.parser, seg.IsPresent) {
		return
	}
	offset, offsetOK := evalUint(v.parser, seg.AddressOffset)
	size, sizeOK := evalUint(v.parser, seg.Range)
	if offsetOK && sizeOK {
		reserve.addSized(seg.Name, offset, size)
	}
}

// FindErrorsIn appends a message for every failing check of s.
func (v *AddressSpaceValidator) FindErrorsIn(errs []string, s *ipxact.AddressSpace, context string) []string {
	spaceContext := fmt.Sprintf("address space %s within %s", s.Name, context)

	if !v.HasValidName(s) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for address space %s within %s", s.Name, context))
	}
	if !v.HasValidIsPresent(s) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for address space %s within %s", s.Name, context))
	}
	if !v.HasValidRange(s) {
		errs = append(errs, fmt.Sprintf("Invalid range set for address space %s within %s", s.Name, context))
	}
	if !v.HasValidWidth(s) {
		errs = append(errs, fmt.Sprintf("Invalid width set for address space %s within %s", s.Name, context))
	}
	errs = v.findErrorsInSegments(errs, s, spaceContext)
	if !v.HasValidAddressUnitBits(s) {
		errs = append(errs, fmt.Sprintf("Invalid address unit bits set for address space %s within %s", s.Name, context))
	}
	return findErrorsInParameters(errs, v.parameters, s.Parameters, spaceContext)
}

func (v *AddressSpaceValidator) findErrorsInSegments(errs []string, s *ipxact.AddressSpace, context string) []string {
	names := make([]string, 0, len(s.Segments))
	reserve := &memoryReserve{}
	for _, seg := range s.Segments {
		names = append(names, seg.Name)
		if !hasValidName(seg.Name) {
			errs = append(errs, fmt.Sprintf("Invalid name specified for segment %s within %s", seg.Name, context))
		}
		if !isValidIsPresent(v.parser, seg.IsPresent) {
			errs = append(errs, fmt.Sprintf("Invalid isPresent set for segment %s within %s", seg.Name, context))
		}
		if !v.segmentHasValidAddressOffset(seg) {
			errs = append(errs, fmt.Sprintf("Invalid address offset set for segment %s within %s", seg.Name, context))
		}
		if !v.segmentHasValidRange(seg) {
			errs = append(errs, fmt.Sprintf("Invalid range set for segment %s within %s", seg.Name, context))
		}
		if !v.segmentIsContained(s, seg) {
			errs = append(errs, fmt.Sprintf("Segment %s is not contained within %s", seg.Name, context))
		}
		v.reserveSegment(reserve, seg)
	}
	for _, name := range duplicates(names) {
		errs = append(errs, fmt.Sprintf("Name %s of segments in %s is not unique", name, context))
	}
	return reserve.findErrorsInOverlap(errs, "Segments", context)
}
