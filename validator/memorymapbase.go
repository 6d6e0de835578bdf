package validator

import (
	"fmt"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// MemoryMapBaseValidator checks what memory maps and memory remaps share:
// name, presence and the memory blocks.
type MemoryMapBaseValidator struct {
	parser        ExpressionParser
	addressBlocks *AddressBlockValidator
	subspaces     *SubspaceMapValidator
	index         *ipxact.Index
}

// NewMemoryMapBaseValidator validates memory blocks with the given block
// validators.
func NewMemoryMapBaseValidator(parser ExpressionParser, addressBlocks *AddressBlockValidator, subspaces *SubspaceMapValidator) *MemoryMapBaseValidator {
	return &MemoryMapBaseValidator{parser: parser, addressBlocks: addressBlocks, subspaces: subspaces, index: ipxact.NewIndex(nil)}
}

// ComponentChange re-indexes c for this validator and its block validators.
func (v *MemoryMapBaseValidator) ComponentChange(c *ipxact.Component) {
	v.setIndex(ipxact.NewIndex(c))
}

func (v *MemoryMapBaseValidator) setIndex(idx *ipxact.Index) {
	v.index = idx
	v.addressBlocks.setIndex(idx)
	v.subspaces.setIndex(idx)
}

// Validate checks m using aub, the address unit bits of the owning map.
func (v *MemoryMapBaseValidator) Validate(m *ipxact.MemoryMapBase, aub string) bool {
	return v.HasValidName(m) &&
		v.HasValidIsPresent(m) &&
		v.HasValidMemoryBlocks(m, aub)
}

func (v *MemoryMapBaseValidator) HasValidName(m *ipxact.MemoryMapBase) bool {
	return hasValidName(m.Name)
}

func (v *MemoryMapBaseValidator) HasValidIsPresent(m *ipxact.MemoryMapBase) bool {
	return isValidIsPresent(v.parser, m.IsPresent)
}

// HasValidMemoryBlocks requires unique and valid blocks, address block
// widths that are multiples of aub, and no overlap between present blocks.
func (v *MemoryMapBaseValidator) HasValidMemoryBlocks(m *ipxact.MemoryMapBase, aub string) bool {
	if len(duplicates(blockNames(m.MemoryBlocks))) > 0 {
		return false
	}
	reserve := &memoryReserve{}
	for _, block := range m.MemoryBlocks {
		switch b := block.(type) {
		case *ipxact.AddressBlock:
			if !v.addressBlocks.Validate(b, aub) || !v.widthIsMultipleOfAUB(b, aub) {
				return false
			}
		case *ipxact.SubspaceMap:
			if !v.subspaces.Validate(b) {
				return false
			}
		default:
			return false
		}
		v.reserveBlock(reserve, block)
	}
	return !reserve.hasOverlap()
}

func blockNames(blocks []ipxact.MemoryBlock) []string {
	names := make([]string, 0, len(blocks))
	for _, b := range blocks {
		names = append(names, b.Base().Name)
	}
	return names
}

// widthIsMultipleOfAUB passes when either value cannot be evaluated; those
// are reported by their own checks.
func (v *MemoryMapBaseValidator) widthIsMultipleOfAUB(ab *ipxact.AddressBlock, aub string) bool {
	unit, unitOK := evalUint(v.parser, defaultAUB(aub))
	width, widthOK := evalUint(v.parser, ab.Width)
	if !unitOK || !widthOK || unit == 0 {
		return true
	}
	return width%unit == 0
}

// blockRange returns the number of addresses a block occupies. Subspace
// maps occupy their segment, or the whole address space without one.
func (v *MemoryMapBaseValidator) blockRange(block ipxact.MemoryBlock) (uint64, bool) {
	switch b := block.(type) {
	case *ipxact.AddressBlock:
		return evalUint(v.parser, b.Range)
	case *ipxact.SubspaceMap:
		space, ok := v.index.InitiatorSpace(b.InitiatorRef)
		if !ok {
			return 0, false
		}
		if b.SegmentRef == "" {
			return evalUint(v.parser, space.Range)
		}
		for _, seg := range space.Segments {
			if seg.Name == b.SegmentRef {
				return evalUint(v.parser, seg.Range)
			}
		}
	}
	return 0, false
}

func (v *MemoryMapBaseValidator) reserveBlock(reserve *memoryReserve, block ipxact.MemoryBlock) {
	base := block.Base()
	if !isPresent(v.parser, base.IsPresent) {
		return
	}
	begin, beginOK := evalUint(v.parser, base.BaseAddress)
	size, sizeOK := v.blockRange(block)
	if beginOK && sizeOK && size > 0 {
		reserve.addSized(base.Name, begin, size)
	}
}

// FindErrorsIn reports m, an element ("memory map" or "memory remap")
// found within context.
func (v *MemoryMapBaseValidator) FindErrorsIn(errs []string, m *ipxact.MemoryMapBase, aub, element, context string) []string {
	if !v.HasValidName(m) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for %s %s within %s", element, m.Name, context))
	}
	if !v.HasValidIsPresent(m) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for %s %s within %s", element, m.Name, context))
	}
	return v.findErrorsInMemoryBlocks(errs, m, aub, element, context)
}

func (v *MemoryMapBaseValidator) findErrorsInMemoryBlocks(errs []string, m *ipxact.MemoryMapBase, aub, element, context string) []string {
	blockContext := fmt.Sprintf("%s %s within %s", element, m.Name, context)
	for _, name := range duplicates(blockNames(m.MemoryBlocks)) {
		errs = append(errs, fmt.Sprintf("Name %s of memory blocks in %s is not unique.", name, blockContext))
	}

	reserve := &memoryReserve{}
	for _, block := range m.MemoryBlocks {
		switch b := block.(type) {
		case *ipxact.AddressBlock:
			errs = v.addressBlocks.FindErrorsIn(errs, b, aub, blockContext)
			if !v.widthIsMultipleOfAUB(b, aub) {
				errs = append(errs, fmt.Sprintf("Width of address block %s is not a multiple of the address unit bits of %s %s",
					b.Name, element, m.Name))
			}
		case *ipxact.SubspaceMap:
			errs = v.subspaces.FindErrorsIn(errs, b, blockContext)
		default:
			errs = append(errs, fmt.Sprintf("Unknown memory block %s within %s", block.Base().Name, blockContext))
		}
		v.reserveBlock(reserve, block)
	}
	return reserve.findErrorsInOverlap(errs, "Memory blocks", blockContext)
}
