package validator

import (
	"fmt"
	"math"
	"strings"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// AddressBlockValidator checks an address block and the registers it holds.
type AddressBlockValidator struct {
	parser    ExpressionParser
	blocks    *MemoryBlockValidator
	registers *RegisterValidator
	index     *ipxact.Index
}

// NewAddressBlockValidator checks blocks with the shared memory block checks and
// registers with the given register validator.
func NewAddressBlockValidator(parser ExpressionParser, blocks *MemoryBlockValidator, registers *RegisterValidator) *AddressBlockValidator {
	return &AddressBlockValidator{parser: parser, blocks: blocks, registers: registers, index: ipxact.NewIndex(nil)}
}

// ComponentChange re-indexes c and hands the index to the register validator.
func (v *AddressBlockValidator) ComponentChange(c *ipxact.Component) {
	v.setIndex(ipxact.NewIndex(c))
}

func (v *AddressBlockValidator) setIndex(idx *ipxact.Index) {
	v.index = idx
	v.registers.setIndex(idx)
}

// Validate checks ab as a block of a memory map whose address unit bits
// are aub.
func (v *AddressBlockValidator) Validate(ab *ipxact.AddressBlock, aub string) bool {
	return v.blocks.Validate(&ab.MemoryBlockBase) &&
		v.HasValidRange(ab) &&
		v.HasValidWidth(ab) &&
		v.HasValidUsage(ab) &&
		v.HasValidRegisters(ab, aub) &&
		v.HasValidStructure(ab)
}

func (v *AddressBlockValidator) definedByReference(ab *ipxact.AddressBlock) bool {
	return v.index.Revision == ipxact.Std22 && ab.DefinitionRef != ""
}

func (v *AddressBlockValidator) HasValidRange(ab *ipxact.AddressBlock) bool {
	if ab.Range == "" && v.definedByReference(ab) {
		return true
	}
	n, ok := evalUint(v.parser, ab.Range)
	return ok && n > 0
}

func (v *AddressBlockValidator) HasValidWidth(ab *ipxact.AddressBlock) bool {
	if ab.Width == "" && v.definedByReference(ab) {
		return true
	}
	_, ok := evalUint(v.parser, ab.Width)
	return ok
}

// HasValidUsage rejects registers in reserved blocks, and registers with an
// access or volatile value in memory blocks.
func (v *AddressBlockValidator) HasValidUsage(ab *ipxact.AddressBlock) bool {
	switch ab.Usage {
	case ipxact.UsageUnspecified, ipxact.UsageRegister:
		return true
	case ipxact.UsageReserved:
		return len(ab.Registers) == 0
	case ipxact.UsageMemory:
		for _, r := range ab.Registers {
			if r.Volatile != "" || r.Access != ipxact.AccessUnspecified {
				return false
			}
		}
		return true
	}
	return false
}

// HasValidStructure rejects a 2022 block that is defined both by reference
// and locally.
func (v *AddressBlockValidator) HasValidStructure(ab *ipxact.AddressBlock) bool {
	if !v.definedByReference(ab) {
		return true
	}
	return ab.TypeIdentifier == "" && ab.Range == "" && ab.Width == "" &&
		ab.Usage == ipxact.UsageUnspecified && ab.Volatile == "" &&
		len(ab.Parameters) == 0 && len(ab.Registers) == 0
}

// HasValidRegisters requires unique, valid registers that fit the block
// width and range without overlapping.
func (v *AddressBlockValidator) HasValidRegisters(ab *ipxact.AddressBlock, aub string) bool {
	names := make([]string, 0, len(ab.Registers))
	for _, r := range ab.Registers {
		names = append(names, r.Name)
	}
	if len(duplicates(names)) > 0 {
		return false
	}

	layout := v.newRegisterLayout(ab, aub)
	for i, r := range ab.Registers {
		if !v.registers.Validate(r) ||
			v.registerIsWiderThanBlock(r, ab) ||
			!hasValidVolatileForRegister(ab, r) ||
			(v.index.Revision == ipxact.Std14 && !accessAllows(ab.Access, r.Access)) ||
			!registersShareDefinition(r, ab.Registers[:i]) {
			return false
		}
		if !layout.place(r) {
			return false
		}
	}
	return !layout.reserve.hasOverlap()
}

func (v *AddressBlockValidator) registerIsWiderThanBlock(r *ipxact.Register, ab *ipxact.AddressBlock) bool {
	size, sizeOK := evalUint(v.parser, r.Size)
	width, widthOK := evalUint(v.parser, ab.Width)
	return sizeOK && widthOK && size > width
}

func hasValidVolatileForRegister(ab *ipxact.AddressBlock, r *ipxact.Register) bool {
	if ab.Volatile != "false" {
		return true
	}
	if r.Volatile == "true" {
		return false
	}
	for _, f := range r.Fields {
		if f.Volatile == "true" {
			return false
		}
	}
	return true
}

// registersShareDefinition compares r with the first earlier register that
// has the same type identifier.
func registersShareDefinition(r *ipxact.Register, earlier []*ipxact.Register) bool {
	if r.TypeIdentifier == "" {
		return true
	}
	for _, o := range earlier {
		if o.TypeIdentifier == r.TypeIdentifier {
			return o.Size == r.Size && o.Volatile == r.Volatile && o.Access == r.Access
		}
	}
	return true
}

// registerLayout places registers in least addressable units inside the
// block range.
type registerLayout struct {
	parser     ExpressionParser
	aub        uint64
	aubOK      bool
	blockRange uint64
	reserve    memoryReserve
}

func (v *AddressBlockValidator) newRegisterLayout(ab *ipxact.AddressBlock, aub string) *registerLayout {
	l := &registerLayout{parser: v.parser}
	l.aub, l.aubOK = evalUint(v.parser, defaultAUB(aub))
	l.blockRange, _ = evalUint(v.parser, ab.Range)
	return l
}

// sizeInLAU rounds the register size up to whole address units and
// multiplies by the dimension.
func (l *registerLayout) sizeInLAU(r *ipxact.Register) uint64 {
	size, _ := evalUint(l.parser, r.Size)
	units := (size + l.aub - 1) / l.aub
	if strings.TrimSpace(r.Dimension) != "" {
		if dim, ok := evalUint(l.parser, r.Dimension); ok {
			if dim != 0 && units > math.MaxUint64/dim {
				return math.MaxUint64
			}
			units *= dim
		}
	}
	return units
}

// place reserves the register's address range and reports whether it fits
// the block. Registers are not placed when the address unit bits are
// unusable.
func (l *registerLayout) place(r *ipxact.Register) bool {
	if !l.aubOK || l.aub == 0 {
		return true
	}
	units := l.sizeInLAU(r)
	begin, _ := evalUint(l.parser, r.AddressOffset)
	if isPresent(l.parser, r.IsPresent) {
		l.reserve.addSized(r.Name, begin, units)
	}
	return units <= l.blockRange && begin <= l.blockRange-units
}

// defaultAUB returns 8 for an unset address unit bits value.
func defaultAUB(aub string) string {
	if strings.TrimSpace(aub) == "" {
		return "8"
	}
	return aub
}

// FindErrorsIn reports the block ab of a memory map with address unit bits
// aub.
func (v *AddressBlockValidator) FindErrorsIn(errs []string, ab *ipxact.AddressBlock, aub, context string) []string {
	errs = v.blocks.FindErrorsIn(errs, &ab.MemoryBlockBase, "address block", context)
	if !v.HasValidRange(ab) {
		errs = append(errs, fmt.Sprintf("Invalid range set for address block %s within %s", ab.Name, context))
	}
	if !v.HasValidWidth(ab) {
		errs = append(errs, fmt.Sprintf("Invalid width set for address block %s within %s", ab.Name, context))
	}
	errs = v.findErrorsInUsage(errs, ab, context)
	errs = v.findErrorsInRegisters(errs, ab, aub, fmt.Sprintf("address block %s within %s", ab.Name, context))
	if !v.HasValidStructure(ab) {
		errs = append(errs, fmt.Sprintf("Address block %s in %s must not be explicitly defined while also containing a definition reference.", ab.Name, context))
	}
	return errs
}

func (v *AddressBlockValidator) findErrorsInUsage(errs []string, ab *ipxact.AddressBlock, context string) []string {
	switch ab.Usage {
	case ipxact.UsageUnspecified, ipxact.UsageRegister:
	case ipxact.UsageReserved:
		if len(ab.Registers) > 0 {
			errs = append(errs, fmt.Sprintf("Registers cannot be contained in address block %s with usage %s within %s", ab.Name, ab.Usage, context))
		}
	case ipxact.UsageMemory:
		for _, r := range ab.Registers {
			if r.Volatile != "" || r.Access != ipxact.AccessUnspecified {
				errs = append(errs, fmt.Sprintf("Access and volatile values must be empty for register %s in address block %s with usage %s within %s",
					r.Name, ab.Name, ab.Usage, context))
			}
		}
	default:
		errs = append(errs, fmt.Sprintf("Invalid usage %s set for address block %s within %s", ab.Usage, ab.Name, context))
	}
	return errs
}

func (v *AddressBlockValidator) findErrorsInRegisters(errs []string, ab *ipxact.AddressBlock, aub, context string) []string {
	names := make([]string, 0, len(ab.Registers))
	for _, r := range ab.Registers {
		names = append(names, r.Name)
	}
	for _, name := range duplicates(names) {
		errs = append(errs, fmt.Sprintf("Name %s of registers in addressBlock %s is not unique.", name, ab.Name))
	}

	layout := v.newRegisterLayout(ab, aub)
	for i, r := range ab.Registers {
		errs = v.registers.FindErrorsIn(errs, r, context)
		if v.registerIsWiderThanBlock(r, ab) {
			errs = append(errs, fmt.Sprintf("Register %s size must not be greater than the containing addressBlock %s width.", r.Name, ab.Name))
		}
		if !hasValidVolatileForRegister(ab, r) {
			errs = append(errs, fmt.Sprintf("Volatile value cannot be set to false for addressBlock %s containing a register or register field with volatile true", ab.Name))
		}
		if !registersShareDefinition(r, ab.Registers[:i]) {
			errs = append(errs, fmt.Sprintf("Registers containing the same type identifiers must contain similar register definitions within %s", context))
		}
		if v.index.Revision == ipxact.Std14 && !accessAllows(ab.Access, r.Access) {
			errs = append(errs, fmt.Sprintf("Access cannot be set to %s in register %s, where containing address block %s has access %s",
				r.Access, r.Name, ab.Name, ab.Access))
		}
		if !layout.place(r) {
			errs = append(errs, fmt.Sprintf("Register %s is not contained within %s", r.Name, context))
		}
	}
	return layout.reserve.findErrorsInOverlap(errs, "Register data", context)
}
