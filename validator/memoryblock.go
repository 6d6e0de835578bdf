package validator

import (
	"fmt"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// MemoryBlockValidator checks the attributes shared by address blocks and
// subspace maps.
type MemoryBlockValidator struct {
	parser     ExpressionParser
	parameters *ParameterValidator
}

// NewMemoryBlockValidator returns the checks shared by address blocks and
// subspace maps.
func NewMemoryBlockValidator(parser ExpressionParser, parameters *ParameterValidator) *MemoryBlockValidator {
	return &MemoryBlockValidator{parser: parser, parameters: parameters}
}

// Validate checks the name, presence, base address and parameters of b.
func (v *MemoryBlockValidator) Validate(b *ipxact.MemoryBlockBase) bool {
	return v.HasValidName(b) &&
		v.HasValidIsPresent(b) &&
		v.HasValidBaseAddress(b) &&
		v.HasValidParameters(b)
}

func (v *MemoryBlockValidator) HasValidName(b *ipxact.MemoryBlockBase) bool {
	return hasValidName(b.Name)
}

func (v *MemoryBlockValidator) HasValidIsPresent(b *ipxact.MemoryBlockBase) bool {
	return isValidIsPresent(v.parser, b.IsPresent)
}

func (v *MemoryBlockValidator) HasValidBaseAddress(b *ipxact.MemoryBlockBase) bool {
	_, ok := evalUint(v.parser, b.BaseAddress)
	return ok
}

func (v *MemoryBlockValidator) HasValidParameters(b *ipxact.MemoryBlockBase) bool {
	return hasValidParameters(v.parameters, b.Parameters)
}

// FindErrorsIn reports the block using element ("address block", "subspace
// map") to name its kind.
func (v *MemoryBlockValidator) FindErrorsIn(errs []string, b *ipxact.MemoryBlockBase, element, context string) []string {
	if !v.HasValidName(b) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for %s %s within %s", element, b.Name, context))
	}
	if !v.HasValidIsPresent(b) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for %s %s within %s", element, b.Name, context))
	}
	if !v.HasValidBaseAddress(b) {
		errs = append(errs, fmt.Sprintf("Invalid baseAddress set for %s %s within %s", element, b.Name, context))
	}
	return findErrorsInParameters(errs, v.parameters, b.Parameters, fmt.Sprintf("%s %s", element, b.Name))
}
