package validator

import (
	"fmt"
	"strings"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// RegisterBaseValidator checks the attributes registers and alternate
// registers have in common.
type RegisterBaseValidator struct {
	parser     ExpressionParser
	parameters *ParameterValidator
}

// NewRegisterBaseValidator returns the checks shared by registers and
// alternate registers.
func NewRegisterBaseValidator(parser ExpressionParser, parameters *ParameterValidator) *RegisterBaseValidator {
	return &RegisterBaseValidator{parser: parser, parameters: parameters}
}

// Validate reports whether r passes every register base check.
func (v *RegisterBaseValidator) Validate(r *ipxact.RegisterBase) bool {
	return v.HasValidName(r) &&
		v.HasValidIsPresent(r) &&
		v.HasValidDimension(r) &&
		v.HasValidAddressOffset(r) &&
		v.HasValidParameters(r)
}

func (v *RegisterBaseValidator) HasValidName(r *ipxact.RegisterBase) bool {
	return hasValidName(r.Name)
}

func (v *RegisterBaseValidator) HasValidIsPresent(r *ipxact.RegisterBase) bool {
	return isValidIsPresent(v.parser, r.IsPresent)
}

// HasValidDimension accepts an empty dimension or one that evaluates to a
// non-negative integer.
func (v *RegisterBaseValidator) HasValidDimension(r *ipxact.RegisterBase) bool {
	if strings.TrimSpace(r.Dimension) == "" {
		return true
	}
	_, ok := evalUint(v.parser, r.Dimension)
	return ok
}

// HasValidAddressOffset requires an offset that evaluates to an unsigned
// 64-bit integer.
func (v *RegisterBaseValidator) HasValidAddressOffset(r *ipxact.RegisterBase) bool {
	_, ok := evalUint(v.parser, r.AddressOffset)
	return ok
}

func (v *RegisterBaseValidator) HasValidParameters(r *ipxact.RegisterBase) bool {
	return hasValidParameters(v.parameters, r.Parameters)
}

// FindErrorsIn reports the register r found within context.
func (v *RegisterBaseValidator) FindErrorsIn(errs []string, r *ipxact.RegisterBase, context string) []string {
	return v.findErrors(errs, r, fmt.Sprintf("register '%s' within %s", r.Name, context))
}

// findErrors reports with an already complete element context.
func (v *RegisterBaseValidator) findErrors(errs []string, r *ipxact.RegisterBase, registerContext string) []string {
	if !v.HasValidName(r) {
		errs = append(errs, "Invalid name specified for "+registerContext)
	}
	if !v.HasValidIsPresent(r) {
		errs = append(errs, "Invalid isPresent set for "+registerContext)
	}
	if !v.HasValidDimension(r) {
		errs = append(errs, "Invalid dimensions set for "+registerContext)
	}
	if !v.HasValidAddressOffset(r) {
		errs = append(errs, "Invalid address offset set for "+registerContext)
	}
	return findErrorsInParameters(errs, v.parameters, r.Parameters, registerContext)
}
