package validator

import (
	ipxact "github.com/agentflare-ai/ipxact-go"
)

// Rule turns the findings of one area of a component into diagnostics.
type Rule interface {
	// Name returns the diagnostic code for this rule (e.g., "E120")
	Name() string

	// Validate checks the rule against a component using the element
	// validators of cv, which must already point at c.
	Validate(c *ipxact.Component, cv *ComponentValidator, config Config) []Diagnostic
}

// DefaultRules returns the rules that together cover a whole component.
func DefaultRules() []Rule {
	return []Rule{
		&ComponentNamesRule{},
		&ParametersRule{},
		&MemoryMapsRule{},
		&AddressSpacesRule{},
		&BusInterfacesRule{},
		&IndirectInterfacesRule{},
	}
}

// toDiagnostics wraps validator messages found at path.
func toDiagnostics(code, element, path string, config Config, errs []string) []Diagnostic {
	if len(errs) == 0 {
		return nil
	}
	diags := make([]Diagnostic, 0, len(errs))
	for _, msg := range errs {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Code:     code,
			Message:  msg,
			Location: Location{File: config.SourceName, Path: path},
			Element:  element,
		})
	}
	return diags
}

// ComponentNamesRule reports duplicated or missing names of top level
// elements.
type ComponentNamesRule struct{}

func (r *ComponentNamesRule) Name() string { return "E100" }

func (r *ComponentNamesRule) Validate(c *ipxact.Component, cv *ComponentValidator, config Config) []Diagnostic {
	return toDiagnostics(r.Name(), "component", "component", config, cv.FindErrorsInNames(nil, c))
}

// ParametersRule reports invalid component parameters.
type ParametersRule struct{}

func (r *ParametersRule) Name() string { return "E110" }

func (r *ParametersRule) Validate(c *ipxact.Component, cv *ComponentValidator, config Config) []Diagnostic {
	return toDiagnostics(r.Name(), "parameter", "component/parameters", config, cv.FindErrorsInParameters(nil, c))
}

// MemoryMapsRule reports each memory map with everything it contains.
type MemoryMapsRule struct{}

func (r *MemoryMapsRule) Name() string { return "E120" }

func (r *MemoryMapsRule) Validate(c *ipxact.Component, cv *ComponentValidator, config Config) []Diagnostic {
	var diags []Diagnostic
	for _, m := range c.MemoryMaps {
		errs := cv.MemoryMaps().FindErrorsIn(nil, m, cv.Context())
		diags = append(diags, toDiagnostics(r.Name(), "memoryMap", "component/memoryMaps/"+m.Name, config, errs)...)
	}
	return diags
}

// AddressSpacesRule reports each address space and its segments.
type AddressSpacesRule struct{}

func (r *AddressSpacesRule) Name() string { return "E130" }

func (r *AddressSpacesRule) Validate(c *ipxact.Component, cv *ComponentValidator, config Config) []Diagnostic {
	var diags []Diagnostic
	for _, s := range c.AddressSpaces {
		errs := cv.AddressSpaces().FindErrorsIn(nil, s, cv.Context())
		diags = append(diags, toDiagnostics(r.Name(), "addressSpace", "component/addressSpaces/"+s.Name, config, errs)...)
	}
	return diags
}

// BusInterfacesRule reports each bus interface and its references.
type BusInterfacesRule struct{}

func (r *BusInterfacesRule) Name() string { return "E140" }

func (r *BusInterfacesRule) Validate(c *ipxact.Component, cv *ComponentValidator, config Config) []Diagnostic {
	var diags []Diagnostic
	for _, b := range c.BusInterfaces {
		errs := cv.BusInterfaces().FindErrorsIn(nil, b, cv.Context())
		diags = append(diags, toDiagnostics(r.Name(), "busInterface", "component/busInterfaces/"+b.Name, config, errs)...)
	}
	return diags
}

// IndirectInterfacesRule reports each indirect interface.
type IndirectInterfacesRule struct{}

func (r *IndirectInterfacesRule) Name() string { return "E150" }

func (r *IndirectInterfacesRule) Validate(c *ipxact.Component, cv *ComponentValidator, config Config) []Diagnostic {
	var diags []Diagnostic
	for _, ii := range c.IndirectInterfaces {
		errs := cv.IndirectInterfaces().FindErrorsIn(nil, ii, cv.Context())
		diags = append(diags, toDiagnostics(r.Name(), "indirectInterface", "component/indirectInterfaces/"+ii.Name, config, errs)...)
	}
	return diags
}
