package validator

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	ipxact "github.com/agentflare-ai/ipxact-go"
	"github.com/agentflare-ai/ipxact-go/expression"
)

var (
	validatorPool = sync.Pool{
		New: func() any {
			return &Validator{}
		},
	}
)

// Severity represents the severity level of a diagnostic
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Location identifies the document and the element path a diagnostic is about
type Location struct {
	File string `json:"file,omitempty"`
	Path string `json:"path"`
}

// Diagnostic describes a validation issue found in a component.
// Message is the validator's sentence, unchanged.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Location Location `json:"location"`
	Element  string   `json:"element"`
	Hints    []string `json:"hints,omitempty"`
}

// Result is the aggregate validation result
type Result struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// HasErrors returns true if there is at least one error severity diagnostic
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Add appends diagnostics to the result
func (r *Result) Add(diags ...Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, diags...)
}

// Summary counts diagnostics by severity
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// Summary counts the diagnostics by severity.
func (r *Result) Summary() Summary {
	var s Summary
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Infos++
		}
	}
	return s
}

// Config controls validator behavior
type Config struct {
	SourceName string // Optional source name for reporting

	// Rules allows injection of custom component rules.
	// If nil, DefaultRules() is used.
	// Set to empty slice to disable rule validation.
	Rules []Rule

	// Parser evaluates expressions. If nil, a SystemVerilog parser resolving
	// the component's parameter IDs is created per component.
	Parser ExpressionParser

	// DisableHints turns off "did you mean" suggestions for dangling references.
	DisableHints bool
}

// Validator validates IP-XACT components
type Validator struct {
	config Config
}

// New creates a new Validator
func New(cfg ...Config) *Validator {
	c := Config{}
	for _, x := range cfg {
		c = x
	}
	return &Validator{config: c}
}

// ValidateComponent validates c with a pooled Validator using the default
// configuration.
func ValidateComponent(ctx context.Context, c *ipxact.Component) Result {
	v := validatorPool.Get().(*Validator)
	defer validatorPool.Put(v)
	return v.ValidateComponent(ctx, c)
}

// ValidateComponent runs the rule set on the component and collects every
// finding. The component is never modified.
func (v *Validator) ValidateComponent(ctx context.Context, c *ipxact.Component) Result {
	tr := otel.Tracer("validator")
	_, span := tr.Start(ctx, "validator.component", trace.WithAttributes(
		attribute.String("validator.source", v.config.SourceName),
	))
	defer span.End()

	res := Result{}
	if c == nil {
		res.Add(Diagnostic{
			Severity: SeverityError,
			Code:     "E000",
			Message:  "nil component",
			Location: Location{File: v.config.SourceName},
		})
		span.SetStatus(codes.Error, "nil component")
		return res
	}

	span.SetAttributes(
		attribute.String("validator.component", c.VLNV.String()),
		attribute.String("validator.revision", c.Revision.String()),
	)

	index := ipxact.NewIndex(c)
	parser := v.config.Parser
	if parser == nil {
		parser = expression.New(expression.WithSymbols(index))
	}

	cv := NewComponentValidator(parser)
	cv.ComponentChange(c)

	rules := v.config.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	for _, rule := range rules {
		res.Add(rule.Validate(c, cv, v.config)...)
	}

	if !v.config.DisableHints {
		res.Diagnostics = enhanceDiagnostics(index, res.Diagnostics)
	}

	summary := res.Summary()
	span.SetAttributes(
		attribute.Bool("validator.valid", summary.Errors == 0),
		attribute.Int("validator.errors", summary.Errors),
		attribute.Int("validator.warnings", summary.Warnings),
	)
	if summary.Errors > 0 {
		span.SetStatus(codes.Error, "component has errors")
	}

	slog.Debug("validator.component: validated",
		"component", c.VLNV.String(),
		"revision", c.Revision.String(),
		"errors", summary.Errors,
		"rules", len(rules),
	)
	return res
}
