// Package expression evaluates the SystemVerilog constant expressions used in
// IP-XACT documents for offsets, widths, ranges and presence flags.
//
// Expressions are rewritten into ECMAScript syntax, parsed with the goja
// parser and evaluated over the resulting AST with SystemVerilog integer and
// real semantics. Parameter IDs are resolved through a Symbols table.
package expression

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
)

// DefaultMaxDepth bounds how deep parameter references may nest.
const DefaultMaxDepth = 32

// Symbols resolves an identifier to the expression it stands for.
type Symbols interface {
	Lookup(id string) (expr string, ok bool)
}

// SymbolFunc adapts a function to Symbols.
type SymbolFunc func(id string) (string, bool)

func (f SymbolFunc) Lookup(id string) (string, bool) { return f(id) }

// MapSymbols is a fixed id -> expression table.
type MapSymbols map[string]string

func (m MapSymbols) Lookup(id string) (string, bool) {
	v, ok := m[id]
	return v, ok
}

// Error reports an expression that could not be evaluated.
type Error struct {
	Expr    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("expression %q: %s: %v", e.Expr, e.Message, e.Cause)
	}
	return fmt.Sprintf("expression %q: %s", e.Expr, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

var _ error = (*Error)(nil)

// Option configures a Parser.
type Option func(*Parser)

// WithSymbols sets the table used to resolve identifiers.
func WithSymbols(s Symbols) Option {
	return func(p *Parser) { p.symbols = s }
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) { p.maxDepth = depth }
}

// Parser evaluates expressions. It holds no per-call state and may be shared.
type Parser struct {
	symbols  Symbols
	maxDepth int
}

// New creates a Parser. Without symbols every identifier is unknown.
func New(opts ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse evaluates expr and reports whether evaluation succeeded. The empty
// expression evaluates to the empty string.
func (p *Parser) Parse(expr string) (string, bool) {
	v, err := p.Evaluate(expr)
	if err != nil {
		slog.Debug("expression.parse: evaluation failed", "expr", expr, "error", err)
		return "", false
	}
	return v, true
}

// IsValid reports whether expr evaluates.
func (p *Parser) IsValid(expr string) bool {
	_, err := p.Evaluate(expr)
	return err == nil
}

// Evaluate returns the literal expr evaluates to. Failures are *Error.
func (p *Parser) Evaluate(expr string) (string, error) {
	if strings.TrimSpace(expr) == "" {
		return "", nil
	}
	v, err := p.evaluate(expr, 0)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func (p *Parser) evaluate(expr string, depth int) (value, error) {
	if depth > p.maxDepth {
		return value{}, &Error{Expr: expr, Message: "parameter references nest too deeply"}
	}
	src, err := normalize(expr)
	if err != nil {
		return value{}, &Error{Expr: expr, Message: "invalid literal", Cause: err}
	}
	prog, err := parser.ParseFile(nil, "", "("+src+")", 0)
	if err != nil {
		return value{}, &Error{Expr: expr, Message: "syntax error", Cause: err}
	}
	if len(prog.Body) != 1 {
		return value{}, &Error{Expr: expr, Message: "not a single expression"}
	}
	stmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return value{}, &Error{Expr: expr, Message: "not an expression"}
	}
	v, err := p.eval(stmt.Expression, depth)
	if err != nil {
		if _, ok := err.(*Error); ok {
			return value{}, err
		}
		return value{}, &Error{Expr: expr, Message: "cannot evaluate", Cause: err}
	}
	return v, nil
}

func (p *Parser) eval(node ast.Expression, depth int) (value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return numberLiteral(n)

	case *ast.StringLiteral:
		return stringValue(n.Value.String()), nil

	case *ast.BooleanLiteral:
		return boolValue(n.Value), nil

	case *ast.Identifier:
		return p.symbol(n.Name.String(), depth)

	case *ast.UnaryExpression:
		if n.Postfix {
			return value{}, fmt.Errorf("postfix %s: %w", n.Operator, ErrOperandType)
		}
		operand, err := p.eval(n.Operand, depth)
		if err != nil {
			return value{}, err
		}
		return unary(n.Operator, operand)

	case *ast.BinaryExpression:
		l, err := p.eval(n.Left, depth)
		if err != nil {
			return value{}, err
		}
		r, err := p.eval(n.Right, depth)
		if err != nil {
			return value{}, err
		}
		return binary(n.Operator, l, r)

	case *ast.ConditionalExpression:
		test, err := p.eval(n.Test, depth)
		if err != nil {
			return value{}, err
		}
		ok, err := test.truthy()
		if err != nil {
			return value{}, err
		}
		if ok {
			return p.eval(n.Consequent, depth)
		}
		return p.eval(n.Alternate, depth)

	case *ast.ArrayLiteral:
		items := make([]value, 0, len(n.Value))
		for _, elem := range n.Value {
			if elem == nil {
				return value{}, fmt.Errorf("empty concatenation element: %w", ErrOperandType)
			}
			v, err := p.eval(elem, depth)
			if err != nil {
				return value{}, err
			}
			items = append(items, v)
		}
		return value{kind: kindArray, items: items}, nil

	case *ast.CallExpression:
		return p.call(n, depth)
	}
	return value{}, fmt.Errorf("unsupported construct %T", node)
}

func numberLiteral(n *ast.NumberLiteral) (value, error) {
	// Leading zeros are decimal in SystemVerilog.
	if i, err := strconv.ParseInt(n.Literal, 10, 64); err == nil {
		return intValue(i), nil
	}
	switch v := n.Value.(type) {
	case int64:
		return intValue(v), nil
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return value{}, fmt.Errorf("number %s out of range", n.Literal)
		}
		return realValue(v), nil
	}
	return value{}, fmt.Errorf("unsupported number %s", n.Literal)
}

func (p *Parser) symbol(name string, depth int) (value, error) {
	if p.symbols == nil {
		return value{}, fmt.Errorf("unknown identifier %q", name)
	}
	expr, ok := p.symbols.Lookup(name)
	if !ok {
		return value{}, fmt.Errorf("unknown identifier %q", name)
	}
	if strings.TrimSpace(expr) == "" {
		return value{}, fmt.Errorf("identifier %q has no value", name)
	}
	return p.evaluate(expr, depth+1)
}

func (p *Parser) call(n *ast.CallExpression, depth int) (value, error) {
	callee, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return value{}, fmt.Errorf("unsupported call target %T", n.Callee)
	}
	args := make([]value, 0, len(n.ArgumentList))
	for _, a := range n.ArgumentList {
		v, err := p.eval(a, depth)
		if err != nil {
			return value{}, err
		}
		args = append(args, v)
	}

	name := callee.Name.String()
	arity := 1
	if name == "$pow" {
		arity = 2
	}
	if len(args) != arity {
		return value{}, fmt.Errorf("%s takes %d argument(s), got %d", name, arity, len(args))
	}

	switch name {
	case "$clog2":
		return clog2(args[0])
	case "$pow":
		return power(args[0], args[1])
	case "$sqrt":
		if !args[0].numeric() || args[0].float() < 0 {
			return value{}, fmt.Errorf("$sqrt: %w", ErrOperandType)
		}
		return realValue(math.Sqrt(args[0].float())), nil
	case "$exp":
		if !args[0].numeric() {
			return value{}, fmt.Errorf("$exp: %w", ErrOperandType)
		}
		return realValue(math.Exp(args[0].float())), nil
	}
	return value{}, fmt.Errorf("unknown function %s", name)
}
