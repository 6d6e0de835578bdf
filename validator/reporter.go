package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// PrettyReporter renders human-friendly diagnostics, one header line per
// diagnostic followed by its hints.
type PrettyReporter struct {
	w     io.Writer
	color bool
}

// PrettyConfig configures PrettyReporter construction
type PrettyConfig struct {
	Color bool
}

// NewPrettyReporter writes diagnostics as text lines to w.
func NewPrettyReporter(w io.Writer, maybeCfg ...PrettyConfig) *PrettyReporter {
	cfg := PrettyConfig{}
	// If caller provided a config, use the last one (pattern: maybeConfig ...)
	for _, c := range maybeCfg {
		cfg = c
	}
	return &PrettyReporter{w: w, color: cfg.Color}
}

// Print writes one line per diagnostic followed by a summary line.
func (r *PrettyReporter) Print(sourceName string, diags []Diagnostic) error {
	if len(diags) == 0 {
		_, err := fmt.Fprintf(r.w, "%s: ok (no issues)\n", nonEmpty(sourceName, "<input>"))
		return err
	}

	for _, d := range SortedDiagnostics(diags) {
		file := nonEmpty(d.Location.File, sourceName)
		loc := locationString(file, d.Location.Path)
		head := fmt.Sprintf("%s: %s[%s] %s", loc, strings.ToUpper(string(d.Severity)), d.Code, d.Message)
		if _, err := fmt.Fprintln(r.w, r.styleHeader(head, d.Severity)); err != nil {
			return err
		}
		for _, h := range d.Hints {
			fmt.Fprintln(r.w, r.styleHint("  hint: "+h))
		}
	}

	res := Result{Diagnostics: diags}
	s := res.Summary()
	_, err := fmt.Fprintf(r.w, "summary: %d error(s), %d warning(s), %d total\n", s.Errors, s.Warnings, len(diags))
	return err
}

// JSONReporter emits JSON with diagnostics
type JSONReporter struct {
	w io.Writer
}

type JSONConfig struct{}

// NewJSONReporter writes results as indented JSON to w.
func NewJSONReporter(w io.Writer, _ ...JSONConfig) *JSONReporter { return &JSONReporter{w: w} }

// Print encodes result.
func (r *JSONReporter) Print(result Result) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// --- helpers / styling ---

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func locationString(file, path string) string {
	return fmt.Sprintf("%s: %s", nonEmpty(file, "<input>"), nonEmpty(path, "component"))
}

func (r *PrettyReporter) styleHeader(s string, sev Severity) string {
	if !r.color {
		return s
	}
	switch sev {
	case SeverityError:
		return "\x1b[31m" + s + "\x1b[0m" // red
	case SeverityWarning:
		return "\x1b[33m" + s + "\x1b[0m" // yellow
	default:
		return s
	}
}

func (r *PrettyReporter) styleHint(s string) string {
	if !r.color {
		return s
	}
	return "\x1b[36m" + s + "\x1b[0m" // cyan
}

// SortedDiagnostics returns diagnostics sorted by file, path and code.
// Diagnostics that compare equal keep their order.
func SortedDiagnostics(diags []Diagnostic) []Diagnostic {
	out := append([]Diagnostic(nil), diags...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Path != b.Location.Path {
			return a.Location.Path < b.Location.Path
		}
		return a.Code < b.Code
	})
	return out
}
