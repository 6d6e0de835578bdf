package validator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

// danglingReference recognizes a message about a name that does not resolve
// and lists the names it could have meant.
type danglingReference struct {
	pattern    *regexp.Regexp
	candidates func(idx *ipxact.Index, match []string) map[string]struct{}
}

func keySet[V any](m map[string]V) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func busInterfaces(idx *ipxact.Index, _ []string) map[string]struct{} { return keySet(idx.BusInterfaces) }
func addressSpaces(idx *ipxact.Index, _ []string) map[string]struct{} { return keySet(idx.AddressSpaces) }
func memoryMaps(idx *ipxact.Index, _ []string) map[string]struct{}    { return keySet(idx.MemoryMaps) }
func remapStates(idx *ipxact.Index, _ []string) map[string]struct{}   { return keySet(idx.RemapStates) }
func modes(idx *ipxact.Index, _ []string) map[string]struct{}         { return keySet(idx.Modes) }
func choices(idx *ipxact.Index, _ []string) map[string]struct{}       { return keySet(idx.Choices) }
func fields(idx *ipxact.Index, _ []string) map[string]struct{}        { return keySet(idx.Fields) }

// segments lists the segments of the address space named in match[2].
func segments(idx *ipxact.Index, match []string) map[string]struct{} {
	out := map[string]struct{}{}
	if space, ok := idx.AddressSpaces[match[2]]; ok {
		for _, seg := range space.Segments {
			out[seg.Name] = struct{}{}
		}
	}
	return out
}

var danglingReferences = []danglingReference{
	{regexp.MustCompile(`^Bus interface (\S+) referenced in .* does not exist$`), busInterfaces},
	{regexp.MustCompile(`^Transparent bridge references an invalid bus interface '([^']*)'`), busInterfaces},
	{regexp.MustCompile(`^(?:Master|Initiator) bus interface (\S+) referenced by the .* was not found$`), busInterfaces},
	{regexp.MustCompile(`^Could not find address space (\S+) referenced by the `), addressSpaces},
	{regexp.MustCompile(`^Memory map (\S+) referenced by the .* was not found$`), memoryMaps},
	{regexp.MustCompile(`^Invalid memory map '([^']*)' referenced in indirect interface `), memoryMaps},
	{regexp.MustCompile(`^Invalid remap state (\S+) set for memory remap `), remapStates},
	{regexp.MustCompile(`^Mode (\S+) referenced in .* does not exist$`), modes},
	{regexp.MustCompile(`^Choice (\S+) referenced in parameter `), choices},
	{regexp.MustCompile(`^Field '([^']*)' not found for (?:address|data) `), fields},
	{regexp.MustCompile(`^Segment (\S+) referenced in .* does not exist in address space (\S+)$`), segments},
}

// enhanceDiagnostics adds "did you mean" hints to diagnostics about names
// that do not resolve in the component.
func enhanceDiagnostics(index *ipxact.Index, diagnostics []Diagnostic) []Diagnostic {
	if index == nil || len(diagnostics) == 0 {
		return diagnostics
	}

	enhanced := make([]Diagnostic, 0, len(diagnostics))
	for _, diag := range diagnostics {
		enhanced = append(enhanced, enhance(index, diag))
	}
	return enhanced
}

func enhance(index *ipxact.Index, diag Diagnostic) Diagnostic {
	for _, ref := range danglingReferences {
		match := ref.pattern.FindStringSubmatch(diag.Message)
		if match == nil || match[1] == "" {
			continue
		}
		suggestions := nearestIDs(match[1], ref.candidates(index, match), 3, 2)
		switch len(suggestions) {
		case 0:
		case 1:
			diag.Hints = append(diag.Hints, fmt.Sprintf("Did you mean %q?", suggestions[0]))
		default:
			diag.Hints = append(diag.Hints, fmt.Sprintf("Did you mean one of: %s?", quoteJoin(suggestions)))
		}
		return diag
	}
	return diag
}

// nearestIDs returns up to 'limit' closest ids within maxDistance (inclusive)
func nearestIDs[V any](miss string, set map[string]V, limit int, maxDistance int) []string {
	type cand struct {
		s string
		d int
	}
	cands := make([]cand, 0, len(set))
	for k := range set {
		d := simpleDistance(miss, k)
		if d <= maxDistance {
			cands = append(cands, cand{s: k, d: d})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].d != cands[j].d {
			return cands[i].d < cands[j].d
		}
		return cands[i].s < cands[j].s
	})
	if limit <= 0 || limit > len(cands) {
		limit = len(cands)
	}
	out := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, cands[i].s)
	}
	return out
}

// simpleDistance calculates Levenshtein distance between two strings
func simpleDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n, m := len(ra), len(rb)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j
	}
	for i := 1; i <= n; i++ {
		cur[0] = i
		for j := 1; j <= m; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[m]
}

// quoteJoin quotes and joins strings
func quoteJoin(s []string) string {
	quoted := make([]string, len(s))
	for i := range s {
		quoted[i] = fmt.Sprintf("%q", s[i])
	}
	return strings.Join(quoted, ", ")
}
