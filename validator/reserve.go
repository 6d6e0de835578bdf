package validator

import (
	"fmt"
	"math"
	"sort"
)

// reservedArea is an inclusive [begin, end] range claimed by a named element.
type reservedArea struct {
	name  string
	begin uint64
	end   uint64
}

// memoryReserve collects address or bit ranges and reports the pairs that
// overlap.
type memoryReserve struct {
	areas []reservedArea
}

func (m *memoryReserve) add(name string, begin, end uint64) {
	m.areas = append(m.areas, reservedArea{name: name, begin: begin, end: end})
}

// addSized reserves size units starting at begin. Ranges running past the
// top of the address space end at math.MaxUint64.
func (m *memoryReserve) addSized(name string, begin, size uint64) {
	if size == 0 {
		return
	}
	end := begin + (size - 1)
	if end < begin {
		end = math.MaxUint64
	}
	m.add(name, begin, end)
}

// overlaps returns overlapping pairs ordered by start address.
func (m *memoryReserve) overlaps() [][2]reservedArea {
	sorted := append([]reservedArea(nil), m.areas...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].begin < sorted[j].begin })

	var pairs [][2]reservedArea
	for i := range sorted {
		for j := i + 1; j < len(sorted) && sorted[j].begin <= sorted[i].end; j++ {
			pairs = append(pairs, [2]reservedArea{sorted[i], sorted[j]})
		}
	}
	return pairs
}

func (m *memoryReserve) hasOverlap() bool {
	return len(m.overlaps()) > 0
}

func (m *memoryReserve) findErrorsInOverlap(errs []string, element, context string) []string {
	for _, p := range m.overlaps() {
		errs = append(errs, fmt.Sprintf("%s %s and %s overlap within %s", element, p[0].name, p[1].name, context))
	}
	return errs
}
