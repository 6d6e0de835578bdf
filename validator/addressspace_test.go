package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

func newTestAddressSpaceValidator() *AddressSpaceValidator {
	p := newTestParser()
	return NewAddressSpaceValidator(p, NewParameterValidator(p))
}

func testSpace(segments ...*ipxact.Segment) *ipxact.AddressSpace {
	return &ipxact.AddressSpace{Name: "space", Range: "256", Width: "32", Segments: segments}
}

func testSegment(name, offset, rng string) *ipxact.Segment {
	return &ipxact.Segment{Name: name, AddressOffset: offset, Range: rng}
}

func TestAddressSpaceValidator_Attributes(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *ipxact.AddressSpace)
		want   string
	}{
		{"valid", func(*ipxact.AddressSpace) {}, ""},
		{"address unit bits", func(s *ipxact.AddressSpace) { s.AddressUnitBits = "16" }, ""},
		{"name", func(s *ipxact.AddressSpace) { s.Name = "" }, "Invalid name specified for address space  within test"},
		{"isPresent", func(s *ipxact.AddressSpace) { s.IsPresent = "5" }, "Invalid isPresent set for address space space within test"},
		{"zero range", func(s *ipxact.AddressSpace) { s.Range = "0" }, "Invalid range set for address space space within test"},
		{"width", func(s *ipxact.AddressSpace) { s.Width = "-1" }, "Invalid width set for address space space within test"},
		{"zero address unit bits", func(s *ipxact.AddressSpace) { s.AddressUnitBits = "0" },
			"Invalid address unit bits set for address space space within test"},
		{"parameters", func(s *ipxact.AddressSpace) {
			s.Parameters = []*ipxact.Parameter{{Name: "p", Value: "1"}, {Name: "p", Value: "1"}}
		}, "Name p of parameters in address space space within test is not unique."},
	}
	v := newTestAddressSpaceValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSpace()
			tt.modify(s)
			errs := v.FindErrorsIn(nil, s, "test")
			if tt.want == "" {
				assert.True(t, v.Validate(s))
				assert.Empty(t, errs)
				return
			}
			assert.False(t, v.Validate(s))
			assert.Equal(t, []string{tt.want}, errs)
		})
	}
}

func TestAddressSpaceValidator_Segments(t *testing.T) {
	hidden := testSegment("s1", "8", "16")
	hidden.IsPresent = "0"

	tests := []struct {
		name     string
		segments []*ipxact.Segment
		want     []string
	}{
		{"separate", []*ipxact.Segment{testSegment("s0", "0", "16"), testSegment("s1", "16", "16")}, nil},
		{"filling the space", []*ipxact.Segment{testSegment("s0", "0", "256")}, nil},
		{"hidden overlap", []*ipxact.Segment{testSegment("s0", "0", "16"), hidden}, nil},
		{"overlap", []*ipxact.Segment{testSegment("s0", "0", "16"), testSegment("s1", "8", "16")},
			[]string{"Segments s0 and s1 overlap within address space space within test"}},
		{"outside", []*ipxact.Segment{testSegment("s0", "250", "16")},
			[]string{"Segment s0 is not contained within address space space within test"}},
		{"duplicate names", []*ipxact.Segment{testSegment("s0", "0", "16"), testSegment("s0", "16", "16")},
			[]string{"Name s0 of segments in address space space within test is not unique"}},
		{"invalid segment", []*ipxact.Segment{{Name: " ", IsPresent: "2", AddressOffset: "text", Range: "0"}},
			[]string{
				"Invalid name specified for segment   within address space space within test",
				"Invalid isPresent set for segment   within address space space within test",
				"Invalid address offset set for segment   within address space space within test",
				"Invalid range set for segment   within address space space within test",
			}},
	}
	v := newTestAddressSpaceValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSpace(tt.segments...)
			assert.Equal(t, tt.want == nil, v.HasValidSegments(s))
			assert.Equal(t, tt.want, v.FindErrorsIn(nil, s, "test"))
		})
	}
}
