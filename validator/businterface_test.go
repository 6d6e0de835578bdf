package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

func newTestBusInterfaceValidator(c *ipxact.Component) *BusInterfaceValidator {
	v := NewBusInterfaceValidator(newTestParser())
	v.ComponentChange(c)
	return v
}

func busComponentWithMap(rev ipxact.Revision) *ipxact.Component {
	c := testBusComponent(rev)
	c.MemoryMaps = []*ipxact.MemoryMap{testMemoryMap("map", "8")}
	return c
}

func TestBusInterfaceValidator_Mode(t *testing.T) {
	tests := []struct {
		revision ipxact.Revision
		mode     ipxact.InterfaceMode
		valid    bool
	}{
		{ipxact.Std14, ipxact.ModeMaster, true},
		{ipxact.Std14, ipxact.ModeMirroredSlave, true},
		{ipxact.Std14, ipxact.ModeMonitor, true},
		{ipxact.Std14, ipxact.ModeInitiator, false},
		{ipxact.Std14, ipxact.ModeUnspecified, false},
		{ipxact.Std22, ipxact.ModeTarget, true},
		{ipxact.Std22, ipxact.ModeMirroredInitiator, true},
		{ipxact.Std22, ipxact.ModeSlave, false},
		{ipxact.Std22, ipxact.InterfaceMode("bogus"), false},
	}
	for _, tt := range tests {
		t.Run(tt.revision.String()+"/"+string(tt.mode), func(t *testing.T) {
			v := newTestBusInterfaceValidator(testBusComponent(tt.revision))
			b := &ipxact.BusInterface{Name: "bus", Mode: tt.mode}
			assert.Equal(t, tt.valid, v.HasValidInterfaceMode(b))
			errs := v.FindErrorsIn(nil, b, "test")
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, []string{"Unknown interface mode set for bus interface bus within test"}, errs)
			}
		})
	}
}

func TestBusInterfaceValidator_Initiator(t *testing.T) {
	tests := []struct {
		name string
		bus  ipxact.BusInterface
		want string
	}{
		{"space", ipxact.BusInterface{Name: "bus", Mode: ipxact.ModeMaster, AddressSpaceRef: "space", BaseAddress: "4*4"}, ""},
		{"no space", ipxact.BusInterface{Name: "bus", Mode: ipxact.ModeMaster}, ""},
		{"unknown space", ipxact.BusInterface{Name: "bus", Mode: ipxact.ModeMaster, AddressSpaceRef: "spcae"},
			"Could not find address space spcae referenced by the bus interface bus within test"},
		{"base address", ipxact.BusInterface{Name: "bus", Mode: ipxact.ModeMaster, BaseAddress: "text"},
			"Invalid base address set for bus interface bus within test"},
		{"mirrored ignores references", ipxact.BusInterface{Name: "bus", Mode: ipxact.ModeMirroredMaster, AddressSpaceRef: "spcae"}, ""},
	}
	v := newTestBusInterfaceValidator(busComponentWithMap(ipxact.Std14))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.bus
			errs := v.FindErrorsIn(nil, &b, "test")
			if tt.want == "" {
				assert.True(t, v.Validate(&b))
				assert.Empty(t, errs)
				return
			}
			assert.False(t, v.HasValidInitiatorReferences(&b))
			assert.Equal(t, []string{tt.want}, errs)
		})
	}
}

func TestBusInterfaceValidator_Target(t *testing.T) {
	tests := []struct {
		name     string
		revision ipxact.Revision
		bus      ipxact.BusInterface
		want     []string
	}{
		{
			name:     "memory map",
			revision: ipxact.Std14,
			bus:      ipxact.BusInterface{Name: "bus", Mode: ipxact.ModeSlave, MemoryMapRef: "map"},
		},
		{
			name:     "bridge",
			revision: ipxact.Std14,
			bus: ipxact.BusInterface{Name: "bus", Mode: ipxact.ModeSlave,
				Bridges: []*ipxact.TransparentBridge{{InitiatorRef: "master"}}},
		},
		{
			name:     "unknown memory map",
			revision: ipxact.Std14,
			bus:      ipxact.BusInterface{Name: "bus", Mode: ipxact.ModeSlave, MemoryMapRef: "nap"},
			want:     []string{"Memory map nap referenced by the bus interface bus within test was not found"},
		},
		{
			name:     "both",
			revision: ipxact.Std14,
			bus: ipxact.BusInterface{Name: "bus", Mode: ipxact.ModeSlave, MemoryMapRef: "map",
				Bridges: []*ipxact.TransparentBridge{{InitiatorRef: "master"}}},
			want: []string{"Both a memory map reference and transparent bridges are contained within bus interface bus within test"},
		},
		{
			name:     "bridge to slave",
			revision: ipxact.Std14,
			bus: ipxact.BusInterface{Name: "bus", Mode: ipxact.ModeSlave,
				Bridges: []*ipxact.TransparentBridge{{InitiatorRef: "slave"}}},
			want: []string{"Bus interface slave referenced by the transparent bridge of the bus interface bus within test is not a master bus interface"},
		},
		{
			name:     "bridge to target 2022",
			revision: ipxact.Std22,
			bus: ipxact.BusInterface{Name: "bus", Mode: ipxact.ModeTarget,
				Bridges: []*ipxact.TransparentBridge{{InitiatorRef: "slave"}}},
			want: []string{"Bus interface slave referenced by the transparent bridge of the bus interface bus within test is not an initiator bus interface"},
		},
		{
			name:     "bridge to unknown 2022",
			revision: ipxact.Std22,
			bus: ipxact.BusInterface{Name: "bus", Mode: ipxact.ModeTarget,
				Bridges: []*ipxact.TransparentBridge{{InitiatorRef: "none", IsPresent: "2"}}},
			want: []string{
				"Initiator bus interface none referenced by the bus interface bus within test was not found",
				"Transparent bridge within the bus interface bus within test has invalid isPresent",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestBusInterfaceValidator(busComponentWithMap(tt.revision))
			b := tt.bus
			assert.Equal(t, tt.want == nil, v.HasValidTargetReferences(&b))
			assert.Equal(t, tt.want == nil, v.Validate(&b))
			assert.Equal(t, tt.want, v.FindErrorsIn(nil, &b, "test"))
		})
	}
}

func TestBusInterfaceValidator_NameAndIsPresent(t *testing.T) {
	v := newTestBusInterfaceValidator(testBusComponent(ipxact.Std14))
	b := &ipxact.BusInterface{Name: " ", Mode: ipxact.ModeSystem, IsPresent: "0+2"}

	assert.False(t, v.Validate(b))
	assert.Equal(t, []string{
		"Invalid name specified for bus interface   within test",
		"Invalid isPresent set for bus interface   within test",
	}, v.FindErrorsIn(nil, b, "test"))
}
