package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

func newTestIndirectInterfaceValidator() *IndirectInterfaceValidator {
	p := newTestParser()
	v := NewIndirectInterfaceValidator(p, NewParameterValidator(p))
	v.ComponentChange(testIndirectComponent())
	return v
}

func testIndirectInterface() *ipxact.IndirectInterface {
	return &ipxact.IndirectInterface{
		Name:         "test",
		AddressRef:   "rwField",
		DataRef:      "readOnlyField",
		MemoryMapRef: "indirectMap",
	}
}

func TestIndirectInterfaceValidator_Valid(t *testing.T) {
	v := newTestIndirectInterfaceValidator()
	ii := testIndirectInterface()

	assert.True(t, v.Validate(ii))
	assert.Empty(t, v.FindErrorsIn(nil, ii, "test"))
}

func TestIndirectInterfaceValidator_Name(t *testing.T) {
	v := newTestIndirectInterfaceValidator()
	ii := testIndirectInterface()

	ii.Name = ""
	assert.False(t, v.HasValidName(ii))
	assert.False(t, v.Validate(ii))
	assert.Contains(t, v.FindErrorsIn(nil, ii, "test"), "Invalid name specified for indirect interface '' within test")

	ii.Name = "  test  "
	assert.True(t, v.HasValidName(ii))
	assert.True(t, v.Validate(ii))
}

func TestIndirectInterfaceValidator_AddressReference(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"rwField", ""},
		{"writeOnlyField", ""},
		{"map.block.rwReg.rwField", ""},
		{"", "No field specified for address in indirect interface 'test' within test"},
		{"missing", "Field 'missing' not found for address in indirect interface 'test' within test"},
		{"readOnlyField", "Field 'readOnlyField' has invalid access 'read-only' for address in indirect interface test within test"},
		{"writeOnceField", "Field 'writeOnceField' has invalid access 'writeOnce' for address in indirect interface test within test"},
		{"mapField", "Field 'mapField' is defined within indirect memory map 'indirectMap' in indirect interface test within test"},
	}
	v := newTestIndirectInterfaceValidator()
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			ii := testIndirectInterface()
			ii.AddressRef = tt.ref
			errs := v.FindErrorsIn(nil, ii, "test")
			if tt.want == "" {
				assert.True(t, v.HasValidAddressReference(ii))
				assert.Empty(t, errs)
				return
			}
			assert.False(t, v.HasValidAddressReference(ii))
			assert.False(t, v.Validate(ii))
			assert.Equal(t, []string{tt.want}, errs)
		})
	}
}

func TestIndirectInterfaceValidator_DataReference(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"readOnlyField", ""},
		{"writeOnceField", ""},
		{"rwField", ""},
		{"", "No field specified for data in indirect interface 'test' within test"},
		{"missing", "Field 'missing' not found for data in indirect interface 'test' within test"},
		{"mapField", "Field 'mapField' is defined within indirect memory map 'indirectMap' in indirect interface test within test"},
	}
	v := newTestIndirectInterfaceValidator()
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			ii := testIndirectInterface()
			ii.DataRef = tt.ref
			errs := v.FindErrorsIn(nil, ii, "test")
			if tt.want == "" {
				assert.True(t, v.HasValidDataReference(ii))
				assert.Empty(t, errs)
				return
			}
			assert.False(t, v.HasValidDataReference(ii))
			assert.Equal(t, []string{tt.want}, errs)
		})
	}
}

func TestIndirectInterfaceValidator_ReadOnlyFieldUse(t *testing.T) {
	v := newTestIndirectInterfaceValidator()
	ii := testIndirectInterface()
	ii.AddressRef = "readOnlyField"
	ii.DataRef = "readOnlyField"

	assert.False(t, v.HasValidAddressReference(ii))
	assert.True(t, v.HasValidDataReference(ii))
}

func TestIndirectInterfaceValidator_MemoryMapOrBridges(t *testing.T) {
	master := &ipxact.TransparentBridge{InitiatorRef: "master"}
	tests := []struct {
		name      string
		memoryMap string
		bridges   []*ipxact.TransparentBridge
		want      []string
	}{
		{"memory map", "indirectMap", nil, nil},
		{"bridge", "", []*ipxact.TransparentBridge{master}, nil},
		{"both", "indirectMap", []*ipxact.TransparentBridge{master},
			[]string{"Both memory map and transparent bridges defined for indirect interface 'test' within test."}},
		{"neither", "", nil,
			[]string{"No memory map or transparent bridges defined for indirect interface 'test' within test."}},
		{"unknown memory map", "nope", nil,
			[]string{"Invalid memory map 'nope' referenced in indirect interface 'test' within test."}},
	}
	v := newTestIndirectInterfaceValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ii := testIndirectInterface()
			ii.MemoryMapRef = tt.memoryMap
			ii.TransparentBridges = tt.bridges
			assert.Equal(t, tt.want, v.FindErrorsIn(nil, ii, "test"))
			assert.Equal(t, tt.want == nil, v.Validate(ii))
		})
	}
}

func TestIndirectInterfaceValidator_TransparentBridges(t *testing.T) {
	tests := []struct {
		name   string
		bridge ipxact.TransparentBridge
		want   string
	}{
		{"master", ipxact.TransparentBridge{InitiatorRef: "master"}, ""},
		{"present", ipxact.TransparentBridge{InitiatorRef: "master", IsPresent: "1"}, ""},
		{"unknown", ipxact.TransparentBridge{InitiatorRef: "none"},
			"Transparent bridge references an invalid bus interface 'none' in indirect interface 'test' within test."},
		{"slave", ipxact.TransparentBridge{InitiatorRef: "slave"},
			"Transparent bridge references a non-master bus interface 'slave' in indirect interface 'test' within test."},
		{"isPresent", ipxact.TransparentBridge{InitiatorRef: "master", IsPresent: "3"},
			"Invalid isPresent set for transparent bridge 'master' in indirect interface 'test' within test."},
	}
	v := newTestIndirectInterfaceValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ii := testIndirectInterface()
			ii.MemoryMapRef = ""
			bridge := tt.bridge
			ii.TransparentBridges = []*ipxact.TransparentBridge{&bridge}
			errs := v.FindErrorsIn(nil, ii, "test")
			if tt.want == "" {
				assert.True(t, v.HasValidTransparentBridges(ii))
				assert.Empty(t, errs)
				return
			}
			assert.False(t, v.HasValidTransparentBridges(ii))
			assert.Equal(t, []string{tt.want}, errs)
		})
	}
}

func TestIndirectInterfaceValidator_BridgesIn2022(t *testing.T) {
	p := newTestParser()
	v := NewIndirectInterfaceValidator(p, NewParameterValidator(p))
	c := testIndirectComponent()
	c.Revision = ipxact.Std22
	v.ComponentChange(c)

	// The fixture's interfaces use 2014 modes.
	ii := testIndirectInterface()
	ii.MemoryMapRef = ""
	ii.TransparentBridges = []*ipxact.TransparentBridge{{InitiatorRef: "master"}}
	assert.False(t, v.HasValidTransparentBridges(ii))
	assert.Equal(t, []string{
		"Transparent bridge references a non-initiator bus interface 'master' in indirect interface 'test' within test.",
	}, v.FindErrorsIn(nil, ii, "test"))
}

func TestIndirectInterfaceValidator_BitsInLau(t *testing.T) {
	tests := []struct {
		bits  string
		valid bool
	}{
		{"", true},
		{"8", true},
		{"20*80", true},
		{"text", false},
		{"-2", false},
		{"2**40000000000", false},
		{"2**64", false},
	}
	v := newTestIndirectInterfaceValidator()
	for _, tt := range tests {
		t.Run(tt.bits, func(t *testing.T) {
			ii := testIndirectInterface()
			ii.BitsInLau = tt.bits
			assert.Equal(t, tt.valid, v.HasValidBitsInLau(ii))
			assert.Equal(t, tt.valid, v.Validate(ii))
			if !tt.valid {
				assert.Equal(t, []string{
					"Invalid bits in lau '" + tt.bits + "' defined in indirect interface 'test' within test.",
				}, v.FindErrorsIn(nil, ii, "test"))
			}
		})
	}
}

func TestIndirectInterfaceValidator_Endianness(t *testing.T) {
	tests := []struct {
		endianness string
		valid      bool
	}{
		{"big", true},
		{"little", true},
		{"", true},
		{"other", false},
		{"128", false},
	}
	v := newTestIndirectInterfaceValidator()
	for _, tt := range tests {
		t.Run(tt.endianness, func(t *testing.T) {
			ii := testIndirectInterface()
			ii.Endianness = tt.endianness
			assert.Equal(t, tt.valid, v.HasValidEndianness(ii))
			assert.Equal(t, tt.valid, v.Validate(ii))
			if !tt.valid {
				assert.Equal(t, []string{
					"Invalid endianness '" + tt.endianness + "' defined in indirect interface 'test' within test.",
				}, v.FindErrorsIn(nil, ii, "test"))
			}
		})
	}
}

func TestIndirectInterfaceValidator_Parameters(t *testing.T) {
	v := newTestIndirectInterfaceValidator()
	ii := testIndirectInterface()
	ii.Parameters = []*ipxact.Parameter{{Name: "p", Value: "1"}, {Name: "p", Value: "2"}}

	assert.False(t, v.Validate(ii))
	assert.Equal(t, []string{
		"Name p of parameters in indirect interface test within test is not unique.",
	}, v.FindErrorsIn(nil, ii, "test"))
}
