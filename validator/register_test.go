package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ipxact "github.com/agentflare-ai/ipxact-go"
)

func TestRegisterValidator_Valid(t *testing.T) {
	v := newTestRegisterValidator()
	r := testRegister("reg", "0", "32", testField("f0", "0", "8"), testField("f1", "8", "8"))

	assert.True(t, v.Validate(r))
	assert.Empty(t, v.FindErrorsIn(nil, r, "test"))
}

func TestRegisterValidator_Size(t *testing.T) {
	tests := []struct {
		size  string
		valid bool
	}{
		{"32", true},
		{"4*8", true},
		{"0", false},
		{"-8", false},
		{"text", false},
		{"", false},
	}
	v := newTestRegisterValidator()
	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			r := testRegister("reg", "0", tt.size, testField("f0", "0", "1"))
			assert.Equal(t, tt.valid, v.HasValidSize(r))
			errs := v.FindErrorsIn(nil, r, "test")
			if tt.valid {
				assert.NotContains(t, errs, "Invalid size specified for register 'reg' within test")
			} else {
				assert.Contains(t, errs, "Invalid size specified for register 'reg' within test")
			}
		})
	}
}

func TestRegisterValidator_Fields(t *testing.T) {
	typed := func(name, offset, width string) *ipxact.Field {
		f := testField(name, offset, width)
		f.TypeIdentifier = "type"
		return f
	}
	volatile := testField("f0", "0", "8")
	volatile.Volatile = "true"

	tests := []struct {
		name     string
		register *ipxact.Register
		want     string
	}{
		{
			name:     "no fields",
			register: testRegister("reg", "0", "32"),
			want:     "Register reg must contain at least one field",
		},
		{
			name:     "duplicate names",
			register: testRegister("reg", "0", "32", testField("f0", "0", "8"), testField("f0", "8", "8")),
			want:     "Name f0 of fields in register reg within test is not unique.",
		},
		{
			name:     "overlap",
			register: testRegister("reg", "0", "32", testField("f0", "0", "8"), testField("f1", "4", "8")),
			want:     "Fields f0 and f1 overlap within register reg within test",
		},
		{
			name:     "outside register",
			register: testRegister("reg", "0", "32", testField("f0", "0", "8"), testField("f1", "30", "8")),
			want:     "Field f1 is not contained within register reg within test",
		},
		{
			name:     "type identifier with different definitions",
			register: testRegister("reg", "0", "32", typed("f0", "0", "8"), typed("f1", "8", "4")),
			want:     "Fields f0 and f1 have type identifier type, but different field definitions within register reg within test",
		},
		{
			name: "volatile field in non-volatile register",
			register: func() *ipxact.Register {
				r := testRegister("reg", "0", "32", volatile)
				r.Volatile = "false"
				return r
			}(),
			want: "Volatile cannot be set to false in register reg within test, where contained field f0 has volatile true",
		},
	}
	v := newTestRegisterValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, v.HasValidFields(tt.register))
			assert.False(t, v.Validate(tt.register))
			assert.Contains(t, v.FindErrorsIn(nil, tt.register, "test"), tt.want)
		})
	}
}

func TestRegisterValidator_FieldNotPresentDoesNotOverlap(t *testing.T) {
	v := newTestRegisterValidator()
	hidden := testField("f1", "4", "8")
	hidden.IsPresent = "0"
	r := testRegister("reg", "0", "32", testField("f0", "0", "8"), hidden)

	assert.True(t, v.Validate(r))
	assert.Empty(t, v.FindErrorsIn(nil, r, "test"))
}

func TestRegisterValidator_FieldAccess(t *testing.T) {
	tests := []struct {
		register ipxact.AccessType
		field    ipxact.AccessType
		valid    bool
	}{
		{ipxact.AccessReadWrite, ipxact.AccessWriteOnly, true},
		{ipxact.AccessUnspecified, ipxact.AccessWriteOnce, true},
		{ipxact.AccessReadOnly, ipxact.AccessReadOnly, true},
		{ipxact.AccessReadOnly, ipxact.AccessWriteOnly, false},
		{ipxact.AccessWriteOnly, ipxact.AccessWriteOnce, true},
		{ipxact.AccessWriteOnly, ipxact.AccessReadOnly, false},
		{ipxact.AccessReadWriteOnce, ipxact.AccessReadOnly, true},
		{ipxact.AccessReadWriteOnce, ipxact.AccessReadWrite, false},
		{ipxact.AccessWriteOnce, ipxact.AccessWriteOnce, true},
		{ipxact.AccessWriteOnce, ipxact.AccessWriteOnly, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.register)+"/"+string(tt.field), func(t *testing.T) {
			v := newTestRegisterValidator()
			f := testField("f0", "0", "8")
			f.Access = tt.field
			r := testRegister("reg", "0", "32", f)
			r.Access = tt.register

			assert.Equal(t, tt.valid, v.Validate(r))
			errs := v.FindErrorsIn(nil, r, "test")
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.Contains(t, errs, "Access cannot be set to "+string(tt.field)+
					" in field f0, where containing register reg has access "+string(tt.register))
			}

			// 2022 documents do not restrict field access by the register.
			v.ComponentChange(&ipxact.Component{Revision: ipxact.Std22})
			assert.True(t, v.Validate(r))
		})
	}
}

func TestRegisterValidator_AlternateGroups(t *testing.T) {
	v := newTestRegisterValidator()
	alt := &ipxact.AlternateRegister{
		RegisterBase: ipxact.RegisterBase{Name: "alt"},
		Fields:       []*ipxact.Field{testField("a0", "0", "8")},
	}
	r := testRegister("reg", "0", "32", testField("f0", "0", "8"))
	r.AlternateRegisters = []*ipxact.AlternateRegister{alt}

	assert.False(t, v.HasValidAlternateRegisters(r))
	assert.Contains(t, v.FindErrorsIn(nil, r, "test"),
		"Alternate groups are not unique or not empty in alternate register alt within register reg within test")

	alt.AlternateGroups = []string{"g1", "g1"}
	assert.False(t, v.HasValidAlternateRegisters(r))

	alt.AlternateGroups = []string{"g1", "g2"}
	assert.True(t, v.HasValidAlternateRegisters(r))
	assert.True(t, v.Validate(r))
	assert.Empty(t, v.FindErrorsIn(nil, r, "test"))
}

func TestRegisterValidator_AlternateRegisterModes(t *testing.T) {
	v := newTestRegisterValidator()
	v.ComponentChange(&ipxact.Component{
		Revision: ipxact.Std22,
		Modes:    []*ipxact.Mode{{Name: "m1"}, {Name: "m2"}},
	})

	alt := func(name string, refs ...string) *ipxact.AlternateRegister {
		return &ipxact.AlternateRegister{
			RegisterBase: ipxact.RegisterBase{Name: name},
			ModeRefs:     modeRefs(refs...),
			Fields:       []*ipxact.Field{testField("a0", "0", "8")},
		}
	}

	tests := []struct {
		name  string
		alts  []*ipxact.AlternateRegister
		error string
	}{
		{"valid", []*ipxact.AlternateRegister{alt("alt1", "m1"), alt("alt2", "m2")}, ""},
		{"missing", []*ipxact.AlternateRegister{alt("alt1")}, "Alternate register alt1 within register reg within test must reference at least one mode"},
		{"unknown", []*ipxact.AlternateRegister{alt("alt1", "m3")}, "Mode m3 referenced in alternate register alt1 within register reg within test does not exist"},
		{"duplicate", []*ipxact.AlternateRegister{alt("alt1", "m1"), alt("alt2", "m1")}, "Duplicate mode reference value m1 set for alternate register alt2 in register reg within test"},
		{"empty", []*ipxact.AlternateRegister{alt("alt1", "")}, "Empty mode reference value set for alternate register alt1 in register reg within test"},
		{"same name", []*ipxact.AlternateRegister{alt("alt", "m1"), alt("alt", "m2")}, "Name alt of alternate registers in register reg within test is not unique."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRegister("reg", "0", "32", testField("f0", "0", "8"))
			r.AlternateRegisters = tt.alts
			errs := v.FindErrorsIn(nil, r, "test")
			if tt.error == "" {
				assert.True(t, v.Validate(r))
				assert.Empty(t, errs)
				return
			}
			assert.False(t, v.HasValidAlternateRegisters(r))
			assert.Contains(t, errs, tt.error)
		})
	}
}

func TestRegisterValidator_DefinitionReference(t *testing.T) {
	v := newTestRegisterValidator()
	r := testRegister("reg", "0", "")
	r.DefinitionRef = "regDef"

	// 2014 documents have no register definitions.
	require.False(t, v.Validate(r))

	v.ComponentChange(&ipxact.Component{Revision: ipxact.Std22})
	assert.True(t, v.Validate(r))
	assert.Empty(t, v.FindErrorsIn(nil, r, "test"))

	r.Size = "32"
	r.Fields = []*ipxact.Field{testField("f0", "0", "8")}
	assert.False(t, v.HasValidStructure(r))
	assert.Contains(t, v.FindErrorsIn(nil, r, "test"),
		"Register reg in test must not be explicitly defined while also containing a definition reference.")
}
