package ipxact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevision(t *testing.T) {
	tests := []struct {
		rev                       Revision
		name                      string
		initiator, target         InterfaceMode
		initiatorTerm, targetTerm string
	}{
		{Std14, "1685-2014", ModeMaster, ModeSlave, "master", "slave"},
		{Std22, "1685-2022", ModeInitiator, ModeTarget, "initiator", "target"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.rev.String())
			assert.Equal(t, tt.initiator, tt.rev.InitiatorMode())
			assert.Equal(t, tt.target, tt.rev.TargetMode())
			assert.Equal(t, tt.initiatorTerm, tt.rev.InitiatorTerm())
			assert.Equal(t, tt.targetTerm, tt.rev.TargetTerm())
			assert.Contains(t, tt.rev.ValidModes(), tt.initiator)
			assert.Contains(t, tt.rev.ValidModes(), tt.target)
			assert.Contains(t, tt.rev.ValidModes(), ModeMonitor)
		})
	}
	assert.Equal(t, "Revision(7)", Revision(7).String())
	assert.NotContains(t, Std14.ValidModes(), ModeInitiator)
	assert.NotContains(t, Std22.ValidModes(), ModeMirroredMaster)
}

func TestAccessType_RepeatedlyWritable(t *testing.T) {
	writable := map[AccessType]bool{
		AccessUnspecified:   true,
		AccessReadWrite:     true,
		AccessWriteOnly:     true,
		AccessReadOnly:      false,
		AccessReadWriteOnce: false,
		AccessWriteOnce:     false,
	}
	for access, want := range writable {
		assert.Equal(t, want, access.RepeatedlyWritable(), string(access))
	}
}

func TestVLNVAndChoice(t *testing.T) {
	assert.Equal(t, "a:b:c:1.0", VLNV{"a", "b", "c", "1.0"}.String())

	c := &Choice{Name: "c", Enumerations: []Enumeration{{Value: "8"}, {Value: "16", Text: "sixteen"}}}
	assert.True(t, c.HasEnumeration("16"))
	assert.False(t, c.HasEnumeration("sixteen"))
}
