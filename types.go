package ipxact

import (
	"fmt"
	"strings"
)

// Revision identifies the IP-XACT schema a component was authored against.
// It gates revision-specific validation rules and terminology.
type Revision int

const (
	Std14 Revision = iota // IEEE 1685-2014
	Std22                 // IEEE 1685-2022
)

func (r Revision) String() string {
	switch r {
	case Std14:
		return "1685-2014"
	case Std22:
		return "1685-2022"
	}
	return fmt.Sprintf("Revision(%d)", int(r))
}

// InitiatorMode returns the bus interface mode that may drive a subspace map
// or a transparent bridge under this revision.
func (r Revision) InitiatorMode() InterfaceMode {
	if r == Std22 {
		return ModeInitiator
	}
	return ModeMaster
}

// InitiatorTerm returns the word used in messages for the initiating side.
func (r Revision) InitiatorTerm() string {
	if r == Std22 {
		return "initiator"
	}
	return "master"
}

// TargetMode returns the bus interface mode that exposes a memory map.
func (r Revision) TargetMode() InterfaceMode {
	if r == Std22 {
		return ModeTarget
	}
	return ModeSlave
}

// TargetTerm returns the word used in messages for the target side.
func (r Revision) TargetTerm() string {
	if r == Std22 {
		return "target"
	}
	return "slave"
}

// ValidModes lists the interface modes that exist in this revision.
func (r Revision) ValidModes() []InterfaceMode {
	if r == Std22 {
		return []InterfaceMode{ModeInitiator, ModeTarget, ModeSystem, ModeMirroredInitiator,
			ModeMirroredTarget, ModeMirroredSystem, ModeMonitor}
	}
	return []InterfaceMode{ModeMaster, ModeSlave, ModeSystem, ModeMirroredMaster,
		ModeMirroredSlave, ModeMirroredSystem, ModeMonitor}
}

// InterfaceMode is the directional role of a bus interface.
type InterfaceMode string

const (
	ModeUnspecified       InterfaceMode = ""
	ModeMaster            InterfaceMode = "master"
	ModeSlave             InterfaceMode = "slave"
	ModeSystem            InterfaceMode = "system"
	ModeMirroredMaster    InterfaceMode = "mirroredMaster"
	ModeMirroredSlave     InterfaceMode = "mirroredSlave"
	ModeMirroredSystem    InterfaceMode = "mirroredSystem"
	ModeMonitor           InterfaceMode = "monitor"
	ModeInitiator         InterfaceMode = "initiator"
	ModeTarget            InterfaceMode = "target"
	ModeMirroredInitiator InterfaceMode = "mirroredInitiator"
	ModeMirroredTarget    InterfaceMode = "mirroredTarget"
)

// AccessType is the access policy of a field, register or address block.
type AccessType string

const (
	AccessUnspecified   AccessType = ""
	AccessReadWrite     AccessType = "read-write"
	AccessReadOnly      AccessType = "read-only"
	AccessWriteOnly     AccessType = "write-only"
	AccessReadWriteOnce AccessType = "read-writeOnce"
	AccessWriteOnce     AccessType = "writeOnce"
)

// RepeatedlyWritable reports whether a value can be written more than once
// through this access.
func (a AccessType) RepeatedlyWritable() bool {
	return a == AccessUnspecified || a == AccessReadWrite || a == AccessWriteOnly
}

// VLNV is the vendor:library:name:version identifier of a document.
type VLNV struct {
	Vendor  string
	Library string
	Name    string
	Version string
}

func (v VLNV) String() string {
	return strings.Join([]string{v.Vendor, v.Library, v.Name, v.Version}, ":")
}

// Component is the root document. Validators only read it.
type Component struct {
	VLNV               VLNV
	Revision           Revision
	MemoryMaps         []*MemoryMap
	BusInterfaces      []*BusInterface
	AddressSpaces      []*AddressSpace
	IndirectInterfaces []*IndirectInterface
	RemapStates        []*RemapState
	Modes              []*Mode
	Parameters         []*Parameter
	Choices            []*Choice
}

// Parameter is a named, typed value. Value, Minimum and Maximum hold
// unevaluated expressions.
type Parameter struct {
	ID        string // parameterId, the name expressions refer to
	Name      string
	Value     string
	Type      string // bit, byte, shortint, int, longint, shortreal, real, string or empty
	Minimum   string
	Maximum   string
	ChoiceRef string
	Resolve   string // immediate, user, generated or empty
	ValueID   string
	Vectors   []Vector
}

// Vector is a left/right bit range of a bit-typed parameter.
type Vector struct {
	ID    string // 2022 only
	Left  string
	Right string
}

// Choice is a named list of allowed values.
type Choice struct {
	Name         string
	Enumerations []Enumeration
}

// Enumeration is one allowed choice value.
type Enumeration struct {
	Value string
	Text  string
}

// HasEnumeration reports whether value is one of the choice's enumerations.
func (c *Choice) HasEnumeration(value string) bool {
	for _, e := range c.Enumerations {
		if e.Value == value {
			return true
		}
	}
	return false
}

// RemapState names a condition under which a memory remap is active.
type RemapState struct {
	Name string
}

// Mode is a 2022 operating mode of the component.
type Mode struct {
	Name string
}

// ModeReference points at a Mode by name.
type ModeReference struct {
	Reference string
	Priority  uint
}
