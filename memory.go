package ipxact

// MemoryMapBase is the part shared by memory maps and memory remaps.
type MemoryMapBase struct {
	Name         string
	IsPresent    string
	MemoryBlocks []MemoryBlock
}

// MemoryMap is a component memory map with its optional remaps.
type MemoryMap struct {
	MemoryMapBase
	AddressUnitBits string
	Shared          string
	DefinitionRef   string // 2022 memoryMapDefinitionRef
	MemoryRemaps    []*MemoryRemap
}

// MemoryRemap is an alternate view of a memory map that is active in a
// remap state (2014) or in a set of modes (2022).
type MemoryRemap struct {
	MemoryMapBase
	RemapState    string
	ModeRefs      []ModeReference
	DefinitionRef string // 2022 remapDefinitionRef
}

// MemoryBlock is an entry of a memory map: an AddressBlock or a SubspaceMap.
type MemoryBlock interface {
	Base() *MemoryBlockBase
}

// MemoryBlockBase holds the attributes common to every memory block.
type MemoryBlockBase struct {
	Name        string
	IsPresent   string
	BaseAddress string
	Parameters  []*Parameter
}

func (b *MemoryBlockBase) Base() *MemoryBlockBase { return b }

// Usage is the intended use of an address block.
type Usage string

const (
	UsageUnspecified Usage = ""
	UsageMemory      Usage = "memory"
	UsageRegister    Usage = "register"
	UsageReserved    Usage = "reserved"
)

// AddressBlock is a contiguous range of registers or memory.
type AddressBlock struct {
	MemoryBlockBase
	Range          string
	Width          string
	Usage          Usage
	Volatile       string // "true", "false" or empty
	Access         AccessType
	TypeIdentifier string
	DefinitionRef  string // 2022 addressBlockDefinitionRef
	Registers      []*Register
}

// SubspaceMap maps the address space behind an initiator bus interface into
// a memory map.
type SubspaceMap struct {
	MemoryBlockBase
	InitiatorRef string // masterRef in 2014, initiatorRef in 2022
	SegmentRef   string
}

var (
	_ MemoryBlock = (*AddressBlock)(nil)
	_ MemoryBlock = (*SubspaceMap)(nil)
)

// RegisterBase holds the attributes shared by registers and alternate registers.
type RegisterBase struct {
	Name          string
	IsPresent     string
	Dimension     string
	AddressOffset string
	Parameters    []*Parameter
}

// Register is a register of an address block.
type Register struct {
	RegisterBase
	Size               string
	Volatile           string
	Access             AccessType
	TypeIdentifier     string
	DefinitionRef      string // 2022 registerDefinitionRef
	Fields             []*Field
	AlternateRegisters []*AlternateRegister
}

// AlternateRegister is a different field layout of the same register.
type AlternateRegister struct {
	RegisterBase
	AlternateGroups []string // 2014
	ModeRefs        []ModeReference
	Volatile        string
	Access          AccessType
	Fields          []*Field
}

// Field is a bit range of a register.
type Field struct {
	ID               string // fieldID used by indirect interfaces
	Name             string
	IsPresent        string
	BitOffset        string
	BitWidth         string
	Resets           []FieldReset
	Access           AccessType
	Volatile         string
	ModifiedWrite    string
	ReadAction       string
	Testable         string
	Reserved         string
	TypeIdentifier   string
	WriteConstraint  *WriteValueConstraint
	EnumeratedValues []*EnumeratedValue
	Parameters       []*Parameter
}

// FieldReset is a reset value with an optional mask.
type FieldReset struct {
	ResetTypeRef string
	Value        string
	Mask         string
}

// WriteValueConstraint limits values written to a field. Only one of
// WriteAsRead, UseEnumeratedValues or Minimum/Maximum is meaningful.
type WriteValueConstraint struct {
	WriteAsRead         bool
	UseEnumeratedValues bool
	Minimum             string
	Maximum             string
}

// EnumeratedValue names a field value.
type EnumeratedValue struct {
	Name  string
	Value string
	Usage string // read, write, read-write or empty
}
