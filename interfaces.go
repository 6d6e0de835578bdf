package ipxact

// BusInterface is a named connection point of a component.
type BusInterface struct {
	Name      string
	IsPresent string
	Mode      InterfaceMode

	// Initiator side.
	AddressSpaceRef string
	BaseAddress     string

	// Target side.
	MemoryMapRef string
	Bridges      []*TransparentBridge
}

// AddressSpace is the addressable range seen by an initiator interface.
type AddressSpace struct {
	Name            string
	IsPresent       string
	Range           string
	Width           string
	AddressUnitBits string
	Segments        []*Segment
	Parameters      []*Parameter
}

// Segment is a named part of an address space.
type Segment struct {
	Name          string
	IsPresent     string
	AddressOffset string
	Range         string
}

// IndirectInterface accesses a memory map, or the address spaces behind
// transparent bridges, through an address field and a data field.
type IndirectInterface struct {
	Name               string
	AddressRef         string // indirectAddressRef
	DataRef            string // indirectDataRef
	MemoryMapRef       string
	TransparentBridges []*TransparentBridge
	BitsInLau          string
	Endianness         string
	Parameters         []*Parameter
}

// TransparentBridge forwards to an initiator bus interface.
type TransparentBridge struct {
	InitiatorRef string // masterRef in 2014
	IsPresent    string
}
