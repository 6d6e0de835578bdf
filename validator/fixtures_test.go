package validator

import (
	ipxact "github.com/agentflare-ai/ipxact-go"
	"github.com/agentflare-ai/ipxact-go/expression"
)

func newTestParser() ExpressionParser { return expression.New() }

func newParserFor(idx *ipxact.Index) ExpressionParser {
	return expression.New(expression.WithSymbols(idx))
}

func newTestRegisterValidator() *RegisterValidator {
	p := newTestParser()
	params := NewParameterValidator(p)
	return NewRegisterValidator(p, NewRegisterBaseValidator(p, params), NewFieldValidator(p, params))
}

func newTestAddressBlockValidator() *AddressBlockValidator {
	p := newTestParser()
	params := NewParameterValidator(p)
	return NewAddressBlockValidator(p, NewMemoryBlockValidator(p, params), newTestRegisterValidator())
}

func newTestSubspaceMapValidator() *SubspaceMapValidator {
	p := newTestParser()
	return NewSubspaceMapValidator(p, NewMemoryBlockValidator(p, NewParameterValidator(p)))
}

func testField(name, offset, width string) *ipxact.Field {
	return &ipxact.Field{Name: name, BitOffset: offset, BitWidth: width}
}

func testRegister(name, offset, size string, fields ...*ipxact.Field) *ipxact.Register {
	return &ipxact.Register{
		RegisterBase: ipxact.RegisterBase{Name: name, AddressOffset: offset},
		Size:         size,
		Fields:       fields,
	}
}

func testAddressBlock(name, base, rng, width string, registers ...*ipxact.Register) *ipxact.AddressBlock {
	return &ipxact.AddressBlock{
		MemoryBlockBase: ipxact.MemoryBlockBase{Name: name, BaseAddress: base},
		Range:           rng,
		Width:           width,
		Registers:       registers,
	}
}

func testMemoryMap(name, aub string, blocks ...ipxact.MemoryBlock) *ipxact.MemoryMap {
	return &ipxact.MemoryMap{
		MemoryMapBase:   ipxact.MemoryMapBase{Name: name, MemoryBlocks: blocks},
		AddressUnitBits: aub,
	}
}

func testRemap(name, state string) *ipxact.MemoryRemap {
	return &ipxact.MemoryRemap{MemoryMapBase: ipxact.MemoryMapBase{Name: name}, RemapState: state}
}

func modeRefs(refs ...string) []ipxact.ModeReference {
	out := make([]ipxact.ModeReference, len(refs))
	for i, r := range refs {
		out[i] = ipxact.ModeReference{Reference: r, Priority: uint(i)}
	}
	return out
}

// testBusComponent has a master interface reaching an address space with
// one segment, and a slave interface.
func testBusComponent(rev ipxact.Revision) *ipxact.Component {
	initiator, target := ipxact.ModeMaster, ipxact.ModeSlave
	if rev == ipxact.Std22 {
		initiator, target = ipxact.ModeInitiator, ipxact.ModeTarget
	}
	return &ipxact.Component{
		VLNV:     ipxact.VLNV{Vendor: "tut.fi", Library: "ip", Name: "bus", Version: "1.0"},
		Revision: rev,
		BusInterfaces: []*ipxact.BusInterface{
			{Name: "master", Mode: initiator, AddressSpaceRef: "space"},
			{Name: "slave", Mode: target},
			{Name: "detached", Mode: initiator},
		},
		AddressSpaces: []*ipxact.AddressSpace{{
			Name:  "space",
			Range: "256",
			Width: "32",
			Segments: []*ipxact.Segment{
				{Name: "seg", AddressOffset: "0", Range: "16"},
			},
		}},
	}
}

// testIndirectComponent holds fields with several access types in memory
// map "map", and field "mapField" in memory map "indirectMap".
func testIndirectComponent() *ipxact.Component {
	field := func(name string, access ipxact.AccessType) *ipxact.Field {
		f := testField(name, "0", "8")
		f.ID = name
		f.Access = access
		return f
	}
	c := testBusComponent(ipxact.Std14)
	c.MemoryMaps = []*ipxact.MemoryMap{
		testMemoryMap("map", "8", testAddressBlock("block", "0", "64", "32",
			testRegister("rwReg", "0", "32", field("rwField", ipxact.AccessReadWrite)),
			testRegister("roReg", "4", "32", field("readOnlyField", ipxact.AccessReadOnly)),
			testRegister("woReg", "8", "32", field("writeOnlyField", ipxact.AccessWriteOnly)),
			testRegister("w1Reg", "12", "32", field("writeOnceField", ipxact.AccessWriteOnce)),
		)),
		testMemoryMap("indirectMap", "8", testAddressBlock("block", "0", "16", "32",
			testRegister("reg", "0", "32", field("mapField", ipxact.AccessReadWrite)),
		)),
	}
	return c
}
