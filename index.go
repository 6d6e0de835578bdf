package ipxact

// FieldLocation is a field found by reference together with the memory map
// that owns it.
type FieldLocation struct {
	Field     *Field
	MemoryMap *MemoryMap
	Path      string // map.block.register.field
}

// Index resolves the name-based references of a component. It is a snapshot:
// rebuild it with NewIndex whenever the component's collections are replaced.
type Index struct {
	Revision      Revision
	Context       string
	BusInterfaces map[string]*BusInterface
	AddressSpaces map[string]*AddressSpace
	MemoryMaps    map[string]*MemoryMap
	RemapStates   map[string]*RemapState
	Modes         map[string]*Mode
	Choices       map[string]*Choice
	Parameters    map[string]*Parameter // by parameter ID
	Fields        map[string]FieldLocation
}

// NewIndex builds the lookup tables of c. A nil component yields an empty
// index for the 2014 revision.
func NewIndex(c *Component) *Index {
	idx := &Index{
		BusInterfaces: map[string]*BusInterface{},
		AddressSpaces: map[string]*AddressSpace{},
		MemoryMaps:    map[string]*MemoryMap{},
		RemapStates:   map[string]*RemapState{},
		Modes:         map[string]*Mode{},
		Choices:       map[string]*Choice{},
		Parameters:    map[string]*Parameter{},
		Fields:        map[string]FieldLocation{},
	}
	if c == nil {
		return idx
	}
	idx.Revision = c.Revision
	idx.Context = "component " + c.VLNV.String()

	// First definition wins for duplicated names; duplicates are reported by
	// the component validator.
	for _, b := range c.BusInterfaces {
		putFirst(idx.BusInterfaces, b.Name, b)
	}
	for _, s := range c.AddressSpaces {
		putFirst(idx.AddressSpaces, s.Name, s)
		idx.addParameters(s.Parameters)
	}
	for _, r := range c.RemapStates {
		putFirst(idx.RemapStates, r.Name, r)
	}
	for _, m := range c.Modes {
		putFirst(idx.Modes, m.Name, m)
	}
	for _, ch := range c.Choices {
		putFirst(idx.Choices, ch.Name, ch)
	}
	idx.addParameters(c.Parameters)
	for _, ii := range c.IndirectInterfaces {
		idx.addParameters(ii.Parameters)
	}
	for _, m := range c.MemoryMaps {
		putFirst(idx.MemoryMaps, m.Name, m)
		idx.addMemoryMap(m)
	}
	return idx
}

func putFirst[V any](m map[string]V, key string, v V) {
	if _, ok := m[key]; !ok {
		m[key] = v
	}
}

func (idx *Index) addParameters(params []*Parameter) {
	for _, p := range params {
		if p.ID != "" {
			putFirst(idx.Parameters, p.ID, p)
		}
	}
}

// addMemoryMap indexes the fields of the map's default blocks. Fields inside
// remaps are not addressable by indirect interfaces.
func (idx *Index) addMemoryMap(m *MemoryMap) {
	for _, block := range m.MemoryBlocks {
		idx.addParameters(block.Base().Parameters)
		ab, ok := block.(*AddressBlock)
		if !ok {
			continue
		}
		for _, reg := range ab.Registers {
			idx.addParameters(reg.Parameters)
			for _, f := range reg.Fields {
				idx.addParameters(f.Parameters)
				path := m.Name + "." + ab.Name + "." + reg.Name + "." + f.Name
				loc := FieldLocation{Field: f, MemoryMap: m, Path: path}
				putFirst(idx.Fields, path, loc)
				if f.ID != "" {
					putFirst(idx.Fields, f.ID, loc)
				}
			}
		}
	}
	for _, remap := range m.MemoryRemaps {
		for _, block := range remap.MemoryBlocks {
			idx.addParameters(block.Base().Parameters)
		}
	}
}

// Lookup returns the value expression of the parameter with the given ID.
func (idx *Index) Lookup(id string) (string, bool) {
	p, ok := idx.Parameters[id]
	if !ok {
		return "", false
	}
	return p.Value, true
}

// FindField resolves a field reference, either a fieldID or a dotted
// map.block.register.field path.
func (idx *Index) FindField(ref string) (FieldLocation, bool) {
	loc, ok := idx.Fields[ref]
	return loc, ok
}

// InitiatorSpace returns the address space reachable through the named
// initiator bus interface.
func (idx *Index) InitiatorSpace(busName string) (*AddressSpace, bool) {
	bus, ok := idx.BusInterfaces[busName]
	if !ok || bus.AddressSpaceRef == "" {
		return nil, false
	}
	space, ok := idx.AddressSpaces[bus.AddressSpaceRef]
	return space, ok
}

// HasSegment reports whether the address space has a segment with the name.
func (s *AddressSpace) HasSegment(name string) bool {
	for _, seg := range s.Segments {
		if seg.Name == name {
			return true
		}
	}
	return false
}
