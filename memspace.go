package main

import "errors"

// Variable space is a flat heap of cells addressed by cell index.  VARIABLE
// claims one zero cell under a named region and ALLOT extends the most
// recent region, so regions tile the heap contiguously.  Addresses outside
// the allocated heap are errors, never silent reads of uninitialized
// memory.
type memSpace struct {
	cells   []Cell
	regions []region
}

type region struct {
	name string
	base int
	size int
}

var (
	errAllotNothing = errors.New("ALLOT before any VARIABLE")
	errAllotShrink  = errors.New("ALLOT cannot shrink a region")
)

// create claims one zero-initialized cell and returns its address.
func (m *memSpace) create(name string) Cell {
	base := len(m.cells)
	m.cells = append(m.cells, 0)
	m.regions = append(m.regions, region{name: name, base: base, size: 1})
	return Cell(base)
}

// allot grows the most recently created region by n cells.
func (m *memSpace) allot(n int) error {
	if len(m.regions) == 0 {
		return errAllotNothing
	}
	if n < 0 {
		return errAllotShrink
	}
	m.cells = append(m.cells, make([]Cell, n)...)
	m.regions[len(m.regions)-1].size += n
	return nil
}

func (m *memSpace) load(addr Cell) (Cell, error) {
	i := int(addr)
	if i < 0 || i >= len(m.cells) {
		return 0, InvalidAddressError{Addr: addr}
	}
	return m.cells[i], nil
}

func (m *memSpace) stor(addr Cell, val Cell) error {
	i := int(addr)
	if i < 0 || i >= len(m.cells) {
		return InvalidAddressError{Addr: addr}
	}
	m.cells[i] = val
	return nil
}
