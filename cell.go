package main

import "strconv"

// Cell is the unit of storage: a signed 16 bit integer with two's complement
// wraparound, so 32767 1 + yields -32768.  Every value on either stack and in
// variable space is a single Cell.
//
// The boolean convention is the usual Forth one: true is the all-bits-set
// cell (-1), false is zero.  Words that branch treat exactly zero as false
// and any other cell as true.
type Cell int16

const (
	cellTrue  Cell = -1
	cellFalse Cell = 0
)

func cellBool(b bool) Cell {
	if b {
		return cellTrue
	}
	return cellFalse
}

func (c Cell) truthy() bool { return c != 0 }

// parseLiteral reads a signed base 10 number literal.  Values beyond 16 bits
// wrap, consistent with cell arithmetic: 65535 reads as -1.
func parseLiteral(token string) (Cell, error) {
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, err
	}
	return Cell(n), nil
}
