package main

import (
	"fmt"
	"io"
)

// dump writes a human-readable snapshot of the session: the dictionary from
// most recent to oldest, both stacks, and the variable regions.  The -dump
// flag prints it after a session; tests use it to diagnose failures.
func (f *Forth) dump(w io.Writer) (err error) {
	wr := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	wr("## dictionary (%v words, most recent first)\n", len(f.dict.words))
	for i := len(f.dict.words) - 1; i >= 0; i-- {
		entry := f.dict.words[i]
		switch entry.kind {
		case wordPrim:
			wr("  %-10s prim op=%v", entry.name, int(entry.code))
		case wordCompiled:
			wr("  %-10s compiled %v instructions", entry.name, len(entry.body))
		}
		if entry.immediate {
			wr(" immediate")
		}
		wr("\n")
	}

	wr("## data stack (%v): %v\n", f.data.depth(), f.data.cells)
	wr("## return stack (%v/%v): %v\n", f.ret.depth(), f.ret.limit, f.ret.cells)

	wr("## variables (%v cells)\n", len(f.heap.cells))
	for _, reg := range f.heap.regions {
		wr("  %-10s @%v %v\n", reg.name, reg.base, f.heap.cells[reg.base:reg.base+reg.size])
	}
	return err
}
