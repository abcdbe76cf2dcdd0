package main

import "strings"

// The dictionary is an append-only list of words.  Lookup walks back from
// the most recent definition, so redefining a word shadows the old entry
// without mutating it; anything compiled against the old entry keeps calling
// it by identity.
type dictionary struct {
	words []*word
}

type wordKind uint8

const (
	wordPrim wordKind = iota
	wordCompiled
)

// word is a dictionary entry: either a primitive tied to an opcode in the
// dispatch table, or a compiled definition holding an instruction sequence.
// Immediate words run at compile time instead of being compiled.
type word struct {
	name      string
	kind      wordKind
	code      primCode
	body      []instr
	immediate bool
}

type instrKind uint8

const (
	instrLit   instrKind = iota // push lit to the data stack
	instrWord                   // execute word (bound at compile time)
	instrJump                   // jump to body index
	instrJumpZ                  // pop; jump to body index when false
)

// instr is one slot of a compiled body.  Word references hold the *word
// resolved when the definition was compiled.  Jump targets are indices into
// the same body, emitted and patched by the immediate control words; op
// names the source word for diagnostics.
type instr struct {
	kind instrKind
	lit  Cell
	word *word
	jump int
	op   string
}

// define appends; it never overwrites.
func (d *dictionary) define(w *word) {
	d.words = append(d.words, w)
}

// lookup is case-insensitive and returns the most recently defined match,
// or nil.
func (d *dictionary) lookup(name string) *word {
	for i := len(d.words) - 1; i >= 0; i-- {
		if strings.EqualFold(d.words[i].name, name) {
			return d.words[i]
		}
	}
	return nil
}

func (d *dictionary) last() *word {
	if len(d.words) == 0 {
		return nil
	}
	return d.words[len(d.words)-1]
}
