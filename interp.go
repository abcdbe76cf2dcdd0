package main

import (
	"errors"
	"fmt"
	"strings"
)

// Forth is one interpreter session: a dictionary, a data and a return stack,
// variable space, and the compile-mode state machine.  All of it is owned by
// this instance alone; independent sessions share nothing.
type Forth struct {
	dict dictionary
	data *stack
	ret  *stack
	heap memSpace

	sink Sink
	keys KeySource

	// compile mode: set by : and cleared by ; (or by a failed line, which
	// abandons the definition under construction).  The mode survives
	// between lines, so a definition may span several of them.
	compiling bool
	def       *word
	marks     []ctlMark // control-flow patch points within def.body

	// explicit call frames for the inner loop; depth is mirrored on the
	// return stack so overflow is a controlled condition, not a host stack
	// overflow.
	frames []frame

	tokens  []string // remainder of the line being interpreted
	defined *word    // most recent completed definition, for IMMEDIATE

	logging
}

type frame struct {
	body []instr
	ip   int
}

type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log logging) logf(mess string, args ...interface{}) {
	if log.logfn != nil {
		log.logfn(mess, args...)
	}
}

// halt aborts the current line by panicking with a haltError; executeLine
// recovers it into the line's error result.
func (f *Forth) halt(err error) {
	f.logf("halt error: %v", err)
	panic(haltError{err})
}

func (f *Forth) haltif(err error) {
	if err != nil {
		f.halt(err)
	}
}

func (f *Forth) executeLine(line string) (err error) {
	defer func() {
		if e := recover(); e != nil {
			he, ok := e.(haltError)
			if !ok {
				panic(e)
			}
			err = he.error
		}
		if errors.Is(err, errAborted) {
			err = nil
		}
		if err != nil {
			// a failed line abandons any definition in progress and any
			// call frames it was unwound from; the dictionary is unchanged.
			// The return stack mirrors the abandoned frames, so it resets
			// with them; only the data stack keeps its partial effects.
			f.compiling = false
			f.def = nil
			f.marks = f.marks[:0]
			f.ret.reset()
		}
		f.frames = f.frames[:0]
		f.tokens = nil
		if serr := f.sink.EmitStatus(err); err == nil && serr != nil {
			err = serr
		}
	}()

	f.tokens = strings.Fields(line)
	for len(f.tokens) > 0 {
		token := f.tokens[0]
		f.tokens = f.tokens[1:]
		f.dispatch(token)
	}
	return nil
}

// dispatch handles one token of the outer loop: compile it, execute it, or
// push it as a number literal.
func (f *Forth) dispatch(token string) {
	if f.compiling {
		f.compileToken(token)
		return
	}
	if w := f.dict.lookup(token); w != nil {
		f.logf("exec %v", w.name)
		f.execute(w)
		return
	}
	if val, err := parseLiteral(token); err == nil {
		f.logf("push %v", val)
		f.push(val)
		return
	}
	f.halt(UnknownWordError{Token: token})
}

// compileToken appends one token's instruction to the definition under
// construction.  Immediate words execute now instead; that is how the
// control words emit and patch their branch markers.
func (f *Forth) compileToken(token string) {
	if w := f.dict.lookup(token); w != nil {
		if w.immediate {
			f.logf("compile exec %v", w.name)
			f.execute(w)
			return
		}
		f.logf("compile word %v", w.name)
		f.def.body = append(f.def.body, instr{kind: instrWord, word: w, op: w.name})
		return
	}
	if val, err := parseLiteral(token); err == nil {
		f.logf("compile lit %v", val)
		f.def.body = append(f.def.body, instr{kind: instrLit, lit: val})
		return
	}
	f.halt(UnknownWordError{Token: token})
}

// nextToken pulls the defining word's name token from the current line.
func (f *Forth) nextToken(op string) string {
	if len(f.tokens) == 0 {
		f.halt(UnexpectedEOLError{Word: op})
	}
	token := f.tokens[0]
	f.tokens = f.tokens[1:]
	return token
}

func (f *Forth) execute(w *word) {
	switch w.kind {
	case wordPrim:
		f.callPrim(w.name, w.code)
	case wordCompiled:
		f.exec(w)
	}
}

// exec is the inner loop: it runs a compiled body instruction by
// instruction, entering nested compiled words by pushing an explicit frame
// and a resume marker on the return stack rather than recursing on the host
// stack.
func (f *Forth) exec(w *word) {
	if f.logfn != nil {
		defer f.withLogPrefix("\t")()
	}

	base := len(f.frames)
	cur := frame{body: w.body}
	for {
		if cur.ip >= len(cur.body) {
			if len(f.frames) == base {
				return
			}
			cur = f.frames[len(f.frames)-1]
			f.frames = f.frames[:len(f.frames)-1]
			f.rpop("exit")
			continue
		}

		in := cur.body[cur.ip]
		cur.ip++
		switch in.kind {
		case instrLit:
			f.push(in.lit)
		case instrJump:
			cur.ip = in.jump
		case instrJumpZ:
			if !f.pop(in.op).truthy() {
				cur.ip = in.jump
			}
		case instrWord:
			x := in.word
			if x.kind == wordPrim {
				f.callPrim(x.name, x.code)
				break
			}
			f.logf("call %v r:%v s:%v", x.name, f.ret.cells, f.data.cells)
			f.rpush(Cell(cur.ip))
			f.frames = append(f.frames, cur)
			cur = frame{body: x.body}
		}
	}
}

func (f *Forth) callPrim(op string, code primCode) {
	if int(code) >= len(primTable) || primTable[code] == nil {
		f.halt(fmt.Errorf("invalid opcode %v for %v", int(code), op))
	}
	primTable[code](f, op)
}

// data stack glue: underflow halts the line with the offending word's name.

func (f *Forth) push(c Cell) { f.haltif(f.data.push(c)) }

func (f *Forth) pop(op string) Cell {
	c, err := f.data.pop(op)
	f.haltif(err)
	return c
}

func (f *Forth) peek(op string, depth int) Cell {
	c, err := f.data.peek(op, depth)
	f.haltif(err)
	return c
}

// return stack glue: overflow here is the bound on call nesting.

func (f *Forth) rpush(c Cell) { f.haltif(f.ret.push(c)) }

func (f *Forth) rpop(op string) Cell {
	c, err := f.ret.pop(op)
	f.haltif(err)
	return c
}

func (f *Forth) rpeek(op string, depth int) Cell {
	c, err := f.ret.peek(op, depth)
	f.haltif(err)
	return c
}

// sink glue

func (f *Forth) emitRune(r rune)   { f.haltif(f.sink.EmitRune(r)) }
func (f *Forth) emitNumber(c Cell) { f.haltif(f.sink.EmitNumber(c)) }
