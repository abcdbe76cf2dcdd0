package main

// The primitive word set.  Each primitive is native behavior tied to a
// stable opcode; the dictionary entry for a primitive carries its opcode
// into primTable.  Primitives touch the stacks, variable space, and the
// output sink, and nothing else.

type primCode int

const (
	primColon     primCode = iota // :          start a colon definition
	primSemi                      // ;          finish it (immediate)
	primImmediate                 // IMMEDIATE  mark the latest definition immediate

	primIf    // IF      emit a branch-if-false marker (immediate)
	primElse  // ELSE    emit a jump, patch the IF (immediate)
	primThen  // THEN    patch the open branch (immediate)
	primBegin // BEGIN   mark a loop head (immediate)
	primUntil // UNTIL   branch back while false (immediate)

	primDup   // DUP    ( n -- n n )
	primDrop  // DROP   ( n -- )
	primSwap  // SWAP   ( n1 n2 -- n2 n1 )
	primOver  // OVER   ( n1 n2 -- n1 n2 n1 )
	primRot   // ROT    ( n1 n2 n3 -- n2 n3 n1 )
	primNip   // NIP    ( n1 n2 -- n2 )
	primTuck  // TUCK   ( n1 n2 -- n2 n1 n2 )
	primDepth // DEPTH  ( -- n )

	primToR    // >R  ( n -- ) ( R: -- n )
	primRFrom  // R>  ( -- n ) ( R: n -- )
	primRFetch // R@  ( -- n ) ( R: n -- n )

	primAdd // +       ( n1 n2 -- sum )
	primSub // -       ( n1 n2 -- diff )
	primMul // *       ( n1 n2 -- prod )
	primDiv // /       ( n1 n2 -- quot )
	primMod // MOD     ( n1 n2 -- rem )
	primNeg // NEGATE  ( n -- -n )
	primInc // 1+      ( n -- n+1 )
	primDec // 1-      ( n -- n-1 )

	primAnd // AND  ( n1 n2 -- and )
	primOr  // OR   ( n1 n2 -- or )
	primXor // XOR  ( n1 n2 -- xor )
	primNot // NOT  ( f -- !f )

	primEq     // =   ( n1 n2 -- f )
	primNe     // <>  ( n1 n2 -- f )
	primLt     // <   ( n1 n2 -- f )
	primGt     // >   ( n1 n2 -- f )
	primZeroEq // 0=  ( n -- f )
	primZeroLt // 0<  ( n -- f )
	primZeroGt // 0>  ( n -- f )

	primFetch    // @         ( a -- n )
	primStore    // !         ( n a -- )
	primVariable // VARIABLE  claim a cell, define an address word
	primConstant // CONSTANT  ( n -- ) define a value word
	primAllot    // ALLOT     ( n -- ) grow the latest variable by n cells

	primPrint // .      ( n -- ) emit a number event
	primEmit  // EMIT   ( c -- ) emit a rune event
	primCr    // CR     ( -- )
	primSpace // SPACE  ( -- )
	primKey   // KEY    ( -- c ) read one rune from the key source

	primWords // WORDS  emit the dictionary's names, most recent first
	primAbort // ABORT  clear both stacks, drop the rest of the line

	primMax
)

var primTable [primMax]func(f *Forth, op string)

func init() {
	primTable = [primMax]func(f *Forth, op string){
		primColon:     (*Forth).colon,
		primSemi:      (*Forth).semi,
		primImmediate: (*Forth).immediate,

		primIf:    (*Forth).ctlIf,
		primElse:  (*Forth).ctlElse,
		primThen:  (*Forth).ctlThen,
		primBegin: (*Forth).ctlBegin,
		primUntil: (*Forth).ctlUntil,

		primDup:   (*Forth).dup,
		primDrop:  (*Forth).drop,
		primSwap:  (*Forth).swap,
		primOver:  (*Forth).over,
		primRot:   (*Forth).rot,
		primNip:   (*Forth).nip,
		primTuck:  (*Forth).tuck,
		primDepth: (*Forth).depthOf,

		primToR:    (*Forth).toR,
		primRFrom:  (*Forth).rFrom,
		primRFetch: (*Forth).rFetch,

		primAdd: (*Forth).add,
		primSub: (*Forth).sub,
		primMul: (*Forth).mul,
		primDiv: (*Forth).div,
		primMod: (*Forth).mod,
		primNeg: (*Forth).neg,
		primInc: (*Forth).inc,
		primDec: (*Forth).dec,

		primAnd: (*Forth).and,
		primOr:  (*Forth).or,
		primXor: (*Forth).xor,
		primNot: (*Forth).not,

		primEq:     (*Forth).eq,
		primNe:     (*Forth).ne,
		primLt:     (*Forth).lt,
		primGt:     (*Forth).gt,
		primZeroEq: (*Forth).zeroEq,
		primZeroLt: (*Forth).zeroLt,
		primZeroGt: (*Forth).zeroGt,

		primFetch:    (*Forth).fetch,
		primStore:    (*Forth).store,
		primVariable: (*Forth).variable,
		primConstant: (*Forth).constant,
		primAllot:    (*Forth).allotWord,

		primPrint: (*Forth).print,
		primEmit:  (*Forth).emit,
		primCr:    (*Forth).cr,
		primSpace: (*Forth).space,
		primKey:   (*Forth).key,

		primWords: (*Forth).words,
		primAbort: (*Forth).abort,
	}
}

var builtins = []struct {
	name      string
	code      primCode
	immediate bool
}{
	{":", primColon, false},
	{";", primSemi, true},
	{"IMMEDIATE", primImmediate, false},

	{"IF", primIf, true},
	{"ELSE", primElse, true},
	{"THEN", primThen, true},
	{"BEGIN", primBegin, true},
	{"UNTIL", primUntil, true},

	{"DUP", primDup, false},
	{"DROP", primDrop, false},
	{"SWAP", primSwap, false},
	{"OVER", primOver, false},
	{"ROT", primRot, false},
	{"NIP", primNip, false},
	{"TUCK", primTuck, false},
	{"DEPTH", primDepth, false},

	{">R", primToR, false},
	{"R>", primRFrom, false},
	{"R@", primRFetch, false},

	{"+", primAdd, false},
	{"-", primSub, false},
	{"*", primMul, false},
	{"/", primDiv, false},
	{"MOD", primMod, false},
	{"NEGATE", primNeg, false},
	{"1+", primInc, false},
	{"1-", primDec, false},

	{"AND", primAnd, false},
	{"OR", primOr, false},
	{"XOR", primXor, false},
	{"NOT", primNot, false},

	{"=", primEq, false},
	{"<>", primNe, false},
	{"<", primLt, false},
	{">", primGt, false},
	{"0=", primZeroEq, false},
	{"0<", primZeroLt, false},
	{"0>", primZeroGt, false},

	{"@", primFetch, false},
	{"!", primStore, false},
	{"VARIABLE", primVariable, false},
	{"CONSTANT", primConstant, false},
	{"ALLOT", primAllot, false},

	{".", primPrint, false},
	{"EMIT", primEmit, false},
	{"CR", primCr, false},
	{"SPACE", primSpace, false},
	{"KEY", primKey, false},

	{"WORDS", primWords, false},
	{"ABORT", primAbort, false},
}

func (f *Forth) defineBuiltins() {
	for _, b := range builtins {
		f.dict.define(&word{name: b.name, kind: wordPrim, code: b.code, immediate: b.immediate})
	}
}

//// Compiling words

type ctlKind uint8

const (
	ctlOpenIf ctlKind = iota
	ctlOpenBegin
)

type ctlMark struct {
	kind ctlKind
	idx  int
}

func (f *Forth) compileOnly(op string) {
	if !f.compiling {
		f.halt(CompileOnlyError{Word: op})
	}
}

func (f *Forth) popMark(op, want string, kind ctlKind) int {
	n := len(f.marks) - 1
	if n < 0 || f.marks[n].kind != kind {
		f.halt(UnbalancedControlError{Word: op, Want: want})
	}
	m := f.marks[n]
	f.marks = f.marks[:n]
	return m.idx
}

func (f *Forth) colon(op string) {
	name := f.nextToken(op)
	f.logf("define %v", name)
	// the definition stays out of the dictionary (and out of lookup) until
	// its ; completes
	f.def = &word{name: name, kind: wordCompiled}
	f.marks = f.marks[:0]
	f.compiling = true
}

func (f *Forth) semi(op string) {
	f.compileOnly(op)
	if len(f.marks) > 0 {
		f.halt(UnbalancedControlError{Word: op, Want: "THEN or UNTIL"})
	}
	f.dict.define(f.def)
	f.defined = f.def
	f.logf("defined %v (%v instructions)", f.def.name, len(f.def.body))
	f.def = nil
	f.compiling = false
}

func (f *Forth) immediate(op string) {
	if f.defined == nil {
		f.halt(UnbalancedControlError{Word: op, Want: "a completed definition"})
	}
	f.defined.immediate = true
}

func (f *Forth) ctlIf(op string) {
	f.compileOnly(op)
	f.marks = append(f.marks, ctlMark{kind: ctlOpenIf, idx: len(f.def.body)})
	f.def.body = append(f.def.body, instr{kind: instrJumpZ, op: op})
}

func (f *Forth) ctlElse(op string) {
	f.compileOnly(op)
	at := f.popMark(op, "IF", ctlOpenIf)
	f.marks = append(f.marks, ctlMark{kind: ctlOpenIf, idx: len(f.def.body)})
	f.def.body = append(f.def.body, instr{kind: instrJump, op: op})
	f.def.body[at].jump = len(f.def.body)
}

func (f *Forth) ctlThen(op string) {
	f.compileOnly(op)
	at := f.popMark(op, "IF", ctlOpenIf)
	f.def.body[at].jump = len(f.def.body)
}

func (f *Forth) ctlBegin(op string) {
	f.compileOnly(op)
	f.marks = append(f.marks, ctlMark{kind: ctlOpenBegin, idx: len(f.def.body)})
}

func (f *Forth) ctlUntil(op string) {
	f.compileOnly(op)
	at := f.popMark(op, "BEGIN", ctlOpenBegin)
	f.def.body = append(f.def.body, instr{kind: instrJumpZ, op: op, jump: at})
}

//// Stack words

func (f *Forth) dup(op string)  { f.push(f.peek(op, 0)) }
func (f *Forth) drop(op string) { f.pop(op) }
func (f *Forth) swap(op string) { b, a := f.pop(op), f.pop(op); f.push(b); f.push(a) }
func (f *Forth) over(op string) { f.push(f.peek(op, 1)) }
func (f *Forth) nip(op string)  { b := f.pop(op); f.pop(op); f.push(b) }

func (f *Forth) rot(op string) {
	c, b, a := f.pop(op), f.pop(op), f.pop(op)
	f.push(b)
	f.push(c)
	f.push(a)
}

func (f *Forth) tuck(op string) {
	b, a := f.pop(op), f.pop(op)
	f.push(b)
	f.push(a)
	f.push(b)
}

func (f *Forth) depthOf(string) { f.push(Cell(f.data.depth())) }

func (f *Forth) toR(op string)    { f.rpush(f.pop(op)) }
func (f *Forth) rFrom(op string)  { f.push(f.rpop(op)) }
func (f *Forth) rFetch(op string) { f.push(f.rpeek(op, 0)) }

//// Arithmetic and logic

func (f *Forth) binop(op string, fn func(a, b Cell) Cell) {
	b, a := f.pop(op), f.pop(op)
	f.push(fn(a, b))
}

func (f *Forth) add(op string) { f.binop(op, func(a, b Cell) Cell { return a + b }) }
func (f *Forth) sub(op string) { f.binop(op, func(a, b Cell) Cell { return a - b }) }
func (f *Forth) mul(op string) { f.binop(op, func(a, b Cell) Cell { return a * b }) }

func (f *Forth) div(op string) {
	b, a := f.pop(op), f.pop(op)
	if b == 0 {
		f.halt(DivideByZeroError{Op: op})
	}
	f.push(a / b)
}

func (f *Forth) mod(op string) {
	b, a := f.pop(op), f.pop(op)
	if b == 0 {
		f.halt(DivideByZeroError{Op: op})
	}
	f.push(a % b)
}

func (f *Forth) neg(op string) { f.push(-f.pop(op)) }
func (f *Forth) inc(op string) { f.push(f.pop(op) + 1) }
func (f *Forth) dec(op string) { f.push(f.pop(op) - 1) }

func (f *Forth) and(op string) { f.binop(op, func(a, b Cell) Cell { return a & b }) }
func (f *Forth) or(op string)  { f.binop(op, func(a, b Cell) Cell { return a | b }) }
func (f *Forth) xor(op string) { f.binop(op, func(a, b Cell) Cell { return a ^ b }) }
func (f *Forth) not(op string) { f.push(cellBool(!f.pop(op).truthy())) }

func (f *Forth) eq(op string) { f.binop(op, func(a, b Cell) Cell { return cellBool(a == b) }) }
func (f *Forth) ne(op string) { f.binop(op, func(a, b Cell) Cell { return cellBool(a != b) }) }
func (f *Forth) lt(op string) { f.binop(op, func(a, b Cell) Cell { return cellBool(a < b) }) }
func (f *Forth) gt(op string) { f.binop(op, func(a, b Cell) Cell { return cellBool(a > b) }) }

func (f *Forth) zeroEq(op string) { f.push(cellBool(f.pop(op) == 0)) }
func (f *Forth) zeroLt(op string) { f.push(cellBool(f.pop(op) < 0)) }
func (f *Forth) zeroGt(op string) { f.push(cellBool(f.pop(op) > 0)) }

//// Variable space words

func (f *Forth) fetch(op string) {
	addr := f.pop(op)
	val, err := f.heap.load(addr)
	f.haltif(err)
	f.push(val)
}

func (f *Forth) store(op string) {
	addr := f.pop(op)
	val := f.pop(op)
	f.haltif(f.heap.stor(addr, val))
}

func (f *Forth) variable(op string) {
	name := f.nextToken(op)
	addr := f.heap.create(name)
	f.logf("variable %v @%v", name, addr)
	w := &word{name: name, kind: wordCompiled, body: []instr{{kind: instrLit, lit: addr}}}
	f.dict.define(w)
	f.defined = w
}

func (f *Forth) constant(op string) {
	val := f.pop(op)
	name := f.nextToken(op)
	w := &word{name: name, kind: wordCompiled, body: []instr{{kind: instrLit, lit: val}}}
	f.dict.define(w)
	f.defined = w
}

func (f *Forth) allotWord(op string) {
	n := f.pop(op)
	f.haltif(f.heap.allot(int(n)))
}

//// Output and input words

func (f *Forth) print(op string) { f.emitNumber(f.pop(op)) }
func (f *Forth) emit(op string)  { f.emitRune(rune(uint16(f.pop(op)))) }
func (f *Forth) cr(string)       { f.emitRune('\n') }
func (f *Forth) space(string)    { f.emitRune(' ') }

func (f *Forth) key(op string) {
	r, err := f.keys.ReadKey()
	f.haltif(err)
	f.push(Cell(r))
}

//// Session words

func (f *Forth) words(string) {
	for i := len(f.dict.words) - 1; i >= 0; i-- {
		for _, r := range f.dict.words[i].name {
			f.emitRune(r)
		}
		f.emitRune(' ')
	}
}

func (f *Forth) abort(string) {
	f.data.reset()
	f.ret.reset()
	f.halt(errAborted)
}
