package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forthTest runs a scripted session: every line but the last must succeed,
// the last may be expected to fail, and the rendered output of the whole
// session is compared exactly.
type forthTest struct {
	name    string
	opts    []Option
	lines   []string
	out     string
	wantErr error
}

type forthTests []forthTest

func (fts forthTests) run(t *testing.T) {
	for _, ft := range fts {
		t.Run(ft.name, ft.run)
	}
}

func (ft forthTest) run(t *testing.T) {
	f, out := newTestForth(ft.opts...)
	var lastErr error
	for i, line := range ft.lines {
		lastErr = f.ExecuteLine(line)
		if i < len(ft.lines)-1 {
			require.NoError(t, lastErr, "line %q", line)
		}
	}
	if ft.wantErr != nil {
		assert.Equal(t, ft.wantErr, lastErr)
	} else {
		assert.NoError(t, lastErr)
	}
	assert.Equal(t, ft.out, out.output())
}

func TestArithmetic(t *testing.T) {
	forthTests{
		{name: "add", lines: []string{"5 3 + ."}, out: "8 "},
		{name: "sub", lines: []string{"10 2 - ."}, out: "8 "},
		{name: "mul", lines: []string{"6 7 * ."}, out: "42 "},
		{name: "div truncates", lines: []string{"7 2 / ."}, out: "3 "},
		{name: "div toward zero", lines: []string{"-7 2 / ."}, out: "-3 "},
		{name: "mod", lines: []string{"7 2 MOD ."}, out: "1 "},
		{name: "negate", lines: []string{"5 NEGATE ."}, out: "-5 "},
		{name: "incr decr", lines: []string{"5 1+ . 5 1- ."}, out: "6 4 "},
		{name: "wraparound up", lines: []string{"32767 1 + ."}, out: "-32768 "},
		{name: "wraparound down", lines: []string{"-32768 1 - ."}, out: "32767 "},
		{name: "literal wraps", lines: []string{"65535 ."}, out: "-1 "},
	}.run(t)
}

func TestLogicAndComparison(t *testing.T) {
	forthTests{
		{name: "and or xor", lines: []string{"12 10 AND . 12 10 OR . 12 10 XOR ."}, out: "8 14 6 "},
		{name: "not of false", lines: []string{"0 NOT ."}, out: "-1 "},
		{name: "not of true", lines: []string{"-1 NOT . 7 NOT ."}, out: "0 0 "},
		{name: "equal", lines: []string{"3 3 = . 3 4 = ."}, out: "-1 0 "},
		{name: "not equal", lines: []string{"3 4 <> . 3 3 <> ."}, out: "-1 0 "},
		{name: "less greater", lines: []string{"2 3 < . 3 2 < . 3 2 > ."}, out: "-1 0 -1 "},
		{name: "signed compare", lines: []string{"-32768 32767 < ."}, out: "-1 "},
		{name: "zero tests", lines: []string{"0 0= . -5 0< . 5 0> ."}, out: "-1 -1 -1 "},
	}.run(t)
}

func TestStackWords(t *testing.T) {
	forthTests{
		{name: "dup", lines: []string{"5 DUP . ."}, out: "5 5 "},
		{name: "drop", lines: []string{"1 2 DROP ."}, out: "1 "},
		{name: "swap", lines: []string{"1 2 SWAP . ."}, out: "1 2 "},
		{name: "over", lines: []string{"1 2 OVER . . ."}, out: "1 2 1 "},
		{name: "rot", lines: []string{"1 2 3 ROT . . ."}, out: "1 3 2 "},
		{name: "nip", lines: []string{"1 2 NIP . DEPTH ."}, out: "2 0 "},
		{name: "tuck", lines: []string{"1 2 TUCK . . ."}, out: "2 1 2 "},
		{name: "depth", lines: []string{"DEPTH . 1 2 DEPTH ."}, out: "0 2 "},
		{name: "return stack", lines: []string{"42 >R R@ . R> ."}, out: "42 42 "},
	}.run(t)
}

func TestErrors(t *testing.T) {
	forthTests{
		{
			name:    "unknown word",
			lines:   []string{"FROB"},
			wantErr: UnknownWordError{Token: "FROB"},
		},
		{
			name:    "divide by zero",
			lines:   []string{"10 0 /"},
			wantErr: DivideByZeroError{Op: "/"},
		},
		{
			name:    "mod by zero",
			lines:   []string{"10 0 MOD"},
			wantErr: DivideByZeroError{Op: "MOD"},
		},
		{
			name:    "underflow names the word",
			lines:   []string{"DROP"},
			wantErr: StackUnderflowError{Op: "DROP", Stack: "data", Needed: 1, Available: 0},
		},
		{
			name:    "return underflow",
			lines:   []string{"R>"},
			wantErr: StackUnderflowError{Op: "R>", Stack: "return", Needed: 1, Available: 0},
		},
		{
			name:    "fetch unregistered address",
			lines:   []string{"999 @"},
			wantErr: InvalidAddressError{Addr: 999},
		},
		{
			name:    "compile-only word interactively",
			lines:   []string{"IF"},
			wantErr: CompileOnlyError{Word: "IF"},
		},
		{
			name:    "then without if",
			lines:   []string{": X THEN ;"},
			wantErr: UnbalancedControlError{Word: "THEN", Want: "IF"},
		},
		{
			name:    "until without begin",
			lines:   []string{": X UNTIL ;"},
			wantErr: UnbalancedControlError{Word: "UNTIL", Want: "BEGIN"},
		},
		{
			name:    "unterminated if",
			lines:   []string{": X IF ;"},
			wantErr: UnbalancedControlError{Word: ";", Want: "THEN or UNTIL"},
		},
		{
			name:    "colon needs a name",
			lines:   []string{":"},
			wantErr: UnexpectedEOLError{Word: ":"},
		},
		{
			name:    "variable needs a name",
			lines:   []string{"VARIABLE"},
			wantErr: UnexpectedEOLError{Word: "VARIABLE"},
		},
	}.run(t)
}

func TestDivideByZeroStackState(t *testing.T) {
	// no rollback: / pops both operands before it checks the divisor, so the
	// failed line leaves neither behind
	f, _ := newTestForth()
	assert.Equal(t, DivideByZeroError{Op: "/"}, f.ExecuteLine("10 0 /"))
	assert.Equal(t, 0, f.data.depth())
}

func TestFailedLineKeepsStackEffects(t *testing.T) {
	f, _ := newTestForth()
	assert.Equal(t, UnknownWordError{Token: "FROB"}, f.ExecuteLine("1 2 FROB 3"))
	assert.Equal(t, []Cell{1, 2}, f.data.cells, "pushes before the error stay; tokens after it never run")

	// the session stays usable
	runLines(t, f, "+ .")
}

func TestColonDefinition(t *testing.T) {
	forthTests{
		{name: "define and run", lines: []string{": SQUARE DUP * ;", "4 SQUARE ."}, out: "16 "},
		{name: "nested calls", lines: []string{": SQUARE DUP * ;", ": QUAD SQUARE SQUARE ;", "3 QUAD ."}, out: "81 "},
		{name: "case-insensitive", lines: []string{": square dup * ;", "4 SQUARE ."}, out: "16 "},
		{name: "multi-line body", lines: []string{": F", "1 .", ";", "F"}, out: "1 "},
		{name: "literal in body", lines: []string{": ANSWER 42 ;", "ANSWER ."}, out: "42 "},
	}.run(t)
}

func TestShadowingBindsAtCompileTime(t *testing.T) {
	f, out := newTestForth()
	runLines(t, f,
		": FOO 1 . ;",
		": BAR FOO ;",
		": FOO 2 . ;",
		"BAR", // still the first FOO, by identity
		"FOO", // the new one
	)
	assert.Equal(t, "1 2 ", out.output())
}

func TestDefinitionHiddenUntilSemi(t *testing.T) {
	// a word under construction is not findable, so an aborted definition
	// leaves the dictionary exactly as it was
	f, _ := newTestForth()
	assert.Error(t, f.ExecuteLine(": GONE BOGUS ;"))
	assert.Equal(t, UnknownWordError{Token: "GONE"}, f.ExecuteLine("GONE"))
}

func TestConditionals(t *testing.T) {
	forthTests{
		{
			name:  "if else then",
			lines: []string{": T IF 89 EMIT ELSE 78 EMIT THEN ;", "-1 T 0 T 7 T"},
			out:   "YNY",
		},
		{
			name:  "if then without else",
			lines: []string{": T IF 89 EMIT THEN 33 EMIT ;", "-1 T 0 T"},
			out:   "Y!!",
		},
		{
			name:  "nested if",
			lines: []string{": T IF IF 49 EMIT ELSE 50 EMIT THEN ELSE 51 EMIT THEN ;", "-1 -1 T 0 -1 T 0 0 T"},
			out:   "123",
		},
	}.run(t)
}

func TestBeginUntil(t *testing.T) {
	forthTests{
		{
			name:  "countdown",
			lines: []string{": CDOWN BEGIN DUP . 1- DUP 0= UNTIL DROP ;", "3 CDOWN"},
			out:   "3 2 1 ",
		},
		{
			name:  "loop body runs at least once",
			lines: []string{": ONCE BEGIN 42 EMIT -1 UNTIL ;", "ONCE"},
			out:   "*",
		},
	}.run(t)
}

func TestVariables(t *testing.T) {
	forthTests{
		{
			name:  "round trip",
			lines: []string{"VARIABLE X", "42 X !", "X @ ."},
			out:   "42 ",
		},
		{
			name:  "starts zeroed",
			lines: []string{"VARIABLE X", "X @ ."},
			out:   "0 ",
		},
		{
			name:  "case-insensitive",
			lines: []string{"variable y", "7 Y !", "y @ ."},
			out:   "7 ",
		},
		{
			name:  "two variables are distinct",
			lines: []string{"VARIABLE X VARIABLE Y", "1 X ! 2 Y !", "X @ . Y @ ."},
			out:   "1 2 ",
		},
		{
			name:  "in a definition",
			lines: []string{"VARIABLE X", ": BUMP X @ 1+ X ! ;", "BUMP BUMP BUMP X @ ."},
			out:   "3 ",
		},
		{
			name:  "constant",
			lines: []string{"7 CONSTANT SEVEN", "SEVEN SEVEN + ."},
			out:   "14 ",
		},
		{
			name:  "allot array",
			lines: []string{"VARIABLE A 2 ALLOT", "7 A 2 + !", "A 2 + @ ."},
			out:   "7 ",
		},
		{
			name:    "allot bounds",
			lines:   []string{"VARIABLE A 2 ALLOT", "A 3 + @"},
			wantErr: InvalidAddressError{Addr: 3},
		},
	}.run(t)
}

func TestImmediateWord(t *testing.T) {
	f, out := newTestForth()
	runLines(t, f,
		": GREET 72 EMIT ;",
		"IMMEDIATE",
		": T GREET ;", // GREET runs now, at compile time
	)
	assert.Equal(t, "H", out.output())

	runLines(t, f, "T")
	assert.Equal(t, "H", out.output(), "T compiled an empty body")
}

func TestReturnStackOverflowViaToR(t *testing.T) {
	f, _ := newTestForth(WithReturnDepth(4))
	err := f.ExecuteLine("1 >R 2 >R 3 >R 4 >R 5 >R")
	assert.Equal(t, ReturnStackOverflowError{Depth: 4}, err)

	// the failed line unwound the return stack, so its capacity is back
	assert.Equal(t, 0, f.ret.depth())
	runLines(t, f, "1 >R 2 >R R> R> + .")
}

func TestReturnStackOverflowViaDeepCalls(t *testing.T) {
	f, _ := newTestForth(WithReturnDepth(4))
	runLines(t, f, ": W0 1 ;")
	for i := 1; i <= 6; i++ {
		runLines(t, f, fmt.Sprintf(": W%d W%d ;", i, i-1))
	}
	err := f.ExecuteLine("W6")
	assert.Equal(t, ReturnStackOverflowError{Depth: 4}, err)

	// the aborted call chain's resume markers are gone with their frames;
	// shallow nesting fits again, now and on every later line
	assert.Equal(t, 0, f.ret.depth())
	runLines(t, f, "W3 .", "W3 .")
}

func TestAbort(t *testing.T) {
	f, out := newTestForth()
	runLines(t, f, "1 2 3 ABORT 4 5")
	assert.Equal(t, 0, f.data.depth(), "ABORT clears the data stack")
	assert.Equal(t, 0, f.ret.depth())
	assert.Equal(t, "", out.output(), "tokens after ABORT never run")
}

func TestWordsListing(t *testing.T) {
	f, out := newTestForth()
	runLines(t, f, ": SQUARE DUP * ;", "WORDS")
	assert.Contains(t, out.output(), "SQUARE ")
	assert.Contains(t, out.output(), "DUP ")
}

func TestSessionIsolation(t *testing.T) {
	a, aout := newTestForth()
	b, _ := newTestForth()

	runLines(t, a, ": GREET 72 EMIT ;", "VARIABLE X 9 X !")
	assert.Equal(t, UnknownWordError{Token: "GREET"}, b.ExecuteLine("GREET"))

	runLines(t, a, "GREET X @ .")
	assert.Equal(t, "H9 ", aout.output())
}

func TestOutputWords(t *testing.T) {
	forthTests{
		{name: "emit", lines: []string{"72 EMIT 105 EMIT"}, out: "Hi"},
		{name: "emit masks to 16 bits", lines: []string{"-32768 EMIT"}, out: "耀"},
		{name: "cr and space", lines: []string{"1 . CR 2 . SPACE"}, out: "1 \n2  "},
	}.run(t)
}

func TestTraceLogging(t *testing.T) {
	var lines []string
	f, _ := newTestForth(WithLogf(func(mess string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(mess, args...))
	}))
	runLines(t, f, ": SQUARE DUP * ;", "4 SQUARE .")
	assert.NotEmpty(t, lines)
}

func TestDump(t *testing.T) {
	f, _ := newTestForth()
	runLines(t, f, ": SQUARE DUP * ;", "VARIABLE X 42 X !", "1 2")

	var buf strings.Builder
	require.NoError(t, f.dump(&buf))
	assert.Contains(t, buf.String(), "SQUARE")
	assert.Contains(t, buf.String(), "X ")
	assert.Contains(t, buf.String(), "[1 2]")
}
