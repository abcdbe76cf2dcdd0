package main

import (
	"errors"
	"fmt"
)

// Error kinds raised by the interpreter.  All of them abort the current line
// only: the dictionary is never touched by a failed line, while the stacks
// keep whatever the line managed to do before failing.

// StackUnderflowError reports a pop or peek against a stack that does not
// hold enough cells for the word being executed.
type StackUnderflowError struct {
	Op        string
	Stack     string
	Needed    int
	Available int
}

func (e StackUnderflowError) Error() string {
	return fmt.Sprintf("%v: %v stack underflow: need %v, have %v", e.Op, e.Stack, e.Needed, e.Available)
}

// ReturnStackOverflowError reports that the return stack hit its fixed
// capacity, either through runaway call nesting or >R abuse.
type ReturnStackOverflowError struct{ Depth int }

func (e ReturnStackOverflowError) Error() string {
	return fmt.Sprintf("return stack overflow at depth %v", e.Depth)
}

// UnknownWordError reports a token that is neither a dictionary word nor a
// number literal.
type UnknownWordError struct{ Token string }

func (e UnknownWordError) Error() string { return fmt.Sprintf("unknown word %q", e.Token) }

// DivideByZeroError reports a zero divisor under / or MOD.
type DivideByZeroError struct{ Op string }

func (e DivideByZeroError) Error() string { return fmt.Sprintf("%v: divide by zero", e.Op) }

// InvalidAddressError reports a fetch or store outside allocated variable
// space.
type InvalidAddressError struct{ Addr Cell }

func (e InvalidAddressError) Error() string { return fmt.Sprintf("invalid address %v", e.Addr) }

// CompileOnlyError reports a compiling word used outside a definition.
type CompileOnlyError struct{ Word string }

func (e CompileOnlyError) Error() string {
	return fmt.Sprintf("%v: compile-only word used interactively", e.Word)
}

// UnbalancedControlError reports a control word without its opener, for
// example THEN with no IF on the same definition.
type UnbalancedControlError struct{ Word, Want string }

func (e UnbalancedControlError) Error() string {
	return fmt.Sprintf("%v without %v", e.Word, e.Want)
}

// UnexpectedEOLError reports a defining word whose name token is missing
// from the line.
type UnexpectedEOLError struct{ Word string }

func (e UnexpectedEOLError) Error() string {
	return fmt.Sprintf("%v: expected a name before end of line", e.Word)
}

// errAborted is how ABORT unwinds: the stacks are already cleared, the rest
// of the line is dropped, and the line still acknowledges ok.
var errAborted = errors.New("aborted")

// haltError carries an interpreter error up through the execution machinery
// as a panic; executeLine recovers exactly this type and nothing else, so
// genuine bugs still crash loudly.
type haltError struct{ error }

func (err haltError) Error() string { return fmt.Sprintf("halted: %v", err.error) }
func (err haltError) Unwrap() error { return err.error }
