package main

import (
	"bufio"
	"context"
	"io"

	"github.com/pkg/errors"
)

// New builds an interpreter session with an empty data stack, a bounded
// return stack, and a dictionary holding only the built-in primitives.
// Sessions are fully independent of each other.
func New(opts ...Option) *Forth {
	f := &Forth{
		data: newStack("data", 0),
		ret:  newStack("return", defaultReturnDepth),
	}
	f.applyOptions(opts)
	f.defineBuiltins()
	return f
}

// WithSink routes output events to a caller-supplied sink.
func WithSink(s Sink) Option { return withSink(s) }

// WithOutput routes output events onto w through the default writer sink.
func WithOutput(w io.Writer) Option { return withOutput(w) }

// WithInput makes r the source of runes for KEY.
func WithInput(r io.Reader) Option { return withInput(r) }

// WithKeySource makes ks the source of runes for KEY.
func WithKeySource(ks KeySource) Option { return withKeySource(ks) }

// WithReturnDepth bounds call nesting; past it execution fails with
// ReturnStackOverflowError.
func WithReturnDepth(depth int) Option { return withReturnDepth(depth) }

// WithLogf enables trace logging.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// ExecuteLine interprets one logical input line to completion or to its
// first error.  Either way the sink gets a status event and the session
// stays usable; a failed line keeps whatever stack effects it made before
// failing.
func (f *Forth) ExecuteLine(text string) error {
	return f.executeLine(text)
}

// Run feeds r to ExecuteLine a line at a time until EOF or ctx cancellation.
// Line errors are reported through the sink and do not stop the session.
func (f *Forth) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		f.ExecuteLine(sc.Text())
	}
	return errors.Wrap(sc.Err(), "read input")
}
