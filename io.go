package main

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
)

// Sink receives the interpreter's output events in emission order: one event
// per EMIT or print, plus a status event when a line finishes.  The core
// never formats or buffers terminal output beyond this stream; the shell
// supplies the sink.
type Sink interface {
	EmitRune(r rune) error
	EmitNumber(n Cell) error

	// EmitStatus acknowledges a finished line; err is nil when the line
	// completed.
	EmitStatus(err error) error
}

// KeySource supplies runes to the KEY word.  Tests substitute a pre-scripted
// source.
type KeySource interface {
	ReadKey() (rune, error)
}

// writerSink renders the event stream onto an io.Writer: runes verbatim,
// numbers as "%d ", ok lines as "ok", failed lines as the error.  Output
// flushes on every status event.
type writerSink struct {
	out writeFlusher
}

func newWriterSink(w io.Writer) *writerSink {
	return &writerSink{out: newWriteFlusher(w)}
}

func (ws *writerSink) EmitRune(r rune) error { return writeRune(ws.out, r) }

func (ws *writerSink) EmitNumber(n Cell) error {
	_, err := ws.out.Write([]byte(strconv.Itoa(int(n)) + " "))
	return err
}

func (ws *writerSink) EmitStatus(err error) error {
	var werr error
	if err != nil {
		_, werr = fmt.Fprintf(ws.out, "error: %v\n", err)
	} else {
		_, werr = io.WriteString(ws.out, "ok\n")
	}
	if ferr := ws.out.Flush(); werr == nil {
		werr = ferr
	}
	return werr
}

func writeRune(w io.Writer, r rune) (err error) {
	type runeWriter interface {
		WriteRune(r rune) (size int, err error)
	}
	if r < 0x80 {
		if bw, ok := w.(io.ByteWriter); ok {
			err = bw.WriteByte(byte(r))
		} else {
			_, err = w.Write([]byte{byte(r)})
		}
	} else if rw, ok := w.(runeWriter); ok {
		_, err = rw.WriteRune(r)
	} else if sw, ok := w.(io.StringWriter); ok {
		_, err = sw.WriteString(string(r))
	} else {
		_, err = w.Write([]byte(string(r)))
	}
	return err
}

type writeFlusher interface {
	io.Writer
	Flush() error
}

var discardWriteFlusher writeFlusher = nopFlusher{ioutil.Discard}

func newWriteFlusher(w io.Writer) writeFlusher {
	// discard writer does not need flushing
	if w == ioutil.Discard {
		return discardWriteFlusher
	}

	if wf, is := w.(writeFlusher); is {
		return wf
	}

	// in memory buffers, as implemented by types like bytes.Buffer and
	// strings.Builder, do not need to be flushed
	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// readerKeySource adapts an io.Reader into a KeySource.
type readerKeySource struct {
	in io.RuneReader
}

func newKeySource(r io.Reader) KeySource {
	if rr, is := r.(io.RuneReader); is {
		return readerKeySource{in: rr}
	}
	return readerKeySource{in: bufio.NewReader(r)}
}

func (ks readerKeySource) ReadKey() (rune, error) {
	r, _, err := ks.in.ReadRune()
	return r, err
}
