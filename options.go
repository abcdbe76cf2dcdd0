package main

import (
	"io"
	"io/ioutil"
	"strings"
)

// Option configures a Forth instance at construction time.
type Option interface{ apply(f *Forth) }

const defaultReturnDepth = 64

var defaults = []Option{
	withOutput(ioutil.Discard),
	withInput(strings.NewReader("")),
	withReturnDepth(defaultReturnDepth),
}

func (f *Forth) applyOptions(opts []Option) {
	for _, opt := range defaults {
		opt.apply(f)
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(f)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(f *Forth) {
	f.logfn = logfn
}

type sinkOption struct{ Sink }
type outputOption struct{ io.Writer }
type keySourceOption struct{ KeySource }
type inputOption struct{ io.Reader }
type returnDepthOption int

func withSink(s Sink) sinkOption                 { return sinkOption{s} }
func withOutput(w io.Writer) outputOption        { return outputOption{w} }
func withKeySource(ks KeySource) keySourceOption { return keySourceOption{ks} }
func withInput(r io.Reader) inputOption          { return inputOption{r} }
func withReturnDepth(depth int) returnDepthOption {
	return returnDepthOption(depth)
}

func (o sinkOption) apply(f *Forth)      { f.sink = o.Sink }
func (o outputOption) apply(f *Forth)    { f.sink = newWriterSink(o.Writer) }
func (o keySourceOption) apply(f *Forth) { f.keys = o.KeySource }
func (o inputOption) apply(f *Forth)     { f.keys = newKeySource(o.Reader) }

func (depth returnDepthOption) apply(f *Forth) {
	f.ret.limit = int(depth)
}
