package main

import "io"

// Option configures an Interp under construction.
type Option interface{ apply(in *Interp) }

func (in *Interp) apply(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(in)
		}
	}
}

// WithTee streams each print line to w as it is produced, in addition to
// appending it to the output log. Useful for REPL hosts that want output
// before Execute returns.
func WithTee(w io.Writer) Option { return teeOption{w} }

// WithLogf enables trace logging of token execution through logfn.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithMaxDepth bounds word invocation nesting; exceeding it fails the
// current Execute instead of exhausting the host call stack.
func WithMaxDepth(limit int) Option { return maxDepthOption(limit) }

type teeOption struct{ io.Writer }
type withLogfn func(mess string, args ...interface{})
type maxDepthOption int

func (o teeOption) apply(in *Interp) { in.tee = o.Writer }

func (logfn withLogfn) apply(in *Interp) { in.logfn = logfn }

func (lim maxDepthOption) apply(in *Interp) {
	if lim > 0 {
		in.maxDepth = int(lim)
	}
}
