package core

import (
	"fmt"
	"iter"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type dispatcher struct {
	t      TestReporter
	logger *charmlog.Logger
}

// dispatch scans candidates in order and answers the call with the first one that
// accepts it. There is no backtracking: registration order is the only tie-break.
//
// lock, when set, is called for each candidate before it is inspected and returns the
// matching unlock. The selected candidate stays locked until its action returns.
func (d dispatcher) dispatch(
	call Method,
	args []any,
	candidates iter.Seq[*Expectation],
	lock func(*Expectation) func(),
	fallback Fallback,
) []any {
	d.t.Helper()

	var trace traceWriter

	for ex := range candidates {
		unlock := func() {}
		if lock != nil {
			unlock = lock(ex)
		}

		if !trace.inspect(ex, call, args) {
			unlock()

			continue
		}

		defer unlock()

		return d.run(ex, call, args, fallback)
	}

	err := &NoMatchError{Call: callText(call, args), Trace: trace.String()}
	d.logger.Error("no suitable expectation", "call", err.Call)
	fail(d.t, err)

	return nil
}

func (d dispatcher) run(ex *Expectation, call Method, args []any, fallback Fallback) []any {
	d.t.Helper()

	ex.selectCall()
	d.logger.Debug("selected expectation", "call", callText(call, args), "expectation", ex, "times", ex.times)

	if ex.action != nil {
		return ex.action.Exec(args)
	}

	if fallback == nil {
		fail(d.t, fmt.Errorf("%w for expectation %s", ErrNoDefault, ex))
	}

	return fallback(args)
}

// traceWriter accumulates the reason each candidate was accepted or rejected.
type traceWriter struct {
	builder strings.Builder
}

// inspect reports whether ex accepts the call, recording every check it made.
func (w *traceWriter) inspect(ex *Expectation, call Method, args []any) bool {
	w.line(0, "- %s", ex)

	if ex.method.Signature != call.Signature {
		w.field("signature:", "not ok")
		w.line(2, "expected:  %s", call.Signature)
		w.line(2, "but found: %s", ex.method.Signature)

		return false
	}

	w.field("signature:", "ok")

	valid := ex.matches(args)
	if valid {
		w.field("argument matcher:", "ok")
	} else {
		w.field("argument matcher:", "not ok")
	}

	switch {
	case ex.times.IsDone():
		w.field("call count:", fmt.Sprintf("already done (%s)", ex.times))

		return false
	case allDone(ex.sequences):
		w.field("call count:", "already done (all sequences done)")

		return false
	case ex.times.IsReady():
		w.field("call count:", fmt.Sprintf("ready (%s)", ex.times))
	default:
		w.field("call count:", fmt.Sprintf("ok (%s)", ex.times))
	}

	for _, handle := range ex.sequences {
		label := fmt.Sprintf("sequence #%d:", handle.SequenceID())

		switch {
		case handle.IsDone():
			w.field(label, "done")
		case handle.IsActive():
			w.field(label, "active")
		default:
			valid = false

			w.field(label, "not active")
			w.line(2, "unsatisfied predecessors:")

			for description := range handle.Unsatisfied() {
				w.line(3, "- %s", description)
			}
		}
	}

	return valid
}

func (w *traceWriter) String() string {
	if w.builder.Len() == 0 {
		return "no expectations are registered for this method"
	}

	return "tried the following expectations:\n" + strings.TrimSuffix(w.builder.String(), "\n")
}

func (w *traceWriter) field(label, value string) {
	w.line(1, "%-18s%s", label, value)
}

func (w *traceWriter) line(depth int, format string, args ...any) {
	w.builder.WriteString(strings.Repeat("    ", depth))
	fmt.Fprintf(&w.builder, format, args...)
	w.builder.WriteByte('\n')
}

// allDone reports whether the expectation holds slots and every one of them is done.
func allDone(handles []*SequenceHandle) bool {
	if len(handles) == 0 {
		return false
	}

	for _, handle := range handles {
		if !handle.IsDone() {
			return false
		}
	}

	return true
}

func callText(call Method, args []any) string {
	return fmt.Sprintf("%s(%s)", call, formatArgs(args))
}
