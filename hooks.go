package typematch

import (
	"log/slog"
	"time"
)

// OnDispatchFunc is called just before the matched handler executes. clause
// is the zero-based index of the matched clause.
type OnDispatchFunc func(sig Signature, clause int)

// OnSuccessFunc is called after the handler returns a nil error.
type OnSuccessFunc func(sig Signature, clause int, duration time.Duration)

// OnFailureFunc is called after the handler returns an error.
type OnFailureFunc func(sig Signature, clause int, err error, duration time.Duration)

// OnNoMatchFunc is called when no clause matches. The call still fails with
// a *MatchError; register Otherwise to handle unmatched calls.
type OnNoMatchFunc func(sig Signature)

// hooks holds all configured hook functions.
type hooks struct {
	onDispatch []OnDispatchFunc
	onSuccess  []OnSuccessFunc
	onFailure  []OnFailureFunc
	onNoMatch  []OnNoMatchFunc
}

// clone copies the hook slices so options on a copy never write into the
// original's backing arrays.
func (h hooks) clone() hooks {
	return hooks{
		onDispatch: append([]OnDispatchFunc(nil), h.onDispatch...),
		onSuccess:  append([]OnSuccessFunc(nil), h.onSuccess...),
		onFailure:  append([]OnFailureFunc(nil), h.onFailure...),
		onNoMatch:  append([]OnNoMatchFunc(nil), h.onNoMatch...),
	}
}

// WithOnDispatch adds a hook called just before the handler executes.
// Multiple hooks are called in order.
//
// Example:
//
//	typematch.WithOnDispatch(func(sig typematch.Signature, clause int) {
//	    metrics.Incr("typematch.dispatch", "clause:"+strconv.Itoa(clause))
//	})
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onDispatch = append(d.hooks.onDispatch, fn)
	}
}

// WithOnSuccess adds a hook called after the handler succeeds.
// Multiple hooks are called in order.
func WithOnSuccess(fn OnSuccessFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onSuccess = append(d.hooks.onSuccess, fn)
	}
}

// WithOnFailure adds a hook called after the handler returns an error.
// Multiple hooks are called in order.
//
// Example:
//
//	typematch.WithOnFailure(func(sig typematch.Signature, clause int, err error, d time.Duration) {
//	    logger.Error("handler failed", "signature", sig.String(), "error", err)
//	})
func WithOnFailure(fn OnFailureFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onFailure = append(d.hooks.onFailure, fn)
	}
}

// WithOnNoMatch adds a hook called when no clause matches.
// Multiple hooks are called in order.
func WithOnNoMatch(fn OnNoMatchFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onNoMatch = append(d.hooks.onNoMatch, fn)
	}
}

// WithLogger adds hooks that log each dispatch to logger: debug on dispatch
// and success, warn on handler failure and on no match. A nil logger adds
// nothing.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger == nil {
			return
		}
		d.hooks.onDispatch = append(d.hooks.onDispatch, func(sig Signature, clause int) {
			logger.Debug("dispatching", "signature", sig.String(), "clause", clause)
		})
		d.hooks.onSuccess = append(d.hooks.onSuccess, func(sig Signature, clause int, duration time.Duration) {
			logger.Debug("handler succeeded", "signature", sig.String(), "clause", clause, "duration", duration)
		})
		d.hooks.onFailure = append(d.hooks.onFailure, func(sig Signature, clause int, err error, duration time.Duration) {
			logger.Warn("handler failed", "signature", sig.String(), "clause", clause, "error", err, "duration", duration)
		})
		d.hooks.onNoMatch = append(d.hooks.onNoMatch, func(sig Signature) {
			logger.Warn("no pattern matched", "signature", sig.String())
		})
	}
}
