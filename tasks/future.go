package tasks

// Future is the single result of an asynchronous task body. Futures are
// settled and observed on the loop goroutine, asynchronous producers are
// expected to post resolution through frame.Loop.
type Future struct {
	settled bool
	err     error
	waiters []func(error)
}

func NewFuture() *Future {
	return &Future{}
}

// Resolved returns already settled future.
func Resolved(err error) *Future {
	return &Future{settled: true, err: err}
}

// Resolve settles future and notifies waiters in registration order. Only the
// first call has any effect, it reports whether it was the one.
func (f *Future) Resolve(err error) bool {
	if f.settled {
		return false
	}
	f.settled, f.err = true, err
	waiters := f.waiters
	f.waiters = nil
	for _, w := range waiters {
		w(err)
	}
	return true
}

func (f *Future) Settled() bool {
	return f.settled
}

func (f *Future) Err() error {
	return f.err
}

// Then registers fn to be called with result. If future is already settled fn
// is called immediately.
func (f *Future) Then(fn func(error)) {
	if f.settled {
		fn(f.err)
		return
	}
	f.waiters = append(f.waiters, fn)
}
