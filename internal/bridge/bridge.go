// Package bridge drives asynchronous work to completion from synchronous
// call sites on a single adapter-owned run loop.
package bridge

import (
	"sync"

	bridgeerrors "github.com/lambdabridge/lambdabridge/pkg/errors"
)

// Bridge owns one long-lived run-loop goroutine. Every submitted task runs
// on that goroutine, one at a time, in submission order. A Bridge is created
// once per adapter lifetime and reused for every invocation, which forces
// strictly sequential handling.
//
// The bridge has no timeout of its own; if a task never completes the caller
// blocks until the host's external timeout policy kills the invocation.
type Bridge struct {
	tasks chan func()
	quit  chan struct{}
	once  sync.Once
}

// New creates a Bridge and starts its run loop.
func New() *Bridge {
	b := &Bridge{
		tasks: make(chan func()),
		quit:  make(chan struct{}),
	}
	go b.loop()
	return b
}

func (b *Bridge) loop() {
	for {
		select {
		case fn := <-b.tasks:
			fn()
		case <-b.quit:
			return
		}
	}
}

// Run executes fn on the run loop and blocks until it returns. Tasks are
// never abandoned mid-flight; once started, fn runs to completion or
// failure. Run after Close fails with a BRIDGE_CLOSED error.
func (b *Bridge) Run(fn func() error) error {
	done := make(chan error, 1)
	select {
	case b.tasks <- func() { done <- fn() }:
		return <-done
	case <-b.quit:
		return bridgeerrors.NewError(bridgeerrors.ErrCodeBridgeClosed,
			"run loop is closed").WithComponent("bridge")
	}
}

// RunResult executes fn on b's run loop and blocks until it returns,
// propagating the result value alongside the error.
func RunResult[T any](b *Bridge, fn func() (T, error)) (T, error) {
	var out T
	err := b.Run(func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}

// Close stops the run loop. Tasks already started finish; tasks submitted
// afterwards fail with a BRIDGE_CLOSED error. Close is idempotent.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.quit) })
}
