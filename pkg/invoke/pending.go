package invoke

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Pending is the normalized asynchronous handle returned by
// ExecuteAsync: a value will eventually be available, or nothing will
// be, or the invocation failed with an error. A Pending belongs to a
// single invocation and is resolved exactly once.
//
// A Pending is created in one of three modes: already resolved (for
// synchronous shapes), delegating to a Future (for standard futures,
// where the future's own completion channel is the bridge), or
// completer-driven (for custom awaitables, resolved by a registered
// continuation).
type Pending struct {
	id uuid.UUID

	// fut is set in delegating mode; all other fields except void are
	// unused then.
	fut Future

	// void marks a completion-only result: the resolved value is
	// always reported as nil.
	void bool

	done  chan struct{}
	once  sync.Once
	value any
	err   error
}

// newPending creates an unresolved completer-driven Pending.
func newPending() *Pending {
	return &Pending{id: uuid.New(), done: make(chan struct{})}
}

// resolvedPending creates a Pending already resolved to v.
func resolvedPending(v any) *Pending {
	p := newPending()
	p.resolve(v)
	return p
}

// failedPending creates a Pending already resolved to err.
func failedPending(err error) *Pending {
	p := newPending()
	p.reject(err)
	return p
}

// futurePending creates a Pending that delegates to f. When void is
// true the future's value is discarded and the Pending reports no
// value.
func futurePending(f Future, void bool) *Pending {
	return &Pending{id: uuid.New(), fut: f, void: void}
}

// resolve completes the Pending successfully with v. Later calls are
// ignored.
func (p *Pending) resolve(v any) {
	p.once.Do(func() {
		p.value = v
		close(p.done)
	})
}

// reject completes the Pending with err. Later calls are ignored.
func (p *Pending) reject(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// ID returns the invocation correlation identifier of this Pending.
func (p *Pending) ID() uuid.UUID { return p.id }

// Done returns a channel that is closed when the Pending is resolved.
func (p *Pending) Done() <-chan struct{} {
	if p.fut != nil {
		return p.fut.Done()
	}
	return p.done
}

// Await blocks until the Pending is resolved or ctx is cancelled. A
// completion-only resolution reports (nil, nil). Errors raised by the
// invoked method are returned unchanged.
func (p *Pending) Await(ctx context.Context) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-p.Done():
		return p.outcome()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryGet returns the outcome if the Pending is already resolved. When
// ok==false the invocation is still in flight and v and err are
// meaningless.
func (p *Pending) TryGet() (v any, err error, ok bool) {
	select {
	case <-p.Done():
		v, err = p.outcome()
		return v, err, true
	default:
		return nil, nil, false
	}
}

// IsResolved reports whether the Pending has been resolved.
func (p *Pending) IsResolved() bool {
	select {
	case <-p.Done():
		return true
	default:
		return false
	}
}

// outcome reads the final result. Only valid after Done is closed.
func (p *Pending) outcome() (any, error) {
	if p.fut != nil {
		v, err := p.fut.Result()
		if err != nil {
			return nil, err
		}
		if p.void {
			return nil, nil
		}
		return normalizeValue(v), nil
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.void {
		return nil, nil
	}
	return p.value, nil
}

// normalizeValue maps the empty-struct completion marker to nil so that
// completion-only futures report "no value" rather than struct{}{}.
func normalizeValue(v any) any {
	if v == nil {
		return nil
	}
	if reflect.TypeOf(v) == voidType {
		return nil
	}
	return v
}
