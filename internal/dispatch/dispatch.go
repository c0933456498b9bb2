// Package dispatch fronts several independent books. Each book gets one
// lane: a buffered channel drained by a single goroutine, so submissions
// to a book are applied in exactly the order they were enqueued and the
// books need no locks. Books share no state with each other.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"skoll/internal/book"
)

const laneBuffer = 256

var (
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrNotRunning        = errors.New("dispatcher not running")
)

// op is one serialized book operation.
type op struct {
	cancel bool
	id     string
	order  book.Order
}

type Dispatcher struct {
	books map[string]*book.Book
	lanes map[string]chan op
	t     *tomb.Tomb
}

// New builds a dispatcher with one book per instrument name, all sharing
// the same price range and index back-end.
func New(maxPrice int, backend book.Backend, instruments ...string) (*Dispatcher, error) {
	d := &Dispatcher{
		books: make(map[string]*book.Book, len(instruments)),
		lanes: make(map[string]chan op, len(instruments)),
	}
	for _, name := range instruments {
		b, err := book.New(name, maxPrice, backend)
		if err != nil {
			return nil, fmt.Errorf("book %s: %w", name, err)
		}
		d.books[name] = b
		d.lanes[name] = make(chan op, laneBuffer)
	}
	return d, nil
}

// Run starts one consumer per book and returns. The consumers live until
// the context is cancelled or Stop is called.
func (d *Dispatcher) Run(ctx context.Context) {
	d.t, _ = tomb.WithContext(ctx)
	for name, lane := range d.lanes {
		name, lane := name, lane
		d.t.Go(func() error {
			return d.consume(d.books[name], lane)
		})
	}
	log.Info().Int("books", len(d.books)).Msg("dispatcher running")
}

// consume is a book's lane goroutine: the sole mutator of that book. On
// shutdown it drains whatever is already enqueued before exiting, so a
// Stop after the last enqueue loses nothing.
func (d *Dispatcher) consume(b *book.Book, lane chan op) error {
	for {
		select {
		case <-d.t.Dying():
			for {
				select {
				case o := <-lane:
					apply(b, o)
				default:
					return nil
				}
			}
		case o := <-lane:
			apply(b, o)
		}
	}
}

// apply runs one operation. Results are logged, not returned; the lane is
// fire-and-forget.
func apply(b *book.Book, o op) {
	var err error
	if o.cancel {
		err = b.Cancel(o.id)
	} else {
		err = b.Add(o.order)
	}
	if err != nil {
		log.Error().Err(err).Str("instrument", b.Name()).Msg("operation refused")
	}
}

// Submit enqueues a limit order for the instrument's book.
func (d *Dispatcher) Submit(instrument string, order book.Order) error {
	return d.enqueue(instrument, op{order: order})
}

// Cancel enqueues a cancellation for the instrument's book.
func (d *Dispatcher) Cancel(instrument, id string) error {
	return d.enqueue(instrument, op{cancel: true, id: id})
}

func (d *Dispatcher) enqueue(instrument string, o op) error {
	if d.t == nil {
		return ErrNotRunning
	}
	lane, ok := d.lanes[instrument]
	if !ok {
		return fmt.Errorf("%s: %w", instrument, ErrUnknownInstrument)
	}
	select {
	case <-d.t.Dying():
		return ErrNotRunning
	default:
	}
	select {
	case <-d.t.Dying():
		return ErrNotRunning
	case lane <- o:
		return nil
	}
}

// Book returns the instrument's book. Safe to inspect once Stop has
// returned; while the dispatcher runs, the lane goroutine owns it.
func (d *Dispatcher) Book(instrument string) (*book.Book, bool) {
	b, ok := d.books[instrument]
	return b, ok
}

// Stop kills the consumers and waits for them to finish draining.
func (d *Dispatcher) Stop() error {
	if d.t == nil {
		return nil
	}
	d.t.Kill(nil)
	return d.t.Wait()
}
