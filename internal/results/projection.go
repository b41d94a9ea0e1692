// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package results holds the current AlgorithmResult and the busy flag.
//
// Every operation that may replace the result (dispatch, genre filter,
// catalog load) takes a Ticket first. Tickets are stamped with a
// monotonically increasing generation at issue time; a completion is applied
// only if no newer ticket has applied already, so a slow response can never
// overwrite a faster, more recent one. Busy is true while any ticket is open.
package results

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/metrics"
	"github.com/tomtom215/cinegraph/internal/models"
)

// ResultListener is called after a result is applied.
type ResultListener func(r *models.AlgorithmResult)

// BusyListener is called when the busy flag flips.
type BusyListener func(busy bool)

// Projection is the single current result plus in-flight bookkeeping.
type Projection struct {
	current  atomic.Pointer[models.AlgorithmResult]
	inFlight atomic.Int64
	issued   atomic.Uint64

	mu             sync.Mutex
	applied        uint64
	open           int64
	resultListener []ResultListener
	busyListener   []BusyListener

	notifyMu sync.Mutex
	now      func() time.Time
}

// New creates an empty projection.
func New() *Projection {
	return &Projection{now: time.Now}
}

// OnResult registers a listener for applied results.
func (p *Projection) OnResult(l ResultListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resultListener = append(p.resultListener, l)
}

// OnBusy registers a listener for busy transitions.
func (p *Projection) OnBusy(l BusyListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busyListener = append(p.busyListener, l)
}

// Current returns the current result, or nil before anything was applied.
// The returned value must be treated as read-only.
func (p *Projection) Current() *models.AlgorithmResult {
	return p.current.Load()
}

// Busy reports whether any ticket is still open.
func (p *Projection) Busy() bool {
	return p.inFlight.Load() > 0
}

// InFlight returns the number of open tickets.
func (p *Projection) InFlight() int64 {
	return p.inFlight.Load()
}

// Begin opens a ticket and marks the projection busy.
func (p *Projection) Begin() *Ticket {
	t := &Ticket{p: p, gen: p.issued.Add(1)}

	p.mu.Lock()
	p.open++
	p.inFlight.Store(p.open)
	metrics.InFlight.Set(float64(p.open))
	flipped := p.open == 1
	listeners := p.busyListener
	p.notifyMu.Lock()
	p.mu.Unlock()
	defer p.notifyMu.Unlock()

	if flipped {
		for _, l := range listeners {
			l(true)
		}
	}
	return t
}

func (p *Projection) apply(gen uint64, r *models.AlgorithmResult) bool {
	p.mu.Lock()
	if gen <= p.applied {
		p.mu.Unlock()
		metrics.StaleResultsDiscarded.Inc()
		logging.Debug().
			Uint64("generation", gen).
			Str("algorithm", string(r.Algorithm)).
			Msg("Discarding superseded result")
		return false
	}
	p.applied = gen
	r.Generation = gen
	if r.CompletedAt.IsZero() {
		r.CompletedAt = p.now()
	}
	if r.Movies == nil {
		r.Movies = []models.Movie{}
	}
	p.current.Store(r)
	listeners := p.resultListener
	p.notifyMu.Lock()
	p.mu.Unlock()
	defer p.notifyMu.Unlock()

	metrics.ResultMovies.Observe(float64(len(r.Movies)))
	for _, l := range listeners {
		l(r)
	}
	return true
}

func (p *Projection) done() {
	p.mu.Lock()
	p.open--
	p.inFlight.Store(p.open)
	metrics.InFlight.Set(float64(p.open))
	flipped := p.open == 0
	listeners := p.busyListener
	p.notifyMu.Lock()
	p.mu.Unlock()
	defer p.notifyMu.Unlock()

	if flipped {
		for _, l := range listeners {
			l(false)
		}
	}
}

// Ticket is one pending replacement of the current result.
type Ticket struct {
	p      *Projection
	gen    uint64
	closed atomic.Bool
}

// Generation returns the stamp assigned at issue time.
func (t *Ticket) Generation() uint64 {
	return t.gen
}

// Apply replaces the current result with r unless a newer ticket already
// applied. It reports whether r became current.
func (t *Ticket) Apply(r *models.AlgorithmResult) bool {
	if r == nil {
		return false
	}
	return t.p.apply(t.gen, r)
}

// Done closes the ticket. Calling it more than once is harmless.
func (t *Ticket) Done() {
	if t.closed.CompareAndSwap(false, true) {
		t.p.done()
	}
}
