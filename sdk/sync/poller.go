package sync

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Mode selects the refresh driver.
type Mode string

const (
	// ModePoll drives refreshes off fixed tickers.
	ModePoll Mode = "poll"
	// ModePush drives refreshes off server wakeups (websocket), with
	// polling retained only for presence.
	ModePush Mode = "push"
)

// Strategy is the refresh cadence configuration.
type Strategy struct {
	Mode             Mode
	MessageInterval  time.Duration
	PresenceInterval time.Duration
}

func DefaultStrategy() Strategy {
	return Strategy{
		Mode:             ModePoll,
		MessageInterval:  2 * time.Second,
		PresenceInterval: 5 * time.Second,
	}
}

// Poller drives a Controller's Refresh on the configured cadence from
// a single goroutine. In push mode the message ticker is disabled and
// refreshes arrive through Wake instead; the same Refresh path runs
// either way, so switching modes changes latency, not semantics.
type Poller struct {
	Controller *Controller
	Strategy   Strategy

	// Presence, if set, runs every PresenceInterval (online users pane).
	Presence func(ctx context.Context)

	// Wake triggers an immediate message refresh; push listeners and
	// send confirmations feed it. Buffered so signalers never block.
	Wake chan struct{}
}

func NewPoller(ctrl *Controller, strategy Strategy) *Poller {
	if strategy.MessageInterval <= 0 {
		strategy.MessageInterval = 2 * time.Second
	}
	if strategy.PresenceInterval <= 0 {
		strategy.PresenceInterval = 5 * time.Second
	}
	return &Poller{
		Controller: ctrl,
		Strategy:   strategy,
		Wake:       make(chan struct{}, 1),
	}
}

// Run blocks until ctx is done. Fetch errors are logged and the loop
// keeps going; a failed poll just means the next tick tries again.
func (p *Poller) Run(ctx context.Context) {
	// immediate first fill so the pane isn't empty for a full interval
	p.refresh(ctx)
	if p.Presence != nil {
		p.Presence(ctx)
	}

	var messageTick <-chan time.Time
	if p.Strategy.Mode != ModePush {
		t := time.NewTicker(p.Strategy.MessageInterval)
		defer t.Stop()
		messageTick = t.C
	}

	presenceTicker := time.NewTicker(p.Strategy.PresenceInterval)
	defer presenceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-messageTick:
			p.refresh(ctx)
		case <-p.Wake:
			p.refresh(ctx)
		case <-presenceTicker.C:
			if p.Presence != nil {
				p.Presence(ctx)
			}
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	if err := p.Controller.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("sync: refresh failed")
	}
}
