package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/decred/slog"

	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/api"
)

const (
	basePollInterval  = 3 * time.Second
	decadePollStep    = 500 * time.Millisecond
	activePollCeiling = 2 * time.Second
	recalibrateEvery  = 15 * time.Second
)

// PollInterval computes the cadence for the next pass. Longer games poll
// more slowly, but latency-sensitive phases are clamped to a short ceiling
// so tallies stay responsive.
func PollInterval(st State) time.Duration {
	base := basePollInterval + time.Duration(st.Decade)*decadePollStep
	switch {
	case st.Phase == PhaseVoting || st.Phase == PhaseWaitingOnGroup:
		if base > activePollCeiling {
			return activePollCeiling
		}
		return base
	case st.Phase == PhaseChooseGroup && st.IsLeader:
		return basePollInterval
	}
	return base
}

// Poller drives the reconciler on a cooperative timer. Pass failures are
// logged at the poll boundary and otherwise swallowed: transient
// connectivity loss must not flap the UI, and the next tick retries
// naturally.
type Poller struct {
	rec *Reconciler
	log slog.Logger
}

func NewPoller(rec *Reconciler, log slog.Logger) *Poller {
	if log == nil {
		log = slog.Disabled
	}
	return &Poller{rec: rec, log: log}
}

// Run polls until ctx is cancelled. The interval tracks the current phase
// and decade, and is additionally recalibrated every 15s so a phase change
// observed by a pass shortens the cadence without waiting out a long timer.
func (p *Poller) Run(ctx context.Context) {
	p.tick(ctx)

	interval := PollInterval(p.rec.Snapshot())
	timer := time.NewTimer(interval)
	defer timer.Stop()
	recal := time.NewTicker(recalibrateEvery)
	defer recal.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			p.tick(ctx)
			interval = PollInterval(p.rec.Snapshot())
			timer.Reset(interval)
		case <-recal.C:
			if next := PollInterval(p.rec.Snapshot()); next != interval {
				p.log.Debugf("poll interval recalibrated %s -> %s", interval, next)
				interval = next
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(interval)
			}
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	err := p.rec.Tick(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	var tErr *api.TransportError
	if errors.As(err, &tErr) {
		p.log.Warnf("poll skipped, connectivity: %v", err)
		return
	}
	p.log.Errorf("reconciliation pass failed: %v", err)
}
