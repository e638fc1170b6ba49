package client

import (
	"context"
	"errors"
	"time"

	"veriflow/models"
)

// Poller defaults. The interval matches the registration form's original
// cadence; the max wait caps otherwise-unbounded polling on abandoned
// sessions.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultMaxWait      = 10 * time.Minute
)

// ErrPollTimeout is returned when no terminal status is observed within the
// poller's maximum wait.
var ErrPollTimeout = errors.New("verification polling timed out")

// Poller repeatedly queries the status endpoint until a terminal status is
// observed. Polls are issued strictly one at a time: a slow request causes
// ticks to be dropped rather than requests to stack.
type Poller struct {
	Client   *Client
	Interval time.Duration
	MaxWait  time.Duration
}

// NewPoller creates a poller with default timing.
func NewPoller(c *Client) *Poller {
	return &Poller{
		Client:   c,
		Interval: DefaultPollInterval,
		MaxWait:  DefaultMaxWait,
	}
}

// Wait polls until a terminal status is observed and returns it. It stops
// immediately when ctx is cancelled (user navigated away) and returns
// ErrPollTimeout after MaxWait. A failed poll or a not-yet-found record is
// not fatal; the next tick retries.
func (p *Poller) Wait(ctx context.Context, email string) (models.VerificationStatus, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	if p.MaxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, time.Now().Add(p.MaxWait))
		defer cancel()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, found, err := p.Client.GetStatus(ctx, email)
		if err == nil && found && status.IsTerminal() {
			return status, nil
		}
		// Transient errors and "not found yet" both fall through to the
		// next tick.

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", ErrPollTimeout
			}
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
