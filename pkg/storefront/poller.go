package storefront

import (
	"context"
	"time"

	"github.com/mallow/storefront/pkg/logger"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollRetries  = 5
)

// Outcome is the terminal state of a payment status poll
type Outcome int

const (
	OutcomeError Outcome = iota
	OutcomeSuccess
	OutcomeExpired
	// OutcomePending means the retry budget ran out without a verdict; the
	// payment may still complete asynchronously.
	OutcomePending
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeExpired:
		return "expired"
	case OutcomePending:
		return "pending"
	default:
		return "error"
	}
}

// StatusSource reads payment session state
type StatusSource interface {
	CheckoutStatus(ctx context.Context, sessionID string) (PaymentStatus, error)
}

// CartResetter is the part of the shared cart a confirmed payment touches
type CartResetter interface {
	ClearCart()
	RefreshCart(ctx context.Context) (bool, error)
}

// Sleeper waits d or until ctx ends
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// PaymentPoller determines the outcome of a payment session after the user
// returns from the provider. It makes at most 1 + retries status queries at
// a fixed interval.
type PaymentPoller struct {
	source   StatusSource
	cart     CartResetter
	interval time.Duration
	retries  int
	sleep    Sleeper
	log      *logger.Logger
}

type PollerOption func(*PaymentPoller)

func WithPollInterval(d time.Duration) PollerOption {
	return func(p *PaymentPoller) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithPollRetries(n int) PollerOption {
	return func(p *PaymentPoller) {
		if n >= 0 {
			p.retries = n
		}
	}
}

func WithSleeper(s Sleeper) PollerOption {
	return func(p *PaymentPoller) {
		if s != nil {
			p.sleep = s
		}
	}
}

func NewPaymentPoller(source StatusSource, cart CartResetter, opts ...PollerOption) *PaymentPoller {
	p := &PaymentPoller{
		source:   source,
		cart:     cart,
		interval: DefaultPollInterval,
		retries:  DefaultPollRetries,
		sleep:    sleepContext,
		log:      logger.Get().Component("payment_poller"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll runs the bounded retry loop for sessionID. An empty session id ends
// in OutcomeError without any query. Cancelling ctx stops further attempts.
func (p *PaymentPoller) Poll(ctx context.Context, sessionID string) Outcome {
	if sessionID == "" {
		p.log.Warn("Returned from payment without session id", nil)
		return OutcomeError
	}

	for attempt := 0; ; attempt++ {
		status, err := p.source.CheckoutStatus(ctx, sessionID)
		if err == nil {
			switch {
			case status.PaymentStatus == PaymentStatusPaid:
				p.log.Info("Payment confirmed", map[string]interface{}{
					"session_id": sessionID,
					"attempt":    attempt,
				})
				if p.cart != nil {
					p.cart.ClearCart()
					if _, err := p.cart.RefreshCart(ctx); err != nil {
						p.log.Warn("Failed to refresh cart after payment", map[string]interface{}{
							"error": err.Error(),
						})
					}
				}
				return OutcomeSuccess
			case status.Status == SessionStatusExpired:
				p.log.Info("Payment session expired", map[string]interface{}{
					"session_id": sessionID,
				})
				return OutcomeExpired
			}
		} else {
			p.log.Warn("Payment status check failed", map[string]interface{}{
				"session_id": sessionID,
				"attempt":    attempt,
				"error":      err.Error(),
			})
		}

		if attempt >= p.retries {
			if err != nil {
				return OutcomeError
			}
			p.log.Info("Payment still unconfirmed after retries", map[string]interface{}{
				"session_id": sessionID,
				"attempts":   attempt + 1,
			})
			return OutcomePending
		}

		if err := p.sleep(ctx, p.interval); err != nil {
			p.log.Debug("Payment polling cancelled", map[string]interface{}{
				"session_id": sessionID,
			})
			return OutcomeError
		}
	}
}
