package notification

import (
	"context"

	"homework-notifier/internal/logging"
)

// Provider delivers a text message over one transport.
type Provider interface {
	Name() string
	Send(ctx context.Context, text string) error
}

// Notifier dispatches text to its providers. Provider failures are logged and
// never returned to the caller.
type Notifier struct {
	primary   Provider
	secondary []Provider
	logger    *logging.Logger
}

// New constructs a Notifier. Delivery is judged by primary alone; secondary
// providers receive a best-effort copy.
func New(logger *logging.Logger, primary Provider, secondary ...Provider) *Notifier {
	return &Notifier{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// Notify sends text and reports whether the primary provider delivered it.
func (n *Notifier) Notify(ctx context.Context, text string) bool {
	delivered := n.dispatch(ctx, n.primary, text)
	for _, p := range n.secondary {
		n.dispatch(ctx, p, text)
	}
	return delivered
}

func (n *Notifier) dispatch(ctx context.Context, p Provider, text string) bool {
	if err := p.Send(ctx, text); err != nil {
		n.logger.Errorf("Message not sent via %s: %v", p.Name(), err)
		return false
	}
	n.logger.Debugf("Message sent via %s", p.Name())
	return true
}
