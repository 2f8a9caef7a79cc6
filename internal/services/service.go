package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"homework-notifier/internal/logging"
	"homework-notifier/internal/models"
	"homework-notifier/internal/notification"
	"homework-notifier/internal/practicum"
)

// Fetcher returns the raw API answer for homeworks changed since a Unix time.
type Fetcher interface {
	Fetch(ctx context.Context, since int64) (json.RawMessage, error)
}

// Notifier delivers text; it reports delivery instead of failing.
type Notifier interface {
	Notify(ctx context.Context, text string) bool
}

// Service polls the review API and reports status changes and failures.
// All fields below are owned by the polling goroutine.
type Service struct {
	fetcher     Fetcher
	notifier    Notifier
	logger      *logging.Logger
	retryPeriod time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup

	since       int64
	lastStatus  *models.Homework
	lastFailure string
}

// New constructs a Service whose poll window starts at now.
func New(fetcher Fetcher, notifier Notifier, logger *logging.Logger, retryPeriod time.Duration, now time.Time) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		fetcher:     fetcher,
		notifier:    notifier,
		logger:      logger,
		retryPeriod: retryPeriod,
		ctx:         ctx,
		cancel:      cancel,
		since:       now.Unix(),
	}
}

// Since returns the current poll window start.
func (s *Service) Since() int64 {
	return s.since
}

// Start launches the poll loop in its own goroutine.
func (s *Service) Start(wg *sync.WaitGroup) {
	s.wg = wg
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run(s.ctx)
		s.logger.Infof("Poller stopped")
	}()
}

// Stop cancels the loop; an in-flight request is abandoned.
func (s *Service) Stop() {
	s.cancel()
}

// Run polls until ctx is done, waiting retryPeriod after every iteration.
func (s *Service) Run(ctx context.Context) {
	s.logger.Infof("Poller started, retry period %s", s.retryPeriod)
	for {
		s.Poll(ctx)

		timer := time.NewTimer(s.retryPeriod)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// Poll runs one iteration. Errors never escape: they are logged and reported
// through the notifier unless the same failure text was the last message dispatched.
func (s *Service) Poll(ctx context.Context) {
	log := s.logger.WithRequestID(uuid.NewString())
	err := s.poll(ctx, log)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		log.Debugf("Iteration interrupted: %v", err)
	default:
		s.reportFailure(ctx, log, err)
	}
}

func (s *Service) poll(ctx context.Context, log *logrus.Entry) error {
	raw, err := s.fetcher.Fetch(ctx, s.since)
	if err != nil {
		return err
	}

	log.Debug("Checking API response")
	resp, err := practicum.CheckResponse(raw)
	if err != nil {
		return err
	}
	if resp.CurrentDate > s.since {
		s.since = resp.CurrentDate
	}

	latest, ok := resp.Latest()
	if !ok {
		log.Debug("No new homework statuses in response")
		return nil
	}

	hw, message, err := notification.ParseStatus(latest)
	if err != nil {
		return err
	}
	if s.lastStatus != nil && *s.lastStatus == hw {
		log.Debugf("Status of %q is still %s, not notifying", hw.Name, hw.Status)
		return nil
	}

	if s.notifier.Notify(ctx, message) {
		s.lastStatus = &hw
		// the status is now the last dispatched message
		s.lastFailure = ""
		log.Infof("Notified status %s for %q", hw.Status, hw.Name)
	}
	return nil
}

func (s *Service) reportFailure(ctx context.Context, log *logrus.Entry, err error) {
	message := notification.FailureMessage(err)
	log.Error(message)
	if message == s.lastFailure {
		log.Debug("Same failure already reported, not notifying")
		return
	}
	if s.notifier.Notify(ctx, message) {
		s.lastFailure = message
	}
}
