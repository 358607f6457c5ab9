package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flowershop/internal/metrics"
	"flowershop/internal/model"
	"flowershop/internal/notify"
	"flowershop/internal/validate"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// relayService implements RelayService.
type relayService struct {
	channels []notify.Channel
	logger   zerolog.Logger
}

// NewRelayService creates a relay over the given channels.
func NewRelayService(channels []notify.Channel, logger zerolog.Logger) RelayService {
	return &relayService{
		channels: channels,
		logger:   logger.With().Str("service", "relay").Logger(),
	}
}

// Submit validates s, checks every configured channel has its
// credentials, then sends to all applicable channels concurrently and
// waits for all of them. Any failed channel fails the submission; the
// other channels are not retried or rolled back.
func (s *relayService) Submit(ctx context.Context, sub model.Submission) error {
	kind := string(sub.Kind)

	if err := validate.Submission(&sub); err != nil {
		metrics.RecordSubmission(kind, "invalid")
		s.logger.Warn().Str("kind", kind).Err(err).Msg("submission failed validation")
		return err
	}

	targets, err := s.targets(sub)
	if err != nil {
		metrics.RecordSubmission(kind, "not_configured")
		s.logger.Error().Err(err).Msg("relay is not configured")
		return err
	}

	// A submit runs to completion even if the client goes away.
	ctx = context.WithoutCancel(ctx)

	errs := make([]error, len(targets))
	var g errgroup.Group
	for i, ch := range targets {
		g.Go(func() error {
			start := time.Now()
			err := ch.Send(ctx, sub)
			metrics.RecordDispatch(ch.Name(), err)

			if err != nil {
				s.logger.Error().
					Err(err).
					Str("channel", ch.Name()).
					Dur("duration", time.Since(start)).
					Msg("outbound channel failed")
				errs[i] = &model.SendError{Channel: ch.Name(), Err: err}
				return errs[i]
			}

			s.logger.Debug().
				Str("channel", ch.Name()).
				Dur("duration", time.Since(start)).
				Msg("outbound channel delivered")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.RecordSubmission(kind, "send_failed")
		return errors.Join(errs...)
	}

	metrics.RecordSubmission(kind, "success")
	s.logger.Info().
		Str("kind", kind).
		Str("catalog_id", sub.CatalogID).
		Int("channels", len(targets)).
		Msg("submission relayed")

	return nil
}

// targets returns the channels the submission goes to, or
// ErrRelayNotConfigured when any configured channel lacks credentials or
// none applies.
func (s *relayService) targets(sub model.Submission) ([]notify.Channel, error) {
	if len(s.channels) == 0 {
		return nil, model.ErrRelayNotConfigured
	}

	for _, ch := range s.channels {
		if err := ch.Ready(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", model.ErrRelayNotConfigured, ch.Name(), err)
		}
	}

	targets := make([]notify.Channel, 0, len(s.channels))
	for _, ch := range s.channels {
		if ch.Applies(sub) {
			targets = append(targets, ch)
		} else {
			s.logger.Debug().Str("channel", ch.Name()).Msg("channel does not apply to submission")
		}
	}

	if len(targets) == 0 {
		return nil, model.ErrRelayNotConfigured
	}

	return targets, nil
}
