package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/zerowaste/connect-share/internal/core/domain"
)

// LogSink writes events to the structured log. It is always enabled.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Send(_ context.Context, e domain.DonationEvent) error {
	s.log.Info().
		Str("event", string(e.Type)).
		Str("donation_id", e.DonationID).
		Str("actor_id", e.Actor.ID).
		Str("actor_role", string(e.Actor.Role)).
		Time("occurred_at", e.OccurredAt).
		Msg(Message(e))
	return nil
}
