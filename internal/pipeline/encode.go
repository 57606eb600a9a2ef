package pipeline

import (
	"context"
	"log/slog"

	"github.com/prompthist/prompthistd/internal/history"
)

// Conditioning is the opaque result of the host's text-encoding step. The
// history service never looks inside it.
type Conditioning any

// Encoder is the host pipeline's text-encoding step.
type Encoder interface {
	Encode(ctx context.Context, text string) (Conditioning, error)
}

// HistoryEncode wraps an Encoder so that every encoded prompt is recorded
// into a named history first. The image and metadata are attached later by
// the front-end once rendering completes; recording here is what lets that
// second call merge instead of inserting a duplicate.
type HistoryEncode struct {
	encoder Encoder
	service *history.Service
	logger  *slog.Logger
}

// NewHistoryEncode creates the recording encoder.
func NewHistoryEncode(log *slog.Logger, encoder Encoder, service *history.Service) *HistoryEncode {
	if log == nil {
		log = slog.Default()
	}
	return &HistoryEncode{
		encoder: encoder,
		service: service,
		logger:  log.With(slog.String("node", "history_encode")),
	}
}

// Encode records text into the named history and delegates to the wrapped
// encoder. Recording failures never block encoding.
func (n *HistoryEncode) Encode(ctx context.Context, historyName, text string) (Conditioning, error) {
	n.logger.Info("encode called",
		slog.String("history", historyName), slog.Int("prompt_len", len(text)))

	n.service.SavePrompt(ctx, history.SaveRequest{
		HistoryName: historyName,
		Prompt:      text,
	})

	return n.encoder.Encode(ctx, text)
}
