package timeline

import (
	"io"
	"log/slog"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/interaction"
)

// Observer receives gesture telemetry from an Orchestrator.
type Observer interface {
	ObserveTransition(from, to interaction.State, itemID string)
	ObserveCommit(intents []domain.ChangeIntent, batch bool)
	ObserveRejected(op, itemID string, err error)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveTransition(interaction.State, interaction.State, string) {}
func (NoopObserver) ObserveCommit([]domain.ChangeIntent, bool)                     {}
func (NoopObserver) ObserveRejected(string, string, error)                         {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes gesture events to w. A nil writer yields a no-op.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
}

func (o *logObserver) ObserveTransition(from, to interaction.State, itemID string) {
	o.logger.Debug("gesture_transition", "from", string(from), "to", string(to), "item", itemID)
}

func (o *logObserver) ObserveCommit(intents []domain.ChangeIntent, batch bool) {
	ids := make([]string, 0, len(intents))
	for _, in := range intents {
		ids = append(ids, in.ItemID+":"+string(in.Kind))
	}
	o.logger.Info("gesture_commit", "intents", len(intents), "batch", batch, "changes", ids)
}

func (o *logObserver) ObserveRejected(op, itemID string, err error) {
	attrs := []any{"op", op, "item", itemID}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	o.logger.Warn("gesture_rejected", attrs...)
}
