package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"time"
)

// UseCaseEvent describes one finished service call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
}

// Rejected reports whether the call failed on a timeline rule (cycle,
// open prerequisite, bad change) rather than on storage.
func (e UseCaseEvent) Rejected() bool {
	return errors.Is(e.Err, ErrCyclicDependency) ||
		errors.Is(e.Err, ErrUnfinishedPrerequisite) ||
		errors.Is(e.Err, ErrInvalidChange)
}

// UseCaseObserver is notified after every mutating service call.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver discards events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type slogUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs each call as one slog text line on w. Rule
// rejections log at warn, storage failures at error. A nil w disables logging.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &slogUseCaseObserver{logger: slog.New(h).With("component", "service")}
}

func (o *slogUseCaseObserver) ObserveUseCase(ctx context.Context, ev UseCaseEvent) {
	attrs := []slog.Attr{
		slog.String("use_case", ev.Name),
		slog.Int64("duration_ms", ev.Duration.Milliseconds()),
		slog.Bool("success", ev.Success),
	}
	keys := make([]string, 0, len(ev.Fields))
	for k := range ev.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, ev.Fields[k]))
	}

	level := slog.LevelInfo
	switch {
	case ev.Rejected():
		level = slog.LevelWarn
	case ev.Err != nil:
		level = slog.LevelError
	}
	if ev.Err != nil {
		attrs = append(attrs, slog.String("error", ev.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "timeline_use_case", attrs...)
}

type fanoutObserver []UseCaseObserver

func (f fanoutObserver) ObserveUseCase(ctx context.Context, ev UseCaseEvent) {
	for _, o := range f {
		o.ObserveUseCase(ctx, ev)
	}
}

// combineObservers drops nil observers; none left means no-op.
func combineObservers(observers []UseCaseObserver) UseCaseObserver {
	var live fanoutObserver
	for _, o := range observers {
		if o != nil {
			live = append(live, o)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	}
	return live
}

// observe reports a finished use case. Defer it with a pointer to the
// named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, err *error, fields map[string]any) {
	var e error
	if err != nil {
		e = *err
	}
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   e == nil,
		Err:       e,
		Fields:    fields,
	})
}
