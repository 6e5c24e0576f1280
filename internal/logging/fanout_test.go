package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

// capture records everything at or above its level and can fail on demand.
type capture struct {
	level    slog.Level
	messages []string
	attrs    []slog.Attr
	err      error
}

func (c *capture) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level
}

func (c *capture) Handle(_ context.Context, record slog.Record) error {
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, record.Message)
	return nil
}

func (c *capture) WithAttrs(attrs []slog.Attr) slog.Handler {
	c.attrs = append(c.attrs, attrs...)
	return c
}

func (c *capture) WithGroup(string) slog.Handler { return c }

func TestFanout(t *testing.T) {
	ctx := context.Background()
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)

	t.Run("delivers to every enabled handler", func(t *testing.T) {
		a := &capture{level: slog.LevelInfo}
		b := &capture{level: slog.LevelInfo}
		f := fanout{a, b}

		if err := f.Handle(ctx, record); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(a.messages) != 1 || len(b.messages) != 1 {
			t.Errorf("expected both handlers to receive the record, got %d and %d", len(a.messages), len(b.messages))
		}
	})

	t.Run("skips handlers below their level", func(t *testing.T) {
		quiet := &capture{level: slog.LevelError}
		loud := &capture{level: slog.LevelInfo}
		f := fanout{quiet, loud}

		if err := f.Handle(ctx, record); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(quiet.messages) != 0 {
			t.Errorf("ERROR-level handler received an INFO record")
		}
		if len(loud.messages) != 1 {
			t.Errorf("INFO-level handler missed the record")
		}
	})

	t.Run("one failing sink does not stop the rest", func(t *testing.T) {
		sinkErr := errors.New("db unavailable")
		broken := &capture{level: slog.LevelInfo, err: sinkErr}
		healthy := &capture{level: slog.LevelInfo}
		f := fanout{broken, healthy}

		err := f.Handle(ctx, record)
		if !errors.Is(err, sinkErr) {
			t.Errorf("expected joined error to contain sink error, got %v", err)
		}
		if len(healthy.messages) != 1 {
			t.Errorf("healthy handler should still receive the record")
		}
	})

	t.Run("enabled when any handler is enabled", func(t *testing.T) {
		f := fanout{&capture{level: slog.LevelError}, &capture{level: slog.LevelInfo}}
		if !f.Enabled(ctx, slog.LevelInfo) {
			t.Error("expected fanout to be enabled at INFO")
		}
		onlyErrors := fanout{&capture{level: slog.LevelError}}
		if onlyErrors.Enabled(ctx, slog.LevelInfo) {
			t.Error("expected fanout to be disabled at INFO")
		}
	})

	t.Run("with attrs derives every handler", func(t *testing.T) {
		a := &capture{level: slog.LevelInfo}
		b := &capture{level: slog.LevelInfo}
		derived := fanout{a, b}.WithAttrs([]slog.Attr{slog.String("k", "v")})

		if _, ok := derived.(fanout); !ok {
			t.Fatalf("expected fanout, got %T", derived)
		}
		if len(a.attrs) != 1 || len(b.attrs) != 1 {
			t.Errorf("expected both handlers to receive the attr")
		}
	})
}

func TestSetupInstallsExtraSinks(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	sink := &capture{level: slog.LevelError}
	Setup(sink)

	slog.Info("routine")
	slog.Error("boom")

	if len(sink.messages) != 1 || sink.messages[0] != "boom" {
		t.Errorf("expected sink to capture only the error record, got %v", sink.messages)
	}
}
