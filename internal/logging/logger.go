package logging

import (
	"log/slog"
	"os"
)

// Setup installs the process-wide slog logger: JSON to stdout at INFO and
// above, fanned out to any additional sinks. main calls it twice, once bare
// at boot and again with the Postgres handler once the database is up.
func Setup(sinks ...slog.Handler) {
	handlers := make(fanout, 0, len(sinks)+1)
	handlers = append(handlers, slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	handlers = append(handlers, sinks...)
	slog.SetDefault(slog.New(handlers))
}
