package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"focusdo/internal/config"
)

// New builds the application logger for the given environment. Local runs
// get a console writer and trace level; dev and prod stay on structured JSON.
func New(env string) zerolog.Logger {
	w := io.Writer(os.Stdout)
	switch env {
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)

		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		w = consoleWriter
	case config.EnvDev:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return zerolog.New(w).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
}
