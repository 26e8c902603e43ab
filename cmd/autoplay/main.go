// autoplay plays a batch of computer vs computer games and prints a summary.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/dropfour/automatic"
	"github.com/domino14/dropfour/config"
	"github.com/domino14/dropfour/worker"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-config")
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")
	worker.SetDefaultSize(cfg.SearchThreads())

	var out io.Writer
	if fn := cfg.GetString(config.ConfigAutoplayLogfile); fn != "" {
		f, err := os.Create(fn)
		if err != nil {
			log.Fatal().Err(err).Msg("could-not-create-logfile")
		}
		defer f.Close()
		out = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	summary, err := automatic.StartCompVCompGames(ctx, cfg,
		cfg.GetInt(config.ConfigAutoplayGames),
		cfg.GetInt(config.ConfigAutoplayThreads),
		cfg.GetInt(config.ConfigAutoplayRandomPlies), out)
	if err != nil {
		log.Error().Err(err).Msg("autoplay-failed")
		if summary == nil {
			os.Exit(1)
		}
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("autoplay-done")

	if err := summary.Fprint(os.Stdout); err != nil {
		log.Error().Err(err).Msg("could-not-print-summary")
	}
}
