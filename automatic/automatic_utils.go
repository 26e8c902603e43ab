package automatic

// Data collection for automatic games.

import (
	"context"
	"errors"
	"expvar"
	"io"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/domino14/dropfour/config"
	"github.com/domino14/dropfour/zobrist"
)

const logHeader = "gameID,winner,turns,moves,hash\n"

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int

	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

	running atomic.Bool
)

func init() {
	GamesPlayed = expvar.NewInt("dropfourGamesPlayed")
	IsPlaying = expvar.NewInt("dropfourIsPlaying")
}

type Job struct{}

// StartCompVCompGames plays numGames games on the given number of threads,
// each opening with randomPlies random moves, writing a CSV line per game to
// out (which may be nil). It blocks until every queued game has finished.
// Cancelling ctx stops queueing new games; games already started are played
// out and counted.
func StartCompVCompGames(ctx context.Context, cfg *config.Config,
	numGames, threads, randomPlies int, out io.Writer) (*Summary, error) {

	if !running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer running.Store(false)

	threads = max(threads, 1)
	log.Debug().Int("games", numGames).Int("threads", threads).Msg("starting-autoplay")

	// Every runner shares the keys so final positions can be compared.
	z := &zobrist.Zobrist{}
	z.Initialize()

	GamesPlayed.Set(0)
	jobs := make(chan Job, 100)
	logChan := make(chan string, 100)
	// Each thread summarizes its own games; the partial summaries are merged
	// once every thread is done.
	partials := make(chan *Summary, threads)
	errs := make(chan error, threads)
	var wg sync.WaitGroup
	wg.Add(threads)

	for i := 1; i <= threads; i++ {
		go func(i int) {
			defer wg.Done()
			r := NewGameRunner(logChan, cfg, z)
			r.SetRandomPlies(randomPlies)
			partial := NewSummary()
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			defer func() { partials <- partial }()
			for range jobs {
				res, err := r.PlayGame()
				if err != nil {
					log.Err(err).Int("thread", i).Msg("autoplay-game-failed")
					errs <- err
					// Keep draining so the feeder never blocks.
					for range jobs {
					}
					return
				}
				GamesPlayed.Add(1)
				partial.Add(res)
			}
		}(i)
	}

	go func() {
	gameLoop:
		for i := 1; i < numGames+1; i++ {
			if ctx.Err() != nil {
				log.Info().Msg("got-stop-signal")
				break
			}
			select {
			case <-ctx.Done():
				log.Info().Msg("got-stop-signal")
				break gameLoop
			case jobs <- Job{}:
			}
			if i%1000 == 0 {
				log.Info().Int("queued", i).Msg("queued-jobs")
			}
		}
		close(jobs)
		log.Debug().Msg("finished-queueing")
		wg.Wait()
		close(logChan)
		close(partials)
	}()

	logDone := make(chan struct{})
	go func() {
		defer close(logDone)
		var werr error
		if out != nil {
			_, werr = io.WriteString(out, logHeader)
		}
		for msg := range logChan {
			if out != nil && werr == nil {
				_, werr = io.WriteString(out, msg)
			}
		}
		if werr != nil {
			log.Err(werr).Msg("autoplay-log-write-failed")
		}
	}()

	summary := NewSummary()
	for partial := range partials {
		summary.Merge(partial)
	}
	<-logDone
	log.Info().Int("games", summary.Games).Msg("all-games-finished")

	close(errs)
	return summary, errors.Join(collect(errs)...)
}

func collect(errs chan error) []error {
	var all []error
	for err := range errs {
		all = append(all, err)
	}
	return all
}
