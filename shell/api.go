package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/dropfour/automatic"
	"github.com/domino14/dropfour/bot"
	"github.com/domino14/dropfour/config"
	"github.com/domino14/dropfour/game"
)

type Response struct {
	message string
}

func (r *Response) String() string {
	if r == nil {
		return ""
	}
	return r.message
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	if cmd.args == nil {
		usage(&sb)
	} else {
		usageTopic(&sb, cmd.args[0])
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		mode, err := modeFromStr(cmd.args[0])
		if err != nil {
			return nil, err
		}
		sc.mode = mode
	}
	sc.game = game.NewGame()
	log.Debug().Str("mode", sc.mode.String()).Msg("new-game")

	var sb strings.Builder
	fmt.Fprintf(&sb, "New %s game.\n", sc.mode)
	if err := sc.aiReply(&sb); err != nil {
		return nil, err
	}
	sb.WriteString(sc.game.ToDisplayText())
	return msg(sb.String()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <column>")
	}
	col, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, fmt.Errorf("%q is not a column number", cmd.args[0])
	}
	if err := sc.game.PlayMove(col); err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := sc.aiReply(&sb); err != nil {
		return nil, err
	}
	sb.WriteString(sc.game.ToDisplayText())
	return msg(sb.String()), nil
}

// aiReply lets the AI move if this is a solo game and it is the AI's turn.
func (sc *ShellController) aiReply(w io.Writer) error {
	if sc.mode != SoloMode || sc.game.Playing() != game.Playing ||
		sc.game.PlayerOnTurn() != sc.aiSide {
		return nil
	}
	fmt.Fprintln(w, bot.Taunt())
	col, err := sc.bot.PlayBestMove(sc.game)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "The AI plays column %d.\n", col)
	return nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	col, score, err := sc.bot.BestMove(sc.game)
	if err != nil {
		return nil, err
	}
	side := sc.game.PlayerOnTurn()
	return msg(fmt.Sprintf("Suggested column for %s (%c): %d (score %d, depth %d)",
		side, side.Marker(), col, score, sc.bot.Depth())), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	col, err := sc.bot.PlayBestMove(sc.game)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "The AI plays column %d.\n", col)
	if err := sc.aiReply(&sb); err != nil {
		return nil, err
	}
	sb.WriteString(sc.game.ToDisplayText())
	return msg(sb.String()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if err := sc.game.UnplayLastMove(); err != nil {
		return nil, err
	}
	// In a solo game take back the AI's reply too.
	if sc.mode == SoloMode && sc.game.PlayerOnTurn() == sc.aiSide && sc.game.Turn() > 0 {
		if err := sc.game.UnplayLastMove(); err != nil {
			return nil, err
		}
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) settingsText() string {
	return fmt.Sprintf("depth: %d\nmode: %s\nside: %s\n",
		sc.bot.Depth(), sc.mode, sc.aiSide)
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(sc.settingsText()), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <depth|mode|side> <value>")
	}
	opt, val := cmd.args[0], cmd.args[1]
	switch opt {
	case "depth":
		d, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", config.ErrBadSearchDepth, val)
		}
		if err := sc.bot.SetDepth(d); err != nil {
			return nil, err
		}
	case "mode":
		mode, err := modeFromStr(val)
		if err != nil {
			return nil, err
		}
		sc.mode = mode
	case "side":
		side, err := config.ParseSide(val)
		if err != nil {
			return nil, err
		}
		sc.aiSide = side
	default:
		return nil, errors.New("unknown setting " + opt)
	}
	return msg("set " + opt + " to " + val), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 && cmd.args[0] == "stop" {
		if !sc.stopAutoplay() {
			return nil, errors.New("autoplay is not running")
		}
		return msg("autoplay stopped"), nil
	}

	games, err := cmd.options.IntDefault("games", sc.config.GetInt(config.ConfigAutoplayGames))
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	plies, err := cmd.options.IntDefault("plies", sc.config.GetInt(config.ConfigAutoplayRandomPlies))
	if err != nil {
		return nil, err
	}
	if games < 1 || threads < 1 || plies < 0 {
		return nil, errors.New("games and threads must be positive and plies non-negative")
	}
	logfile := cmd.options.String("file")
	if logfile == "" {
		logfile = sc.config.GetString(config.ConfigAutoplayLogfile)
	}

	sc.mu.Lock()
	if sc.autoplayCancel != nil {
		sc.mu.Unlock()
		return nil, errAutoplayRunning
	}
	var out *os.File
	if logfile != "" {
		out, err = os.Create(logfile)
		if err != nil {
			sc.mu.Unlock()
			return nil, err
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sc.autoplayCancel = cancel
	sc.autoplayDone = done
	sc.mu.Unlock()

	go func() {
		defer close(done)
		var w io.Writer
		if out != nil {
			defer out.Close()
			w = out
		}
		summary, err := automatic.StartCompVCompGames(ctx, sc.config, games, threads, plies, w)

		sc.mu.Lock()
		sc.autoplayCancel = nil
		sc.mu.Unlock()
		cancel()

		if err != nil {
			sc.showError(err)
			if summary == nil {
				return
			}
		}
		var sb strings.Builder
		if err := summary.Fprint(&sb); err != nil {
			sc.showError(err)
			return
		}
		sc.showMessage(sb.String())
	}()

	return msg(fmt.Sprintf("Started %d games on %d threads (depth %d, %d random plies).",
		games, threads, sc.config.SearchDepth(), plies)), nil
}

// stopAutoplay cancels a running autoplay and waits for it to finish.
func (sc *ShellController) stopAutoplay() bool {
	sc.mu.Lock()
	cancel, done := sc.autoplayCancel, sc.autoplayDone
	sc.mu.Unlock()
	if cancel == nil {
		return false
	}
	cancel()
	<-done
	return true
}

// WaitAutoplay blocks until the current autoplay, if any, has finished.
func (sc *ShellController) WaitAutoplay() {
	sc.mu.Lock()
	done := sc.autoplayDone
	sc.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (sc *ShellController) autoAnalyze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: autoanalyze <logfile>")
	}
	summary, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if cmd.options.String("format") == "yaml" {
		out, err := summary.YAML()
		if err != nil {
			return nil, err
		}
		return msg(out), nil
	}
	var sb strings.Builder
	if err := summary.Fprint(&sb); err != nil {
		return nil, err
	}
	return msg(sb.String()), nil
}
