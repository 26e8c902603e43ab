// Package shell is the interactive console: it reads commands with
// readline and drives a game against the AI or between two people.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/dropfour/board"
	"github.com/domino14/dropfour/bot"
	"github.com/domino14/dropfour/config"
	"github.com/domino14/dropfour/game"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errExit              = errors.New("exit requested")
	errAutoplayRunning   = errors.New("autoplay is already running; use autoplay stop")
)

type PlayMode int

const (
	SoloMode PlayMode = iota
	FriendMode
)

func (m PlayMode) String() string {
	if m == FriendMode {
		return "friend"
	}
	return "solo"
}

func modeFromStr(mode string) (PlayMode, error) {
	switch strings.TrimSpace(mode) {
	case "solo":
		return SoloMode, nil
	case "friend":
		return FriendMode, nil
	}
	return SoloMode, config.ErrBadPlayMode
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config *config.Config
	game   *game.Game
	bot    *bot.Bot
	mode   PlayMode
	aiSide board.Cell

	// mu guards the autoplay fields and writes to out.
	mu             sync.Mutex
	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController creates a controller reading from the terminal.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	sc := newController(cfg, os.Stdout)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mdropfour>\033[0m ",
		HistoryFile:     "/tmp/dropfour-readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc, nil
}

func newController(cfg *config.Config, out io.Writer) *ShellController {
	mode, err := modeFromStr(cfg.GetString(config.ConfigPlayMode))
	if err != nil {
		log.Warn().Err(err).Msg("using-solo-mode")
	}
	sc := &ShellController{
		out:    out,
		config: cfg,
		bot:    bot.NewBot(cfg),
		mode:   mode,
		aiSide: cfg.AISide(),
	}
	sc.game = game.NewGame()
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its positional arguments,
// and its -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}

	for idx := 1; idx < len(fields); idx++ {
		if !strings.HasPrefix(fields[idx], "-") {
			args = append(args, fields[idx])
			continue
		}
		if idx == len(fields)-1 {
			return nil, errWrongOptionSyntax
		}
		key := fields[idx][1:]
		options[key] = append(options[key], fields[idx+1])
		idx++
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// Execute runs a single command line. A line holding only a number plays
// that column.
func (sc *ShellController) Execute(sig chan os.Signal, line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err == errNoData {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if _, err := strconv.Atoi(cmd.cmd); err == nil && cmd.cmd != "42" {
		cmd.args = append([]string{cmd.cmd}, cmd.args...)
		cmd.cmd = "play"
	}

	switch cmd.cmd {
	case "exit", "quit":
		if sig != nil {
			sig <- syscall.SIGINT
		}
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "play":
		return sc.play(cmd)
	case "hint", "42":
		return sc.hint(cmd)
	case "ai":
		return sc.aiplay(cmd)
	case "undo":
		return sc.undo(cmd)
	case "show":
		return sc.show(cmd)
	case "set":
		return sc.set(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "autoanalyze":
		return sc.autoAnalyze(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, errors.New("command not found: " + cmd.cmd + " (type help for a list)")
	}
}

// Loop reads commands until exit or end of input. Errors are shown and the
// loop goes on.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	sc.showMessage(sc.game.ToDisplayText())
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		resp, err := sc.Execute(sig, line)
		if err == errExit {
			break
		} else if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	sc.stopAutoplay()
	log.Debug().Msg("exiting-readline-loop")
}

// Cleanup stops any background work before the program exits.
func (sc *ShellController) Cleanup() {
	sc.stopAutoplay()
}
