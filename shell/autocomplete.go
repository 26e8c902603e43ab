package shell

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/dropfour/board"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-games")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"autoplay": {
		Options: []string{"-games", "-threads", "-plies", "-file"},
		Args:    []string{"stop"},
	},
	"autoanalyze": {
		Options: []string{"-format"},
	},
	"new": {
		Args: []string{"solo", "friend"},
	},
	"set": {
		Args: []string{"depth", "mode", "side"},
	},
	"help": {
		Args: []string{"play", "set", "autoplay", "autoanalyze"},
	},
}

// Common command names for command completion
var commandNames = []string{
	"help", "new", "play", "hint", "ai", "undo", "show", "set",
	"autoplay", "autoanalyze", "exit",
}

var setValues = map[string][]string{
	"depth": {"1", "2", "3", "4", "5", "6", "7", "8"},
	"mode":  {"solo", "friend"},
	"side":  {"first", "second"},
}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		// Fields before the one being typed.
		done := fields[1:]
		if !endsWithSpace {
			done = done[:len(done)-1]
		}

		switch {
		case cmdName == "play":
			if len(done) == 0 {
				completions = c.legalColumns()
			}
		case cmdName == "set" && len(done) == 1:
			completions = setValues[done[0]]
		case len(done) > 0 && done[len(done)-1] == "-format":
			completions = []string{"yaml", "text"}
		default:
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 || len(done) > 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			suffix := completion[len(prefix):]
			matches = append(matches, []rune(suffix))
		}
	}
	return matches, len(prefix)
}

func (c *ShellCompleter) legalColumns() []string {
	var b *board.GameBoard
	if c.sc != nil && c.sc.game != nil {
		b = c.sc.game.Board()
	} else {
		b = board.NewGameBoard()
	}
	return lo.Map(b.LegalMoves(), func(col int, _ int) string {
		return strconv.Itoa(col)
	})
}
