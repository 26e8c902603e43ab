package game

import (
	"fmt"
	"strings"

	"github.com/domino14/dropfour/board"
)

// ToDisplayText renders the board followed by a status line.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	sb.WriteString("\n")
	sb.WriteString(g.StatusLine())
	sb.WriteString("\n")
	return sb.String()
}

// StatusLine describes whose turn it is, or how the game ended.
func (g *Game) StatusLine() string {
	if g.playing == GameOver {
		if g.winner == board.Empty {
			return fmt.Sprintf("Game over after %d moves: draw.", g.Turn())
		}
		return fmt.Sprintf("Game over after %d moves: %s (%c) wins!",
			g.Turn(), g.winner, g.winner.Marker())
	}
	s := fmt.Sprintf("Turn %d: %s (%c) to move.", g.Turn()+1, g.onturn, g.onturn.Marker())
	if last := g.LastMove(); last != nil {
		s += " Last move: " + last.ShortDescription()
	}
	return s
}
