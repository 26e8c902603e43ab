package bot

import "lukechampine.com/frand"

var taunts = []string{
	"The AI is thinking...",
	"That was going to be my move, and now...",
	"Didn't see that one coming, but I can work with it...",
	"Don't ruin my plans...",
	"With this strategy I'm going to win...",
	"If this were poker, I'd have won already...",
	"It started badly and now it looks like the start...",
	"Are you playing blindfolded?",
}

// Taunt returns a random line for the AI to say before it moves.
func Taunt() string {
	return taunts[frand.Intn(len(taunts))]
}
