package reveal

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/gift"
)

// Greeting is shown above the closed box.
func Greeting(g *gift.Gift) string {
	return fmt.Sprintf("%s, open the gift box to see your present from %s!", g.RecipientName, g.SenderName)
}

// Letter is the content of the letter step.
type Letter struct {
	Salutation string `json:"salutation"`
	Body       string `json:"body"`
	Closing    string `json:"closing"`
	Signature  string `json:"signature"`
	Date       string `json:"date"`
}

// LetterDateLayout renders e.g. "Wednesday, December 24, 2025".
const LetterDateLayout = "Monday, January 2, 2006"

// BuildLetter lays out the message as a letter dated on.
func BuildLetter(g *gift.Gift, on time.Time) Letter {
	return Letter{
		Salutation: fmt.Sprintf("Dear %s,", g.RecipientName),
		Body:       g.Message,
		Closing:    "With warmest wishes,",
		Signature:  g.SenderName,
		Date:       on.Format(LetterDateLayout),
	}
}

// NoVoiceText replaces the player when a gift has no voice message.
const NoVoiceText = "No voice message was included with this gift."

// CompletionLines is the message shown once the reveal completes.
func CompletionLines(g *gift.Gift) []string {
	return []string{
		"Gift Unwrapped!",
		fmt.Sprintf("Your virtual gift from %s has been fully revealed!", g.SenderName),
		`"May your holidays be filled with joy, love, and cherished moments."`,
		"Wishing you a very Merry Christmas and a Happy New Year!",
	}
}
