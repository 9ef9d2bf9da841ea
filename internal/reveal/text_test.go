package reveal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/giftbox/internal/gift"
)

func TestTexts(t *testing.T) {
	g := gift.SampleGift()

	assert.Equal(t, "Friend, open the gift box to see your present from Santa!", Greeting(g))

	l := BuildLetter(g, time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, Letter{
		Salutation: "Dear Friend,",
		Body:       g.Message,
		Closing:    "With warmest wishes,",
		Signature:  "Santa",
		Date:       "Wednesday, December 24, 2025",
	}, l)

	lines := CompletionLines(g)
	assert.Contains(t, lines[1], "from Santa")
	assert.Equal(t, "Letter", StepLetter.Label())
}
