package wellness

import "math/rand"

var quotes = []string{
	"Be kind to yourself — you are doing better than you think.",
	"Breathe deeply. A small step is still progress.",
	"Not every day is a good day, and that is okay.",
	"Feelings are temporary. You are not what you feel.",
	"Give yourself five minutes — you deserve it.",
}

// RandomQuote returns one of the built-in encouragement quotes.
func RandomQuote() string {
	return quotes[rand.Intn(len(quotes))]
}
