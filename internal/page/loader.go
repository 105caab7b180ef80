package page

import "time"

// LoaderInterval is how long each loader message stays on screen.
const LoaderInterval = 2500 * time.Millisecond

var loaderMessages = []string{
	"Warming up the time machine...",
	"Searching for vintage pixels...",
	"Applying retro filters...",
	"Styling your hair for the decade...",
	"Choosing the perfect outfit...",
	"Traveling through the digital timeline...",
	"Almost there, don't touch the dial!",
}

// LoaderMessage picks the rotating message for the time spent generating.
func LoaderMessage(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	return loaderMessages[int(elapsed/LoaderInterval)%len(loaderMessages)]
}
