// Package quotes rotates the short line shown under the timer title.
package quotes

var all = []string{
	"Focus on being productive instead of busy.",
	"The secret of getting ahead is getting started.",
	"Small steps every day add up to big results.",
	"Do one thing at a time, and do it well.",
	"Rest is part of the work.",
	"Starve your distractions, feed your focus.",
	"It always seems impossible until it's done.",
	"Your future self will thank you for this session.",
	"Progress, not perfection.",
	"Deep work is a superpower in a distracted world.",
	"Well begun is half done.",
	"Action is the foundational key to all success.",
}

func Len() int { return len(all) }

// At returns the quote at idx, wrapping around the list. Negative indexes
// map to the first quote.
func At(idx int) string {
	if idx < 0 {
		idx = 0
	}
	return all[idx%len(all)]
}

// Next returns the quote for idx and the index to store for the following
// launch.
func Next(idx int) (string, int) {
	if idx < 0 {
		idx = 0
	}
	idx %= len(all)
	return all[idx], (idx + 1) % len(all)
}
