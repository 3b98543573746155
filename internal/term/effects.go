package term

import (
	"math/rand"
	"time"
)

const (
	scrambleCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
	scrambleSpecial = "!@#$%^&*"
)

// ScrambleLines builds the reveal sequence for text: for every prefix
// length it yields frames lines whose unrevealed tail is filled with random
// characters, ending with the plain text. Spaces stay spaces so the word
// shape reads through the noise. A nil rng seeds from the clock.
func ScrambleLines(text string, frames int, includeSpecial bool, rng *rand.Rand) []string {
	if frames < 1 {
		frames = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	charset := []rune(scrambleCharset)
	if includeSpecial {
		charset = append(charset, []rune(scrambleSpecial)...)
	}

	runes := []rune(text)
	lines := make([]string, 0, len(runes)*frames+1)
	for reveal := 0; reveal < len(runes); reveal++ {
		for f := 0; f < frames; f++ {
			line := make([]rune, len(runes))
			copy(line, runes[:reveal])
			for i := reveal; i < len(runes); i++ {
				if runes[i] == ' ' {
					line[i] = ' '
					continue
				}
				line[i] = charset[rng.Intn(len(charset))]
			}
			lines = append(lines, string(line))
		}
	}
	return append(lines, text)
}
