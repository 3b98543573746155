package term

import (
	"math/rand"
	"strings"
	"testing"
)

func TestScrambleLinesShape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	lines := ScrambleLines("FYNN OS", 3, false, rng)

	want := len("FYNN OS")*3 + 1
	if len(lines) != want {
		t.Fatalf("ScrambleLines returned %d lines, expected %d", len(lines), want)
	}
	if lines[len(lines)-1] != "FYNN OS" {
		t.Errorf("final line = %q, expected the plain text", lines[len(lines)-1])
	}
	for i, line := range lines {
		if len([]rune(line)) != len("FYNN OS") {
			t.Errorf("line %d length = %d, expected %d", i, len([]rune(line)), len("FYNN OS"))
		}
	}
}

func TestScrambleLinesRevealIsProgressive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	text := "BOOT"
	frames := 2
	lines := ScrambleLines(text, frames, false, rng)
	for reveal := 0; reveal < len(text); reveal++ {
		for f := 0; f < frames; f++ {
			line := lines[reveal*frames+f]
			if !strings.HasPrefix(line, text[:reveal]) {
				t.Errorf("line %q does not keep revealed prefix %q", line, text[:reveal])
			}
		}
	}
}

func TestScrambleLinesPreservesSpaces(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, line := range ScrambleLines("A B", 4, false, rng) {
		if line[1] != ' ' {
			t.Errorf("line %q scrambled the space", line)
		}
	}
}

func TestScrambleLinesCharset(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	lines := ScrambleLines("XY", 5, false, rng)
	for _, line := range lines[:len(lines)-1] {
		for _, r := range line {
			if strings.ContainsRune(scrambleSpecial, r) {
				t.Errorf("line %q contains special character without include_special", line)
			}
		}
	}
}
