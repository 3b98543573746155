// Package gifenc assembles rendered frame files into the animated GIF
// artifact. The primary path shells out to ffmpeg and validates its output;
// the fallback path decodes, quantizes and encodes the frames in process.
package gifenc

import "sort"

// token is one unit of a natural sort key: either a numeric run compared by
// value or a text run compared case-insensitively.
type token struct {
	num   int
	text  string
	isNum bool
}

// naturalKey splits s on maximal digit runs. "frame_10.png" becomes
// ["frame_", 10, ".png"], so index 10 orders after index 2 regardless of
// zero padding.
func naturalKey(s string) []token {
	var key []token
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		j := i
		if isDigit(runes[i]) {
			n := 0
			for j < len(runes) && isDigit(runes[j]) {
				n = n*10 + int(runes[j]-'0')
				j++
			}
			key = append(key, token{num: n, isNum: true})
		} else {
			for j < len(runes) && !isDigit(runes[j]) {
				runes[j] = lower(runes[j])
				j++
			}
			key = append(key, token{text: string(runes[i:j])})
		}
		i = j
	}
	return key
}

// naturalLess compares two names by their key token sequences. Numeric
// tokens compare by value, text tokens lexicographically; when token kinds
// differ at a position the numeric one orders first, keeping the order
// total for names whose run boundaries do not align.
func naturalLess(a, b string) bool {
	ka, kb := naturalKey(a), naturalKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		ta, tb := ka[i], kb[i]
		switch {
		case ta.isNum && tb.isNum:
			if ta.num != tb.num {
				return ta.num < tb.num
			}
		case !ta.isNum && !tb.isNum:
			if ta.text != tb.text {
				return ta.text < tb.text
			}
		default:
			return ta.isNum
		}
	}
	return len(ka) < len(kb)
}

// sortFrames orders frame filenames naturally, in place.
func sortFrames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
