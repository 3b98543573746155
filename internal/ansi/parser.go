package ansi

import "strings"

// Segment is a run of text rendered with a single style.
type Segment struct {
	Text  string
	Style Style
}

// Parse splits s into styled runs, interpreting the SGR subset (reset, bold,
// 30-37/90-97 foreground, 40-47/100-107 background, 39/49 defaults, 38/48
// extended colors). Other escape sequences are consumed and dropped. The
// returned style is the one in effect after the last byte, so callers can
// carry attribute state across successive strings.
func Parse(s string, start Style) ([]Segment, Style) {
	var segs []Segment
	var buf strings.Builder
	st := start

	flush := func(prev Style) {
		if buf.Len() > 0 {
			segs = append(segs, Segment{Text: buf.String(), Style: prev})
			buf.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != 0x1b {
			buf.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			break
		}
		if runes[i+1] != '[' {
			// Two-byte escape, not CSI. Drop it.
			i++
			continue
		}
		j := i + 2
		for j < len(runes) && !isFinalByte(runes[j]) {
			j++
		}
		if j >= len(runes) {
			break
		}
		if runes[j] == 'm' {
			prev := st
			st = applySGR(string(runes[i+2:j]), st)
			if st != prev {
				flush(prev)
			}
		}
		i = j
	}
	flush(st)
	return segs, st
}

// Strip returns s with all escape sequences removed.
func Strip(s string) string {
	segs, _ := Parse(s, Style{})
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// VisibleLen returns the number of visible runes in s.
func VisibleLen(s string) int {
	return len([]rune(Strip(s)))
}

func isFinalByte(r rune) bool {
	return r >= 0x40 && r <= 0x7e
}

func applySGR(params string, st Style) Style {
	codes := parseParams(params)
	for i := 0; i < len(codes); i++ {
		n := codes[i]
		switch {
		case n == 0:
			st = Style{}
		case n == 1:
			st.Bold = true
		case n == 22:
			st.Bold = false
		case n >= 30 && n <= 37:
			st.Fg = Indexed(n - 30)
		case n == 38 || n == 48:
			var c Color
			var ok bool
			c, i, ok = extendedColor(codes, i)
			if ok {
				if n == 38 {
					st.Fg = c
				} else {
					st.Bg = c
				}
			}
		case n == 39:
			st.Fg = Color{}
		case n >= 40 && n <= 47:
			st.Bg = Indexed(n - 40)
		case n == 49:
			st.Bg = Color{}
		case n >= 90 && n <= 97:
			st.Fg = Indexed(n - 90 + 8)
		case n >= 100 && n <= 107:
			st.Bg = Indexed(n - 100 + 8)
		}
	}
	return st
}

// extendedColor consumes the arguments of a 38/48 sequence starting at
// codes[i] and returns the resulting color, the index of the last consumed
// argument, and whether a color was produced.
func extendedColor(codes []int, i int) (Color, int, bool) {
	if i+1 >= len(codes) {
		return Color{}, len(codes), false
	}
	switch codes[i+1] {
	case 2:
		if i+4 >= len(codes) {
			return Color{}, len(codes), false
		}
		c := Direct(RGB{uint8(codes[i+2]), uint8(codes[i+3]), uint8(codes[i+4])})
		return c, i + 4, true
	case 5:
		if i+2 >= len(codes) {
			return Color{}, len(codes), false
		}
		n := codes[i+2]
		if n >= 0 && n < 16 {
			return Indexed(n), i + 2, true
		}
		return Color{}, i + 2, false
	}
	return Color{}, i + 1, false
}

func parseParams(s string) []int {
	if s == "" {
		return []int{0}
	}
	parts := strings.Split(s, ";")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n := 0
		for _, r := range p {
			if r < '0' || r > '9' {
				n = 0
				break
			}
			n = n*10 + int(r-'0')
		}
		out = append(out, n)
	}
	return out
}
