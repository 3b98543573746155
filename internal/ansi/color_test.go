package ansi

import (
	"strings"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	cases := []string{"#0c0e0f", "#FFFFFF", "#000000", "#DeAdBe"}
	for _, in := range cases {
		c, err := ParseHex(in)
		if err != nil {
			t.Fatalf("ParseHex(%q) returned error: %v", in, err)
		}
		if !strings.EqualFold(c.Hex(), in) {
			t.Errorf("ParseHex(%q).Hex() = %q, expected match ignoring case", in, c.Hex())
		}
	}
}

func TestParseHexRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "#fff", "#gggggg", "0c0e0f00"} {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) succeeded, expected error", in)
		}
	}
}

func TestParseHexWithoutHash(t *testing.T) {
	c, err := ParseHex("0c0e0f")
	if err != nil {
		t.Fatalf("ParseHex without hash returned error: %v", err)
	}
	if c != (RGB{12, 14, 15}) {
		t.Errorf("ParseHex(\"0c0e0f\") = %v, expected {12 14 15}", c)
	}
}

func TestResolveIndexed(t *testing.T) {
	s := Fallback()
	got := Indexed(1).Resolve(s, true, false)
	if got != s.Normal[1] {
		t.Errorf("Indexed(1) resolved to %v, expected normal red %v", got, s.Normal[1])
	}
	got = Indexed(9).Resolve(s, true, false)
	if got != s.Bright[1] {
		t.Errorf("Indexed(9) resolved to %v, expected bright red %v", got, s.Bright[1])
	}
}

func TestResolveBoldPromotesToBright(t *testing.T) {
	s := Fallback()
	got := Indexed(2).Resolve(s, true, true)
	if got != s.Bright[2] {
		t.Errorf("bold Indexed(2) resolved to %v, expected bright green %v", got, s.Bright[2])
	}
	// Background colors are not promoted.
	got = Indexed(2).Resolve(s, false, true)
	if got != s.Normal[2] {
		t.Errorf("bold bg Indexed(2) resolved to %v, expected normal green %v", got, s.Normal[2])
	}
}

func TestResolveDefaults(t *testing.T) {
	s := Fallback()
	if got := (Color{}).Resolve(s, true, false); got != s.DefaultFg {
		t.Errorf("default fg resolved to %v, expected %v", got, s.DefaultFg)
	}
	if got := (Color{}).Resolve(s, false, false); got != s.DefaultBg {
		t.Errorf("default bg resolved to %v, expected %v", got, s.DefaultBg)
	}
}

func TestBuiltinSchemes(t *testing.T) {
	s := Builtin("yoru")
	if s == nil {
		t.Fatal("Builtin(\"yoru\") = nil, expected scheme")
	}
	if s.DefaultBg.Hex() != "#0c0e0f" {
		t.Errorf("yoru bg = %s, expected #0c0e0f", s.DefaultBg.Hex())
	}
	if Builtin("no_such_scheme") != nil {
		t.Error("Builtin for unknown scheme returned non-nil")
	}
}

func TestParseSchemesInheritsFallbackPalette(t *testing.T) {
	doc := []byte("[mini.default_colors]\nbg = \"#101010\"\n")
	schemes, err := ParseSchemes(doc)
	if err != nil {
		t.Fatalf("ParseSchemes returned error: %v", err)
	}
	s := schemes["mini"]
	if s == nil {
		t.Fatal("scheme mini missing from parse result")
	}
	if s.DefaultBg != (RGB{0x10, 0x10, 0x10}) {
		t.Errorf("mini bg = %v, expected {16 16 16}", s.DefaultBg)
	}
	if s.DefaultFg != Fallback().DefaultFg {
		t.Errorf("mini fg = %v, expected inherited fallback fg", s.DefaultFg)
	}
	if s.Normal[4] != Fallback().Normal[4] {
		t.Errorf("mini palette = %v, expected inherited fallback palette", s.Normal[4])
	}
}

func TestParseSchemesRejectsBadHex(t *testing.T) {
	doc := []byte("[bad.default_colors]\nbg = \"#zzzzzz\"\n")
	if _, err := ParseSchemes(doc); err == nil {
		t.Error("ParseSchemes accepted malformed hex, expected error")
	}
}
