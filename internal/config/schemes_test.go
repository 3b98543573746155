package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fynn9563/bootgif/internal/ansi"
)

func TestLocalSchemeOverridesBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.toml")
	doc := "[yoru.default_colors]\nbg = \"#123456\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	schemes, err := LoadSchemes(path)
	if err != nil {
		t.Fatalf("LoadSchemes returned error: %v", err)
	}
	got := schemes.Background("yoru")
	if got.Hex() != "#123456" {
		t.Errorf("Background(yoru) = %s, expected local override #123456", got.Hex())
	}
}

func TestBuiltinSchemeUsedWithoutOverride(t *testing.T) {
	schemes, err := LoadSchemes("")
	if err != nil {
		t.Fatalf("LoadSchemes returned error: %v", err)
	}
	got := schemes.Background("nord")
	if got.Hex() != "#2e3440" {
		t.Errorf("Background(nord) = %s, expected built-in #2e3440", got.Hex())
	}
}

func TestUnknownSchemeFallsBack(t *testing.T) {
	schemes, err := LoadSchemes("")
	if err != nil {
		t.Fatalf("LoadSchemes returned error: %v", err)
	}
	got := schemes.Background("definitely_not_a_scheme")
	if got.Hex() != ansi.FallbackBg {
		t.Errorf("Background(unknown) = %s, expected %s", got.Hex(), ansi.FallbackBg)
	}
}

func TestLoadSchemesMissingFileIsEmpty(t *testing.T) {
	schemes, err := LoadSchemes(filepath.Join(t.TempDir(), "colors.toml"))
	if err != nil {
		t.Fatalf("LoadSchemes with missing file returned error: %v", err)
	}
	if got := schemes.Background("yoru"); got.Hex() != "#0c0e0f" {
		t.Errorf("Background(yoru) = %s, expected built-in #0c0e0f", got.Hex())
	}
}

func TestLoadSchemesRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.toml")
	if err := os.WriteFile(path, []byte("not toml ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSchemes(path); err == nil {
		t.Error("LoadSchemes accepted malformed file, expected error")
	}
}
