package term

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/fynn9563/bootgif/internal/ansi"
)

func testTerminal(t *testing.T, cfg Config) *Terminal {
	t.Helper()
	if cfg.Width == 0 {
		cfg.Width = 750
		cfg.Height = 500
		cfg.XPad = 15
		cfg.YPad = 15
	}
	term, err := New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return term
}

func TestNewGridDimensions(t *testing.T) {
	term := testTerminal(t, Config{})
	w, h := BuiltinFace().CellSize()
	wantCols := (750 - 30) / w
	wantRows := (500 - 30) / h
	if term.Cols() != wantCols {
		t.Errorf("Cols() = %d, expected %d", term.Cols(), wantCols)
	}
	if term.Rows() != wantRows {
		t.Errorf("Rows() = %d, expected %d", term.Rows(), wantRows)
	}
	if term.CurRow() != 1 || term.CurCol() != 1 {
		t.Errorf("cursor = (%d,%d), expected (1,1)", term.CurRow(), term.CurCol())
	}
}

func TestBuiltinFaceCellSize(t *testing.T) {
	w, h := BuiltinFace().CellSize()
	if w != 8 || h != 16 {
		t.Errorf("CellSize() = %dx%d, expected 8x16", w, h)
	}
}

func TestPrintWritesRow(t *testing.T) {
	term := testTerminal(t, Config{})
	if err := term.Print("FYNN_OS Modular BIOS v4.2.0", 1); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	if got := term.Row(1); got != "FYNN_OS Modular BIOS v4.2.0" {
		t.Errorf("Row(1) = %q, expected the printed text", got)
	}
	if term.FrameCount() != 1 {
		t.Errorf("FrameCount() = %d, expected 1", term.FrameCount())
	}
}

func TestPrintClearsBelow(t *testing.T) {
	term := testTerminal(t, Config{})
	if err := term.PrintOpts("low", 5, PrintOptions{Frames: 1}); err != nil {
		t.Fatal(err)
	}
	if err := term.Print("high", 2); err != nil {
		t.Fatal(err)
	}
	if got := term.Row(5); got != "" {
		t.Errorf("Row(5) = %q, expected cleared", got)
	}
	if got := term.Row(2); got != "high" {
		t.Errorf("Row(2) = %q, expected high", got)
	}
}

func TestPrintKeepPreservesBelow(t *testing.T) {
	term := testTerminal(t, Config{})
	if err := term.Print("bottom", 10); err != nil {
		t.Fatal(err)
	}
	if err := term.PrintOpts("top", 2, PrintOptions{Col: 1, Frames: 1, Keep: true}); err != nil {
		t.Fatal(err)
	}
	if got := term.Row(10); got != "bottom" {
		t.Errorf("Row(10) = %q, expected bottom preserved", got)
	}
}

func TestPrintZeroFramesOnlyMutatesState(t *testing.T) {
	term := testTerminal(t, Config{})
	if err := term.PrintOpts("\x1b[96m", 1, PrintOptions{Keep: true}); err != nil {
		t.Fatal(err)
	}
	if term.FrameCount() != 0 {
		t.Errorf("FrameCount() = %d, expected 0", term.FrameCount())
	}
	if err := term.Print("LOGO", 3); err != nil {
		t.Fatal(err)
	}
	cell := term.cellAt(3, 1)
	if cell.Style.Fg != ansi.Indexed(14) {
		t.Errorf("fg after lingering color code = %#v, expected bright cyan", cell.Style.Fg)
	}
}

func TestPrintKeepContinuesAtCursor(t *testing.T) {
	term := testTerminal(t, Config{})
	if err := term.Print("Initiating Boot Sequence ", 1); err != nil {
		t.Fatal(err)
	}
	col := term.CurCol()
	if err := term.PrintOpts(".....", 1, PrintOptions{Frames: 1, Keep: true}); err != nil {
		t.Fatal(err)
	}
	if got := term.Row(1); got != "Initiating Boot Sequence ....." {
		t.Errorf("Row(1) = %q, expected appended dots", got)
	}
	if term.CurCol() != col+5 {
		t.Errorf("CurCol() = %d, expected %d", term.CurCol(), col+5)
	}
}

func TestTypeTextEmitsFramePerRune(t *testing.T) {
	term := testTerminal(t, Config{})
	if err := term.Print("login: ", 3); err != nil {
		t.Fatal(err)
	}
	before := term.FrameCount()
	if err := term.TypeText("Fynn9563", 3); err != nil {
		t.Fatalf("TypeText returned error: %v", err)
	}
	if got := term.FrameCount() - before; got != 8 {
		t.Errorf("typing emitted %d frames, expected 8", got)
	}
	if got := term.Row(3); got != "login: Fynn9563" {
		t.Errorf("Row(3) = %q, expected login line", got)
	}
}

func TestTypeTextSkipsEscapeCodes(t *testing.T) {
	term := testTerminal(t, Config{})
	if err := term.Prompt(7); err != nil {
		t.Fatal(err)
	}
	before := term.FrameCount()
	if err := term.TypeText("\x1b[91mclea", 7); err != nil {
		t.Fatal(err)
	}
	if got := term.FrameCount() - before; got != 4 {
		t.Errorf("typing emitted %d frames, expected 4 visible runes", got)
	}
}

func TestPromptTracksCursorColumn(t *testing.T) {
	term := testTerminal(t, Config{})
	term.SetPrompt("\x1b[92mfynn@fynn-os\x1b[0m \x1b[94m~>\x1b[0m ")
	if err := term.Prompt(7); err != nil {
		t.Fatalf("Prompt returned error: %v", err)
	}
	wantCol := 1 + ansi.VisibleLen("\x1b[92mfynn@fynn-os\x1b[0m \x1b[94m~>\x1b[0m ")
	if term.CurCol() != wantCol {
		t.Errorf("CurCol() = %d, expected %d", term.CurCol(), wantCol)
	}
	if got := term.Row(7); got != "fynn@fynn-os ~>" {
		t.Errorf("Row(7) = %q, expected visible prompt text", got)
	}
}

func TestTypoCorrectionFlow(t *testing.T) {
	term := testTerminal(t, Config{})
	term.SetPrompt("~> ")
	if err := term.Prompt(7); err != nil {
		t.Fatal(err)
	}
	promptCol := term.CurCol()
	if err := term.TypeText("\x1b[91mclea", 7); err != nil {
		t.Fatal(err)
	}
	term.DeleteRowFrom(7, promptCol)
	if term.CurCol() != promptCol {
		t.Errorf("CurCol() after delete = %d, expected %d", term.CurCol(), promptCol)
	}
	if err := term.PrintOpts("\x1b[92mclear\x1b[0m", 7, PrintOptions{Frames: 3, Keep: true}); err != nil {
		t.Fatal(err)
	}
	if got := term.Row(7); got != "~> clear" {
		t.Errorf("Row(7) = %q, expected corrected command", got)
	}
}

func TestCloneFrameAdvancesCounter(t *testing.T) {
	term := testTerminal(t, Config{})
	if err := term.CloneFrame(5); err != nil {
		t.Fatalf("CloneFrame returned error: %v", err)
	}
	if term.FrameCount() != 5 {
		t.Errorf("FrameCount() = %d, expected 5", term.FrameCount())
	}
}

func TestDeleteRowClearsContent(t *testing.T) {
	term := testTerminal(t, Config{})
	if err := term.Print("Memory Test: 131072", 7); err != nil {
		t.Fatal(err)
	}
	term.DeleteRow(7)
	if got := term.Row(7); got != "" {
		t.Errorf("Row(7) = %q, expected cleared", got)
	}
	if term.CurRow() != 7 || term.CurCol() != 1 {
		t.Errorf("cursor = (%d,%d), expected (7,1)", term.CurRow(), term.CurCol())
	}
}

func TestClearFrameResetsState(t *testing.T) {
	term := testTerminal(t, Config{})
	if err := term.PrintOpts("\x1b[96mtext", 4, PrintOptions{Frames: 1}); err != nil {
		t.Fatal(err)
	}
	term.ClearFrame()
	if got := term.Row(4); got != "" {
		t.Errorf("Row(4) = %q, expected cleared", got)
	}
	if term.CurRow() != 1 || term.CurCol() != 1 {
		t.Errorf("cursor = (%d,%d), expected home", term.CurRow(), term.CurCol())
	}
	if err := term.Print("plain", 1); err != nil {
		t.Fatal(err)
	}
	if got := term.cellAt(1, 1).Style; got != (ansi.Style{}) {
		t.Errorf("style after ClearFrame = %#v, expected reset", got)
	}
}

func TestSetFontReshapesGrid(t *testing.T) {
	term := testTerminal(t, Config{})
	small := &Face{regular: basicfont.Face7x13, bold: basicfont.Face7x13}
	small.measure()
	oldCols := term.Cols()
	term.SetFont(small)
	if term.Cols() <= oldCols {
		t.Errorf("Cols() = %d after narrower font, expected more than %d", term.Cols(), oldCols)
	}
	term.ResetFont()
	if term.Cols() != oldCols {
		t.Errorf("Cols() = %d after ResetFont, expected %d", term.Cols(), oldCols)
	}
}

func TestFramesWrittenWithSequentialNames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	term := testTerminal(t, Config{
		Width: 200, Height: 100, XPad: 5, YPad: 5,
		FrameDir: dir, FrameBase: "frame_",
	})
	if err := term.Print("a", 1); err != nil {
		t.Fatal(err)
	}
	if err := term.CloneFrame(2); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		path := filepath.Join(dir, fmt.Sprintf("frame_%d.png", i))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("frame %d missing: %v", i, err)
		}
	}
}

func TestNewRecreatesFrameDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dir, "frame_999.png")
	if err := os.WriteFile(stale, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	testTerminal(t, Config{Width: 200, Height: 100, XPad: 5, YPad: 5, FrameDir: dir})
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale frame survived terminal construction")
	}
}

func TestSnapshotsRetainedWhenEnabled(t *testing.T) {
	term := testTerminal(t, Config{Width: 200, Height: 100, XPad: 5, YPad: 5, KeepSnapshots: true})
	if err := term.Print("hello", 1); err != nil {
		t.Fatal(err)
	}
	if err := term.CloneFrame(2); err != nil {
		t.Fatal(err)
	}
	snaps := term.Snapshots()
	if len(snaps) != 3 {
		t.Fatalf("Snapshots() returned %d frames, expected 3", len(snaps))
	}
	if snaps[0].Cells[0][0].Ch != 'h' {
		t.Errorf("snapshot cell = %q, expected h", snaps[0].Cells[0][0].Ch)
	}
}

func TestRenderBackgroundFill(t *testing.T) {
	scheme := ansi.Fallback()
	term := testTerminal(t, Config{Width: 100, Height: 60, XPad: 5, YPad: 5, Scheme: scheme})
	img := term.Render()
	r, g, b, _ := img.At(0, 0).RGBA()
	want := scheme.DefaultBg
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("corner pixel = (%d,%d,%d), expected background %v", r>>8, g>>8, b>>8, want)
	}
}

func TestNewRejectsBadSize(t *testing.T) {
	if _, err := New(Config{Width: 0, Height: 100}); err == nil {
		t.Error("New accepted zero width, expected error")
	}
}
