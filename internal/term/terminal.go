package term

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/fynn9563/bootgif/internal/ansi"
)

// Config is the explicit construction state for a Terminal. It is passed to
// New directly; the canvas reads nothing from the process environment.
type Config struct {
	Width  int // frame width in pixels
	Height int // frame height in pixels
	XPad   int // horizontal padding in pixels
	YPad   int // vertical padding in pixels
	FPS    int

	Cursor      rune
	ShowCursor  bool
	BlinkCursor bool

	Scheme *ansi.Scheme
	Font   *Face

	// FrameDir receives one PNG per emitted frame. Empty disables file
	// output. FrameBase is the filename prefix before the frame index.
	FrameDir  string
	FrameBase string

	// KeepSnapshots retains an in-memory copy of every emitted frame for
	// replay surfaces that do not read PNGs.
	KeepSnapshots bool

	Debug  bool
	Logger *log.Logger
}

// Terminal is the stateful canvas the boot script drives. It owns the cell
// grid, the cursor, the active font, the prompt string and the ever-growing
// frame sequence.
type Terminal struct {
	cfg    Config
	scheme *ansi.Scheme

	baseFont *Face
	font     *Face

	rows, cols int
	grid       [][]Cell
	overlays   []overlay

	curRow, curCol int
	showCursor     bool
	style          ansi.Style
	prompt         string

	frameCount int
	snapshots  []*Snapshot

	logger *log.Logger
}

// overlay is an image pasted at a grid position, drawn under the text on
// every subsequent frame until the next ClearFrame.
type overlay struct {
	img      image.Image
	row, col int
}

// Snapshot is an in-memory copy of one emitted frame.
type Snapshot struct {
	Rows, Cols     int
	Cells          [][]Cell
	CurRow, CurCol int
	CursorShown    bool
}

// PrintOptions controls a single Print call. A zero Col places the text at
// column 1, or at the current cursor column when Keep is set. Frames is the
// number of identical frames emitted after the write; zero emits none. Keep
// preserves the rows below the target row, which are otherwise cleared.
type PrintOptions struct {
	Col    int
	Frames int
	Keep   bool
}

// New builds a Terminal from cfg. When cfg.FrameDir is set it is recreated
// empty, so every run starts from frame 1.
func New(cfg Config) (*Terminal, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("term: invalid canvas size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Font == nil {
		cfg.Font = BuiltinFace()
	}
	if cfg.Scheme == nil {
		cfg.Scheme = ansi.Fallback()
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 15
	}
	if cfg.Cursor == 0 {
		cfg.Cursor = '_'
	}
	if cfg.FrameBase == "" {
		cfg.FrameBase = "frame_"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	if cfg.FrameDir != "" {
		if err := os.RemoveAll(cfg.FrameDir); err != nil {
			return nil, fmt.Errorf("term: reset frame dir %s: %w", cfg.FrameDir, err)
		}
		if err := os.MkdirAll(cfg.FrameDir, 0o755); err != nil {
			return nil, fmt.Errorf("term: create frame dir %s: %w", cfg.FrameDir, err)
		}
	}

	t := &Terminal{
		cfg:        cfg,
		scheme:     cfg.Scheme,
		baseFont:   cfg.Font,
		font:       cfg.Font,
		curRow:     1,
		curCol:     1,
		showCursor: cfg.ShowCursor,
		logger:     cfg.Logger,
	}
	t.reshape()
	t.grid = newGrid(t.rows, t.cols)
	return t, nil
}

// reshape recomputes the grid dimensions from the canvas size and the
// active font's cell metrics.
func (t *Terminal) reshape() {
	w, h := t.font.CellSize()
	t.cols = (t.cfg.Width - 2*t.cfg.XPad) / w
	t.rows = (t.cfg.Height - 2*t.cfg.YPad) / h
	if t.cols < 1 {
		t.cols = 1
	}
	if t.rows < 1 {
		t.rows = 1
	}
}

// Rows returns the grid height under the active font.
func (t *Terminal) Rows() int { return t.rows }

// Cols returns the grid width under the active font.
func (t *Terminal) Cols() int { return t.cols }

// CurRow returns the 1-based cursor row.
func (t *Terminal) CurRow() int { return t.curRow }

// CurCol returns the 1-based cursor column.
func (t *Terminal) CurCol() int { return t.curCol }

// FrameCount returns the number of frames emitted so far.
func (t *Terminal) FrameCount() int { return t.frameCount }

// Snapshots returns the retained frame snapshots.
func (t *Terminal) Snapshots() []*Snapshot { return t.snapshots }

// SetPrompt sets the string Prompt draws. It may contain SGR color codes.
func (t *Terminal) SetPrompt(prompt string) { t.prompt = prompt }

// ToggleShowCursor turns cursor drawing on or off.
func (t *Terminal) ToggleShowCursor(show bool) { t.showCursor = show }

// SetFont switches the active font and reshapes the grid, preserving the
// cells that still fit.
func (t *Terminal) SetFont(f *Face) {
	if f == nil {
		return
	}
	old := t.grid
	oldRows, oldCols := t.rows, t.cols
	t.font = f
	t.reshape()
	t.grid = newGrid(t.rows, t.cols)
	for r := 0; r < minInt(oldRows, t.rows); r++ {
		for c := 0; c < minInt(oldCols, t.cols); c++ {
			t.grid[r][c] = old[r][c]
		}
	}
	if t.curRow > t.rows {
		t.curRow = t.rows
	}
	if t.curCol > t.cols {
		t.curCol = t.cols
	}
}

// ResetFont restores the font the terminal was constructed with.
func (t *Terminal) ResetFont() { t.SetFont(t.baseFont) }

// Print writes s at the start of row, clears everything below and emits one
// frame.
func (t *Terminal) Print(s string, row int) error {
	return t.PrintOpts(s, row, PrintOptions{Frames: 1})
}

// PrintOpts writes s at row under opts. The text may contain SGR codes;
// attribute state persists across calls until reset. Newlines continue on
// the next row at the starting column.
func (t *Terminal) PrintOpts(s string, row int, opts PrintOptions) error {
	col := opts.Col
	if col <= 0 {
		if opts.Keep {
			col = t.curCol
		} else {
			col = 1
		}
	}
	t.drawString(s, row, col)
	if !opts.Keep {
		t.clearBelow(t.curRow)
	}
	return t.emitFrames(opts.Frames)
}

// TypeText writes s one visible rune at a time, emitting a frame per rune.
// Typing continues at the current cursor position when row is the cursor
// row, and never clears other rows.
func (t *Terminal) TypeText(s string, row int) error {
	col := 1
	if row == t.curRow {
		col = t.curCol
	}
	segs, end := ansi.Parse(s, t.style)
	for _, seg := range segs {
		for _, r := range seg.Text {
			t.setCell(row, col, Cell{Ch: r, Style: seg.Style})
			col++
			t.curRow, t.curCol = row, col
			if err := t.emitFrames(1); err != nil {
				return err
			}
		}
	}
	t.style = end
	t.curRow, t.curCol = row, col
	return nil
}

// Prompt draws the prompt at the start of row, clears everything below and
// emits one frame. The cursor lands just after the prompt.
func (t *Terminal) Prompt(row int) error {
	return t.PromptN(row, 1)
}

// PromptN is Prompt emitting count frames.
func (t *Terminal) PromptN(row, count int) error {
	t.drawString(t.prompt, row, 1)
	t.clearBelow(row)
	return t.emitFrames(count)
}

// CloneFrame re-emits the current state count times.
func (t *Terminal) CloneFrame(count int) error {
	return t.emitFrames(count)
}

// DeleteRow clears row and moves the cursor to its start.
func (t *Terminal) DeleteRow(row int) {
	t.DeleteRowFrom(row, 1)
}

// DeleteRowFrom clears row from col to the right edge and moves the cursor
// to (row, col).
func (t *Terminal) DeleteRowFrom(row, col int) {
	if row < 1 || row > t.rows {
		return
	}
	for c := col; c <= t.cols; c++ {
		t.setCell(row, c, blank)
	}
	t.curRow, t.curCol = row, col
}

// ClearFrame blanks the grid, drops pasted images, resets attribute state
// and homes the cursor. It emits no frame.
func (t *Terminal) ClearFrame() {
	clearGrid(t.grid)
	t.overlays = nil
	t.style = ansi.Style{}
	t.curRow, t.curCol = 1, 1
}

// PasteImage loads an image file, scales it by mult and anchors it at the
// pixel position of (row, col). The image shows on every frame until the
// next ClearFrame.
func (t *Terminal) PasteImage(path string, row, col int, mult float64) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("term: open image %s: %w", path, err)
	}
	if mult > 0 && mult != 1 {
		w := int(float64(img.Bounds().Dx()) * mult)
		if w < 1 {
			w = 1
		}
		img = imaging.Resize(img, w, 0, imaging.Lanczos)
	}
	t.overlays = append(t.overlays, overlay{img: img, row: row, col: col})
	return nil
}

// drawString parses s and writes its visible runes starting at (row, col),
// leaving the cursor after the last rune. Attribute state carries over to
// the next call.
func (t *Terminal) drawString(s string, row, col int) {
	segs, end := ansi.Parse(s, t.style)
	r, c := row, col
	for _, seg := range segs {
		for _, ch := range seg.Text {
			if ch == '\n' {
				r++
				c = col
				continue
			}
			t.setCell(r, c, Cell{Ch: ch, Style: seg.Style})
			c++
		}
	}
	t.style = end
	t.curRow, t.curCol = r, c
}

func (t *Terminal) setCell(row, col int, cell Cell) {
	if row < 1 || row > t.rows || col < 1 || col > t.cols {
		return
	}
	t.grid[row-1][col-1] = cell
}

// cellAt returns the cell at the 1-based position, or a blank outside the
// grid.
func (t *Terminal) cellAt(row, col int) Cell {
	if row < 1 || row > t.rows || col < 1 || col > t.cols {
		return blank
	}
	return t.grid[row-1][col-1]
}

// clearBelow blanks every row under row.
func (t *Terminal) clearBelow(row int) {
	for r := row + 1; r <= t.rows; r++ {
		for c := 1; c <= t.cols; c++ {
			t.setCell(r, c, blank)
		}
	}
}

// cursorVisible reports whether the cursor should be drawn on the frame
// about to be emitted. Blinking holds each phase for half a second.
func (t *Terminal) cursorVisible() bool {
	if !t.showCursor {
		return false
	}
	if !t.cfg.BlinkCursor {
		return true
	}
	half := t.cfg.FPS / 2
	if half < 1 {
		half = 1
	}
	return (t.frameCount/half)%2 == 0
}

// emitFrames renders the current state count times. Each emission advances
// the frame counter, so a blinking cursor toggles across clones.
func (t *Terminal) emitFrames(count int) error {
	for i := 0; i < count; i++ {
		if err := t.emitFrame(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Terminal) emitFrame() error {
	t.frameCount++
	if t.cfg.FrameDir != "" {
		path, err := t.writeFrame(t.frameCount)
		if err != nil {
			return err
		}
		if t.cfg.Debug {
			t.logger.Debug("frame generated", "path", path)
		}
	}
	if t.cfg.KeepSnapshots {
		t.snapshots = append(t.snapshots, t.snapshot())
	}
	return nil
}

// snapshot copies the visible state of the frame just emitted.
func (t *Terminal) snapshot() *Snapshot {
	cells := make([][]Cell, t.rows)
	for r := range cells {
		cells[r] = make([]Cell, t.cols)
		copy(cells[r], t.grid[r])
	}
	return &Snapshot{
		Rows:        t.rows,
		Cols:        t.cols,
		Cells:       cells,
		CurRow:      t.curRow,
		CurCol:      t.curCol,
		CursorShown: t.cursorVisible(),
	}
}

// Row returns the visible text of a row with trailing blanks trimmed.
func (t *Terminal) Row(row int) string {
	if row < 1 || row > t.rows {
		return ""
	}
	var b strings.Builder
	for c := 1; c <= t.cols; c++ {
		b.WriteRune(t.cellAt(row, c).Ch)
	}
	return strings.TrimRight(b.String(), " ")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
