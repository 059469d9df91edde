package univariate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure is a rendered figure waiting to be displayed.
type Figure struct {
	Title  string
	Width  vg.Length
	Height vg.Length

	canvas  *vgimg.Canvas
	encoded []byte
}

func newCanvasFigure(title string, c *vgimg.Canvas) *Figure {
	w, h := c.Size()
	return &Figure{Title: title, Width: w, Height: h, canvas: c}
}

func newEncodedFigure(title string, w, h vg.Length, png []byte) *Figure {
	return &Figure{Title: title, Width: w, Height: h, encoded: png}
}

// Inches returns the figure size in inches.
func (f *Figure) Inches() (w, h float64) {
	return float64(f.Width / vg.Inch), float64(f.Height / vg.Inch)
}

// WritePNG encodes the figure as PNG into w.
func (f *Figure) WritePNG(w io.Writer) error {
	if f.encoded != nil {
		_, err := w.Write(f.encoded)
		return err
	}
	if f.canvas == nil {
		return fmt.Errorf("figure %q has no canvas", f.Title)
	}
	_, err := vgimg.PngCanvas{Canvas: f.canvas}.WriteTo(w)
	return err
}

// PNG returns the PNG encoding of the figure.
func (f *Figure) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.WritePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Backend displays rendered figures. It plays the role of a plotting
// library's configured output: a window, an inline image or a file.
type Backend interface {
	Show(ctx context.Context, fig *Figure) error
}

// MemoryBackend keeps every shown figure in memory.
type MemoryBackend struct {
	mu      sync.Mutex
	figures []*Figure
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Show(ctx context.Context, fig *Figure) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.figures = append(b.figures, fig)
	return nil
}

// Figures returns the shown figures in display order.
func (b *MemoryBackend) Figures() []*Figure {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Figure, len(b.figures))
	copy(out, b.figures)
	return out
}

// Last returns the most recently shown figure, or nil.
func (b *MemoryBackend) Last() *Figure {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.figures) == 0 {
		return nil
	}
	return b.figures[len(b.figures)-1]
}

// Reset forgets all shown figures.
func (b *MemoryBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.figures = nil
}

// WriterBackend streams each shown figure as PNG to W.
type WriterBackend struct {
	W io.Writer
}

func (b WriterBackend) Show(ctx context.Context, fig *Figure) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fig.WritePNG(b.W)
}

// DirBackend writes shown figures to Dir as figure-001.png, figure-002.png...
type DirBackend struct {
	Dir string

	mu    sync.Mutex
	paths []string
}

// NewDirBackend creates a backend writing into dir.
func NewDirBackend(dir string) *DirBackend {
	return &DirBackend{Dir: dir}
}

func (b *DirBackend) Show(ctx context.Context, fig *Figure) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(b.Dir, 0755); err != nil {
		return fmt.Errorf("create figure directory: %w", err)
	}

	path := filepath.Join(b.Dir, fmt.Sprintf("figure-%03d.png", len(b.paths)+1))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create figure file: %w", err)
	}
	if err := fig.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("write figure %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	b.paths = append(b.paths, path)
	return nil
}

// Paths returns the files written so far.
func (b *DirBackend) Paths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.paths))
	copy(out, b.paths)
	return out
}
