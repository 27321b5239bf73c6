package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/huangsam/rtps/internal/contract"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	// Canvas formats register themselves with draw.NewFormattedCanvas.
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// WriterTo draws the figure on a canvas of the given size and format
// (an extension without the leading dot, e.g. "png").
func (f *Figure) WriterTo(w, h vg.Length, format string) (wt io.WriterTo, err error) {
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return nil, err
	}

	// Some canvases panic on degenerate geometry instead of returning errors
	defer func() {
		if r := recover(); r != nil {
			wt, err = nil, fmt.Errorf("draw %s: %v", format, r)
		}
	}()

	dc := draw.New(c)
	f.Plot.Draw(draw.Crop(dc, 0, -f.RightMargin, 0, 0))
	return c, nil
}

// Encode renders the figure in one format and returns the encoded bytes.
func (f *Figure) Encode(widthIn, heightIn float64, ext string) ([]byte, error) {
	wt, err := f.WriterTo(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", contract.ErrOutputWrite, ext, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", contract.ErrOutputWrite, ext, err)
	}
	return buf.Bytes(), nil
}

// Save writes the figure as <dir>/<basename><ext> for every format and
// returns the written paths in format order. Every format is encoded before
// anything touches the disk; if a write fails, files written so far are
// removed so a failed run leaves no partial output.
func Save(fig *Figure, widthIn, heightIn float64, dir, basename string, formats []string) ([]string, error) {
	if len(formats) == 0 {
		return nil, fmt.Errorf("%w: no output formats", contract.ErrOutputWrite)
	}

	encoded := make([][]byte, len(formats))
	for i, ext := range formats {
		data, err := fig.Encode(widthIn, heightIn, ext)
		if err != nil {
			return nil, err
		}
		encoded[i] = data
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", contract.ErrOutputWrite, dir, err)
	}

	written := make([]string, 0, len(formats))
	for i, ext := range formats {
		path := filepath.Join(dir, basename+ext)
		if err := os.WriteFile(path, encoded[i], 0o644); err != nil {
			return nil, errors.Join(
				fmt.Errorf("%w: %s: %w", contract.ErrOutputWrite, path, err),
				removeAll(written),
			)
		}
		written = append(written, path)
	}
	return written, nil
}

// removeAll deletes the given files, collecting every failure.
func removeAll(paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// viewerCommand returns the command that opens a file with the platform viewer.
func viewerCommand(goos, path string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// Show opens a written figure with the platform viewer without waiting for it.
func Show(path string) error {
	cmd := viewerCommand(runtime.GOOS, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return cmd.Process.Release()
}
