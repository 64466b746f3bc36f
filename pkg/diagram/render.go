package diagram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/afero"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatJPG = "jpg"
)

var formats = map[string]graphviz.Format{
	FormatPNG: graphviz.PNG,
	FormatSVG: graphviz.SVG,
	FormatJPG: graphviz.JPG,
}

// ValidateFormat reports whether format can be rendered.
func ValidateFormat(format string) error {
	if _, ok := formats[format]; !ok {
		return fmt.Errorf("invalid image format %q (must be png, svg, or jpg)", format)
	}
	return nil
}

// Render lays out the DOT source with the dot engine and writes the image
// in the given format to w.
func Render(ctx context.Context, dot []byte, format string, w io.Writer) error {
	gvFormat, ok := formats[format]
	if !ok {
		return ValidateFormat(format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialise graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes(dot)
	if err != nil {
		return fmt.Errorf("failed to parse DOT source: %w", err)
	}
	defer graph.Close()

	if err := gv.Render(ctx, graph, gvFormat, w); err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}
	return nil
}

// RenderFile renders g and writes the image to path on fs. The file is only
// created once rendering succeeded, so a failure never leaves a partial image.
func RenderFile(ctx context.Context, fs afero.Fs, path string, g *Graph, format string) (int, error) {
	var buf bytes.Buffer
	if err := Render(ctx, []byte(ToDOT(g)), format, &buf); err != nil {
		return 0, err
	}
	if buf.Len() == 0 {
		return 0, fmt.Errorf("graphviz produced an empty %s image", format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create output directory %q: %w", dir, err)
		}
	}

	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write file %q: %w", path, err)
	}
	return buf.Len(), nil
}
