package homelab

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/kataras/homelab-tools/internal/platform"
	"github.com/kataras/homelab-tools/pkg/diagram"
)

// DefaultDiagramName is the file name, without extension, of the rendered
// architecture diagram.
const DefaultDiagramName = "hybrid_cloud_architecture"

// DiagramOptions configures RenderDiagram.
type DiagramOptions struct {
	Graph    *diagram.Graph // nil = diagram.HybridCloud()
	BaseName string         // defaults to DefaultDiagramName
	Format   string         // "png", "svg" or "jpg"; defaults to png
	Dir      string         // defaults to the working directory
	Fs       afero.Fs       // nil = OS filesystem
	Open     bool           // open the image with the OS viewer afterwards
	Logger   Logger         // nil = no logging
}

// DiagramResult describes the rendered image.
type DiagramResult struct {
	Path   string
	Format string
	Size   int
	Opened bool
}

// RenderDiagram renders a graph to <Dir>/<BaseName>.<Format>. Failing to open
// the image is reported as a warning only.
func RenderDiagram(ctx context.Context, opts DiagramOptions) (*DiagramResult, error) {
	log := logs{opts.Logger}

	if opts.Graph == nil {
		opts.Graph = diagram.HybridCloud()
	}
	if opts.BaseName == "" {
		opts.BaseName = DefaultDiagramName
	}
	if opts.Format == "" {
		opts.Format = diagram.FormatPNG
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	if err := diagram.ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	path := filepath.Join(opts.Dir, opts.BaseName+"."+opts.Format)

	log.info("Rendering %d nodes to %s...", len(opts.Graph.NodeIDs()), path)
	size, err := diagram.RenderFile(ctx, opts.Fs, path, opts.Graph, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("render diagram: %w", err)
	}

	result := &DiagramResult{Path: path, Format: opts.Format, Size: size}

	if opts.Open {
		if err := platform.Open(path); err != nil {
			log.warn("Could not open %s: %v", path, err)
		} else {
			result.Opened = true
		}
	}

	return result, nil
}
