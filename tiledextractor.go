package tiledextractor

import (
	"fmt"
	"path/filepath"

	"github.com/tiledtools/tiled-extractor/pkg/extractor"
	"github.com/tiledtools/tiled-extractor/pkg/tiled"
	"github.com/tiledtools/tiled-extractor/pkg/writer"
)

// Options configures the conversion.
type Options struct {
	InputPath             string // path to the Tiled JSON export, resolved against the working directory
	ImageOriginCorrection bool   // tile y becomes y-height (bottom-left anchor to top-left)
	RelativeImagePaths    bool   // strip leading ".." segments from resolved image paths
	Logger                Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the conversion output.
type Result struct {
	Document  *extractor.Document
	InputPath string // absolute path of the parsed map file

	logger Logger
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

// Run reads the Tiled export named in opts and extracts its layer
// document. Storing the result is a separate step, see [Result.Store].
func Run(opts Options) (*Result, error) {
	abs, err := filepath.Abs(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("resolve input path: %w", err)
	}

	opts.logInfo("Reading %s...", abs)
	m, err := tiled.Load(abs)
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}
	opts.logInfo("Parsed %d layer(s), %d tileset(s)", len(m.Layers), len(m.Tilesets))

	doc, err := extractor.Extract(m, extractor.Config{
		ImageOriginCorrection: opts.ImageOriginCorrection,
		RelativeImagePaths:    opts.RelativeImagePaths,
	})
	if err != nil {
		return nil, fmt.Errorf("extract layers: %w", err)
	}

	counts := doc.CountByKind()
	opts.logInfo("Extracted %d layer(s): %d plain, %d shape, %d tile record(s)",
		len(doc.Layers),
		counts[extractor.KindPlain],
		counts[extractor.KindShape],
		counts[extractor.KindTile])

	return &Result{
		Document:  doc,
		InputPath: abs,
		logger:    opts.Logger,
	}, nil
}

// StoreOptions configures Result.Store.
type StoreOptions struct {
	Name     string          // output file name, without extension (required)
	DestDir  string          // destination directory; empty means the working directory
	Format   writer.Format   // empty means JSON
	Prompter writer.Prompter // nil means an interactive console prompt
}

// Store writes the extracted document per the overwrite protocol: the
// output file is created exclusively, an existing file triggers the
// Prompter, and a missing destination directory aborts the store with a
// message rather than an error.
func (r *Result) Store(opts StoreOptions) error {
	return writer.Store(r.Document, writer.Options{
		Name:     opts.Name,
		DestDir:  opts.DestDir,
		Format:   opts.Format,
		Prompter: opts.Prompter,
		Logger:   r.logger,
	})
}
