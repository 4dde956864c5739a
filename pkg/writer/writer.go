// Package writer stores an extracted layer document on disk, guarding
// existing files behind an overwrite confirmation.
package writer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tiledtools/tiled-extractor/pkg/extractor"

	"gopkg.in/yaml.v3"
)

// Format selects the output serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (must be json or yaml)", s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Prompter decides whether an existing output file may be replaced.
// Injecting it keeps the store operation testable without a console.
type Prompter interface {
	ConfirmReplace(name string) bool
}

// ConsolePrompter asks on Out and reads answers from In until the user
// gives a definitive y or n. Any other input re-prompts.
type ConsolePrompter struct {
	In  io.Reader
	Out io.Writer
}

// ConfirmReplace runs the prompt loop. End of input counts as a refusal.
func (p *ConsolePrompter) ConfirmReplace(name string) bool {
	scanner := bufio.NewScanner(p.In)
	for {
		fmt.Fprint(p.Out, "Do you want to replace the file? [ y | n ] ")
		if !scanner.Scan() {
			return false
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "y", "Y":
			return true
		case "n", "N":
			return false
		}
	}
}

// AutoApprove is a Prompter that always answers yes, backing
// non-interactive runs.
type AutoApprove struct{}

// ConfirmReplace always approves.
func (AutoApprove) ConfirmReplace(string) bool { return true }

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Options configures one store operation.
type Options struct {
	Name     string   // output file name, without extension
	DestDir  string   // destination directory; empty means the working directory
	Format   Format   // empty means FormatJSON
	Prompter Prompter // nil means a ConsolePrompter on stdin/stdout
	Logger   Logger
}

// Store writes doc to <DestDir>/<Name>.<ext>.
//
// The file is first created exclusively. If it already exists the Prompter
// is consulted; a refusal ends the operation quietly. A missing
// destination directory also ends the operation quietly, after naming the
// attempted path. Only unexpected failures are returned as errors.
func Store(doc *extractor.Document, opts Options) error {
	if opts.Name == "" {
		return fmt.Errorf("store: output name is required")
	}
	if opts.DestDir == "" {
		opts.DestDir = "."
	}
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if opts.Prompter == nil {
		opts.Prompter = &ConsolePrompter{In: os.Stdin, Out: os.Stdout}
	}

	path := filepath.Join(opts.DestDir, opts.Name+"."+opts.Format.Ext())

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	switch {
	case err == nil:
		f.Close()
	case os.IsExist(err):
		logInfo(opts.Logger, "The file %q already exists.", opts.Name)
		if !opts.Prompter.ConfirmReplace(opts.Name) {
			logInfo(opts.Logger, "End of processing.")
			return nil
		}
	case os.IsNotExist(err):
		// Destination directory does not exist.
		logWarn(opts.Logger, "The path you entered was not found: %s", path)
		logInfo(opts.Logger, "End of processing.")
		return nil
	default:
		return fmt.Errorf("create output file %s: %w", path, err)
	}

	data, err := Encode(doc, opts.Format)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output file %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	logInfo(opts.Logger, "Wrote %s", abs)
	logInfo(opts.Logger, "End of processing.")
	return nil
}

// Encode serializes doc in the given format, pretty-printed with a
// two-space indent.
func Encode(doc *extractor.Document, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", f)
	}
}

func logInfo(l Logger, format string, args ...any) {
	if l != nil {
		l.Infof(format, args...)
	}
}

func logWarn(l Logger, format string, args ...any) {
	if l != nil {
		l.Warnf(format, args...)
	}
}
