// Package emitter holds the contract shared by the test emitters and the
// derivation rules every backend applies identically: expected status,
// fixture dependency, path substitution and the sample payload.
package emitter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhaage/swagger-test-generator/internal/spec"
)

// DefaultBaseURL is used when no base URL override is supplied by callers
// that need one, such as the CLI.
const DefaultBaseURL = "http://localhost:3000"

// Generator renders a test suite for one target ecosystem.
type Generator interface {
	// Name is the framework kind, e.g. "native-async-client".
	Name() string
	// GenerateTests writes the suite for s into opts.OutDir. s is never mutated.
	GenerateTests(ctx context.Context, s *spec.SwaggerSpec, opts Options) (*Result, error)
}

// Options controls where and how an emitter writes its files.
type Options struct {
	OutDir  string // required; created when absent
	BaseURL string // host override; the document's base path is appended
	DryRun  bool   // plan only, no writes
	Logger  *slog.Logger
}

func (o Options) Log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// File is one rendered artifact, relative to the output directory.
type File struct {
	RelPath string
	Content []byte
}

// PlannedFile describes a file the emitter intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Result returns the planned files and the resolved base URL.
type Result struct {
	OutDir  string
	BaseURL string
	Planned []PlannedFile
}

// Emit plans files in the given order and writes them unless opts.DryRun is
// set. Writes stop at the first failure; files already written stay on disk.
func Emit(ctx context.Context, name string, files []File, baseURL string, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, &GeneratorError{Code: IOError, Message: fmt.Sprintf("%s: output directory is required", name)}
	}
	planned := make([]PlannedFile, 0, len(files))
	for _, f := range files {
		planned = append(planned, PlannedFile{RelPath: filepath.ToSlash(f.RelPath), Size: len(f.Content), Mode: 0o644})
	}
	res := &Result{OutDir: opts.OutDir, BaseURL: baseURL, Planned: planned}
	if opts.DryRun {
		opts.Log().Debug("dry run, skipping writes", "emitter", name, "files", len(files))
		return res, nil
	}
	if err := WriteFiles(ctx, opts.OutDir, files, opts.Log()); err != nil {
		return nil, err
	}
	opts.Log().Info("generated tests", "emitter", name, "out_dir", opts.OutDir, "files", len(files))
	return res, nil
}

// WriteFiles creates outDir and writes files sequentially, replacing any
// existing file of the same name.
func WriteFiles(ctx context.Context, outDir string, files []File, log *slog.Logger) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return &GeneratorError{Code: IOError, Message: fmt.Sprintf("create output directory %s: %v", outDir, err), Path: outDir, Cause: err}
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := filepath.Join(outDir, f.RelPath)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return &GeneratorError{Code: IOError, Message: fmt.Sprintf("mkdir %s: %v", filepath.Dir(p), err), Path: p, Cause: err}
		}
		// atomic write via temp file + rename
		tmp := p + ".tmp"
		if err := os.WriteFile(tmp, f.Content, 0o644); err != nil {
			return &GeneratorError{Code: IOError, Message: fmt.Sprintf("write %s: %v", f.RelPath, err), Path: p, Cause: err}
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return &GeneratorError{Code: IOError, Message: fmt.Sprintf("rename %s: %v", f.RelPath, err), Path: p, Cause: err}
		}
		log.Debug("wrote file", "path", p, "bytes", len(f.Content))
	}
	return nil
}
