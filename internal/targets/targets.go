// Package targets locates the location template of a build target.
//
// Targets live in a directory tree, one directory per target, each holding
// its template as TemplateFile:
//
//	targets/
//	  nuc242/extensions.cfg
//	  nuc243/extensions.cfg
package targets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nucleron/yaplc/internal/ctxlog"
	"github.com/nucleron/yaplc/internal/fsutil"
	"github.com/nucleron/yaplc/internal/suggest"
)

// TemplateFile is the file name of a target's template.
const TemplateFile = "extensions.cfg"

// ErrUnknownTarget is wrapped by errors for targets without a template.
var ErrUnknownTarget = errors.New("unknown target")

// Resolver finds targets below Dir.
type Resolver struct {
	Dir string
}

// NewResolver creates a resolver for the targets directory dir.
func NewResolver(dir string) *Resolver {
	return &Resolver{Dir: dir}
}

// List returns the sorted names of all targets that have a template. Nested
// targets are named by their slash-separated relative path.
func (r *Resolver) List(ctx context.Context) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Listing targets.", "dir", r.Dir)

	files, err := fsutil.FindFilesByName(r.Dir, TemplateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets in %s: %w", r.Dir, err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(r.Dir, filepath.Dir(f))
		if err != nil || rel == "." {
			continue
		}
		names = append(names, filepath.ToSlash(rel))
	}
	logger.Debug("Targets found.", "count", len(names))
	return names, nil
}

// TemplatePath returns the template of target. A target without a template
// yields an error wrapping ErrUnknownTarget that names the closest known
// target.
func (r *Resolver) TemplatePath(ctx context.Context, target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("%w: no target selected", ErrUnknownTarget)
	}
	path := filepath.Join(r.Dir, filepath.FromSlash(target), TemplateFile)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, nil
	}

	known, err := r.List(ctx)
	if err != nil {
		known = nil
	}
	return "", fmt.Errorf("%w %q: target doesn't support YAPLC features%s",
		ErrUnknownTarget, target, suggest.Hint(target, known))
}
