// Package watch re-parses a template whenever its file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/nucleron/yaplc/internal/ctxlog"
	"github.com/nucleron/yaplc/internal/model"
	"github.com/nucleron/yaplc/internal/parser"
)

const reparseOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Run parses path with p, calls onChange with the result and then keeps
// watching the file's directory until ctx is done. Every change to the file
// triggers a re-parse; onChange only sees successful parses, failures are
// logged and the parser keeps its previous template.
//
// The initial parse must succeed.
func Run(ctx context.Context, path string, p *parser.Parser, onChange func(*model.Template)) error {
	logger := ctxlog.FromContext(ctx).With("component", "watcher", "path", path)

	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace the file, so the directory is watched instead.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	tpl, err := p.ParseFile(ctx, path)
	if err != nil {
		return err
	}
	onChange(tpl)
	logger.Info("Watching template.")

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watcher stopped.")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&reparseOps == 0 {
				continue
			}
			logger.Debug("Template changed.", "op", ev.Op.String())
			tpl, err := p.ParseFile(ctx, path)
			if err != nil {
				if errors.Is(err, parser.ErrTemplateNotFound) {
					logger.Debug("Template is gone, waiting for it to reappear.")
					continue
				}
				logger.Warn("Template re-parse failed, keeping the previous one.", "error", err)
				continue
			}
			logger.Info("Template reloaded.", "groups", tpl.Len())
			onChange(tpl)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error.", "error", err)
		}
	}
}
