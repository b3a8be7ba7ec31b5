package app

import (
	"context"

	"github.com/nucleron/yaplc/internal/ctxlog"
	"github.com/nucleron/yaplc/internal/locations"
	"github.com/nucleron/yaplc/internal/model"
	"github.com/nucleron/yaplc/internal/publish"
	"github.com/nucleron/yaplc/internal/watch"
)

// Build loads the template and flattens it into a variable tree.
func (a *App) Build(ctx context.Context) (*model.Template, *locations.Node, error) {
	tpl, err := a.LoadTemplate(ctx)
	if err != nil {
		return nil, nil, err
	}
	root, err := a.Tree(ctx, tpl)
	if err != nil {
		return tpl, nil, err
	}
	return tpl, root, nil
}

// Watch follows the template until ctx is done and hands every successfully
// rebuilt tree to onTree. A tree that fails to build, or that onTree
// rejects, is logged and the watch goes on.
func (a *App) Watch(ctx context.Context, onTree func(*locations.Node) error) error {
	path, err := a.TemplatePath(ctx)
	if err != nil {
		return err
	}
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)

	return watch.Run(ctx, path, a.parser, func(tpl *model.Template) {
		root, err := a.Tree(ctx, tpl)
		if err != nil {
			logger.Warn("Variable tree build failed.", "error", err)
			return
		}
		if err := onTree(root); err != nil {
			logger.Warn("Variable tree update failed.", "error", err)
		}
	})
}

// Dial connects a publisher using the app's logger.
func (a *App) Dial(ctx context.Context, opts publish.Options) (*publish.Publisher, error) {
	return publish.Dial(a.Context(ctx), opts)
}
