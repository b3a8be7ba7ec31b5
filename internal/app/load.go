package app

import (
	"context"

	"github.com/nucleron/yaplc/internal/ctxlog"
	"github.com/nucleron/yaplc/internal/locations"
	"github.com/nucleron/yaplc/internal/model"
	"github.com/nucleron/yaplc/internal/project"
	"github.com/nucleron/yaplc/internal/targets"
)

// Project loads the configured project file once. It returns nil without an
// error when no project file is configured.
func (a *App) Project(ctx context.Context) (*project.Project, error) {
	a.projectOnce.Do(func() {
		if a.config.ProjectPath == "" {
			return
		}
		a.project, a.projectErr = project.Load(a.Context(ctx), a.config.ProjectPath)
	})
	return a.project, a.projectErr
}

// Resolver returns the target resolver for the effective targets directory:
// the configured one, else the project's, else DefaultTargetsDir.
func (a *App) Resolver(ctx context.Context) (*targets.Resolver, error) {
	p, err := a.Project(ctx)
	if err != nil {
		return nil, err
	}
	dir := a.config.TargetsDir
	if dir == "" && p != nil {
		dir = p.TargetsDir
	}
	if dir == "" {
		dir = DefaultTargetsDir
	}
	return targets.NewResolver(dir), nil
}

// Targets lists the targets that ship a template.
func (a *App) Targets(ctx context.Context) ([]string, error) {
	r, err := a.Resolver(ctx)
	if err != nil {
		return nil, err
	}
	return r.List(a.Context(ctx))
}

// TemplatePath decides which template file to parse. An explicit template
// wins over the project's, which wins over the selected target's.
func (a *App) TemplatePath(ctx context.Context) (string, error) {
	if a.config.TemplatePath != "" {
		return a.config.TemplatePath, nil
	}
	p, err := a.Project(ctx)
	if err != nil {
		return "", err
	}
	if p != nil && p.Template != "" {
		return p.Template, nil
	}

	target := a.config.Target
	if target == "" && p != nil {
		target = p.Target
	}
	r, err := a.Resolver(ctx)
	if err != nil {
		return "", err
	}
	return r.TemplatePath(a.Context(ctx), target)
}

// LoadTemplate resolves and parses the template.
func (a *App) LoadTemplate(ctx context.Context) (*model.Template, error) {
	path, err := a.TemplatePath(ctx)
	if err != nil {
		return nil, err
	}
	ctx = a.Context(ctx)
	ctxlog.FromContext(ctx).Debug("Loading template.", "path", path)
	return a.parser.ParseFile(ctx, path)
}

// Tree flattens tpl with the project's selections, or just its static
// content when there is no project.
func (a *App) Tree(ctx context.Context, tpl *model.Template) (*locations.Node, error) {
	p, err := a.Project(ctx)
	if err != nil {
		return nil, err
	}

	var (
		instances []*locations.Instance
		opts      locations.Options
	)
	if p != nil {
		if instances, err = p.Instances(tpl); err != nil {
			return nil, err
		}
		opts = p.Options()
	}
	return locations.Build(a.Context(ctx), tpl, instances, opts)
}
