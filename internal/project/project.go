// Package project loads a YAPLC project file.
//
// The project file is HCL. It names the target whose template is used and
// records the user's choices for the template's parametrized groups and
// locations as nested blocks:
//
//	target   = "nuc242"
//	name     = "YAPLC"
//	location = [0]
//
//	group "Counter" {
//	  group "Cnt" {
//	    values = { n = 1 }
//	    location "Value" {}
//	  }
//	}
package project

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/nucleron/yaplc/internal/ctxlog"
	"github.com/nucleron/yaplc/internal/locations"
)

// DefaultFileName is the project file looked up when none is given.
const DefaultFileName = "yaplc.hcl"

// Project is a decoded project file. Relative paths are resolved against
// the directory of the file.
type Project struct {
	Path       string
	Target     string
	TargetsDir string
	Template   string
	Name       string
	Location   []int

	groups []*groupBlock
}

// fileRoot is the top-level structure of a project file for decoding.
type fileRoot struct {
	Target     string        `hcl:"target,optional"`
	TargetsDir string        `hcl:"targets_dir,optional"`
	Template   string        `hcl:"template,optional"`
	Name       string        `hcl:"name,optional"`
	Location   []int         `hcl:"location,optional"`
	Groups     []*groupBlock `hcl:"group,block"`
}

type groupBlock struct {
	Name      string           `hcl:"name,label"`
	Values    hcl.Expression   `hcl:"values,optional"`
	Groups    []*groupBlock    `hcl:"group,block"`
	Locations []*locationBlock `hcl:"location,block"`
}

type locationBlock struct {
	Name   string         `hcl:"name,label"`
	Values hcl.Expression `hcl:"values,optional"`
}

// Load parses and decodes the project file at path.
func Load(ctx context.Context, path string) (*Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading project file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode project file %s: %w", path, diags)
	}
	for _, v := range root.Location {
		if v < 0 {
			return nil, fmt.Errorf("project file %s: location must hold non-negative integers", path)
		}
	}

	dir := filepath.Dir(path)
	p := &Project{
		Path:       path,
		Target:     root.Target,
		TargetsDir: resolve(dir, root.TargetsDir),
		Template:   resolve(dir, root.Template),
		Name:       root.Name,
		Location:   root.Location,
		groups:     root.Groups,
	}
	logger.Debug("Project file loaded.", "target", p.Target, "groups", len(p.groups))
	return p, nil
}

// Options returns the tree options recorded in the project.
func (p *Project) Options() locations.Options {
	return locations.Options{Name: p.Name, BaseLocation: p.Location}
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
