package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/nucleron/yaplc/internal/locations"
	"github.com/nucleron/yaplc/internal/model"
	"github.com/nucleron/yaplc/internal/schema"
	"gopkg.in/yaml.v3"
)

var (
	nameColor   = color.New(color.FgCyan, color.Bold)
	faintColor  = color.New(color.Faint)
	okColor     = color.New(color.FgGreen)
	inputColor  = color.New(color.FgGreen)
	outputColor = color.New(color.FgYellow)
	memoryColor = color.New(color.FgMagenta)
)

// render writes v as JSON or YAML, or calls text for the text format.
func (st *state) render(w io.Writer, v any, text func(io.Writer) error) error {
	switch st.app.Config().OutputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

func kindColor(k locations.Kind) *color.Color {
	switch k {
	case locations.VarOutput:
		return outputColor
	case locations.VarMemory:
		return memoryColor
	case locations.VarInput:
		return inputColor
	default:
		return nameColor
	}
}

func writeTree(w io.Writer, root *locations.Node) error {
	var b strings.Builder
	root.Walk(func(n *locations.Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		if !n.Kind.IsVariable() {
			fmt.Fprintf(&b, "%s %s\n", nameColor.Sprint(n.Name), faintColor.Sprint("@"+n.Location))
			return
		}
		fmt.Fprintf(&b, "%s : %s", kindColor(n.Kind).Sprint(n.Name), n.IECType)
		if n.Description != "" {
			fmt.Fprintf(&b, " %s", faintColor.Sprintf("%q", n.Description))
		}
		b.WriteByte('\n')
	})
	_, err := io.WriteString(w, b.String())
	return err
}

func writeVariables(w io.Writer, vars []*locations.Node) error {
	var b strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&b, "%-16s %-6s %-16s %s\n", kindColor(v.Kind).Sprint(v.Name), v.IECType, v.VarName, v.Description)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// groupInfo is the structured form of a template group.
type groupInfo struct {
	Path         string   `json:"path" yaml:"path"`
	ID           string   `json:"id" yaml:"id"`
	Unique       bool     `json:"unique" yaml:"unique"`
	Parametrized bool     `json:"parametrized" yaml:"parametrized"`
	Locations    []string `json:"locations,omitempty" yaml:"locations,omitempty"`
}

func groupInfos(tpl *model.Template) []groupInfo {
	var out []groupInfo
	tpl.Walk(func(g *model.Group, _ int) bool {
		info := groupInfo{
			Path:         schema.GroupPath(tpl, g),
			ID:           g.ID.String(),
			Unique:       g.Unique,
			Parametrized: g.Parametrized(),
		}
		for _, l := range g.Locations() {
			info.Locations = append(info.Locations, l.String())
		}
		out = append(out, info)
		return true
	})
	return out
}

func writeGroups(w io.Writer, tpl *model.Template) error {
	var b strings.Builder
	tpl.Walk(func(g *model.Group, depth int) bool {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(&b, "%s%s\n", indent, nameColor.Sprint(g.String()))
		for _, l := range g.Locations() {
			fmt.Fprintf(&b, "%s  %s\n", indent, l.String())
		}
		return true
	})
	_, err := io.WriteString(w, b.String())
	return err
}

func writeDescriptors(w io.Writer, descs []*schema.Descriptor) error {
	var b strings.Builder
	for _, d := range descs {
		fmt.Fprintf(&b, "%s %s\n", nameColor.Sprint(d.Path), faintColor.Sprint("("+string(d.Node)+")"))
		for i := range d.Fields {
			fmt.Fprintf(&b, "  %s\n", d.Fields[i].String())
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
