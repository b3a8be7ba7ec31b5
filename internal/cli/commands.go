package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nucleron/yaplc/internal/codegen"
	"github.com/nucleron/yaplc/internal/expand"
	"github.com/nucleron/yaplc/internal/locations"
	"github.com/nucleron/yaplc/internal/model"
	"github.com/nucleron/yaplc/internal/publish"
	"github.com/nucleron/yaplc/internal/schema"
	"github.com/nucleron/yaplc/internal/suggest"
	"github.com/spf13/cobra"
)

func targetsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the targets that ship a location template",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := st.app.Targets(cmd.Context())
			if err != nil {
				return err
			}
			return st.render(cmd.OutOrStdout(), list, func(w io.Writer) error {
				for _, t := range list {
					fmt.Fprintln(w, t)
				}
				return nil
			})
		},
	}
}

func checkCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Parse the template and build the variable tree",
		Long: `check parses the selected template and, when a project file is in use,
validates its group and location selections against the template.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, root, err := st.app.Build(cmd.Context())
			if err != nil {
				return err
			}
			summary := struct {
				Template  string `json:"template" yaml:"template"`
				Groups    int    `json:"groups" yaml:"groups"`
				Variables int    `json:"variables" yaml:"variables"`
			}{tpl.Source, tpl.Len(), len(root.Variables())}

			return st.render(cmd.OutOrStdout(), summary, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s %s: %d groups, %d variables\n",
					okColor.Sprint("ok"), summary.Template, summary.Groups, summary.Variables)
				return err
			})
		},
	}
}

func groupsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Show the template's groups and locations",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := st.app.LoadTemplate(cmd.Context())
			if err != nil {
				return err
			}
			return st.render(cmd.OutOrStdout(), groupInfos(tpl), func(w io.Writer) error {
				return writeGroups(w, tpl)
			})
		},
	}
}

func treeCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the flattened variable tree",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, root, err := st.app.Build(cmd.Context())
			if err != nil {
				return err
			}
			return st.render(cmd.OutOrStdout(), root, func(w io.Writer) error {
				return writeTree(w, root)
			})
		},
	}
}

func varsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "vars",
		Short: "List the located variables",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, root, err := st.app.Build(cmd.Context())
			if err != nil {
				return err
			}
			vars := root.Variables()
			return st.render(cmd.OutOrStdout(), vars, func(w io.Writer) error {
				return writeVariables(w, vars)
			})
		},
	}
}

func schemaCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Describe the values each parametrized group and location accepts",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := st.app.LoadTemplate(cmd.Context())
			if err != nil {
				return err
			}
			descs := schema.Build(tpl)
			return st.render(cmd.OutOrStdout(), descs, func(w io.Writer) error {
				return writeDescriptors(w, descs)
			})
		},
	}
}

func expandCmd(st *state) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "expand <group/.../location>",
		Short: "Expand the parameters of a group id or a location",
		Long: `expand prints every value combination of a location's parameters, or of a
group's id, one per line. --set fixes a named parameter to a single value.`,
		Example: `  yaplc expand Counter/Cnt/Value --set n=2`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixed, err := parseSets(sets)
			if err != nil {
				return usageError(err)
			}
			tpl, err := st.app.LoadTemplate(cmd.Context())
			if err != nil {
				return err
			}
			params, desc, err := lookup(tpl, args[0])
			if err != nil {
				return err
			}
			if desc != nil {
				if fixed, err = desc.Normalize(fixed); err != nil {
					return err
				}
			} else if len(fixed) > 0 {
				return fmt.Errorf("%s is not parametrized, values are not allowed", args[0])
			}

			tuples, err := expand.Join(params, fixed)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return st.render(cmd.OutOrStdout(), tuples, func(w io.Writer) error {
				for _, t := range tuples {
					fmt.Fprintln(w, strings.Join(t, "."))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "fix a named parameter (name=value), repeatable")
	return cmd
}

func parseSets(sets []string) (map[string]string, error) {
	fixed := make(map[string]string, len(sets))
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" || value == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", s)
		}
		fixed[name] = value
	}
	return fixed, nil
}

// lookup resolves a slash-separated path to a group or a location and
// returns the parameters to expand with their descriptor, which is nil for
// static nodes.
func lookup(tpl *model.Template, path string) ([]model.Parameter, *schema.Descriptor, error) {
	names := strings.Split(path, schema.PathSep)
	if g := tpl.GroupPath(names...); g != nil {
		return []model.Parameter{g.ID}, schema.ForGroup(tpl, g), nil
	}
	if len(names) > 1 {
		if g := tpl.GroupPath(names[:len(names)-1]...); g != nil {
			if loc := g.Location(names[len(names)-1]); loc != nil {
				return loc.Params, schema.ForLocation(tpl, loc), nil
			}
		}
	}

	var known []string
	tpl.Walk(func(g *model.Group, _ int) bool {
		gp := schema.GroupPath(tpl, g)
		known = append(known, gp)
		for _, l := range g.Locations() {
			known = append(known, gp+schema.PathSep+l.Name())
		}
		return true
	})
	return nil, nil, fmt.Errorf("no group or location %q%s", path, suggest.Hint(path, known))
}

func codegenCmd(st *state) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "codegen",
		Short: "Write the variables as an IEC 61131-3 VAR_GLOBAL block",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, root, err := st.app.Build(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return codegen.WriteGlobals(cmd.OutOrStdout(), root)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(f)
			if err := codegen.WriteGlobals(w, root); err != nil {
				f.Close()
				return err
			}
			if err := w.Flush(); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

type publishFlags struct {
	url       string
	namespace string
	event     string
	timeout   time.Duration
	insecure  bool
}

func (f *publishFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.url, "url", "", "socket.io server URL, e.g. http://localhost:3000")
	fl.StringVar(&f.namespace, "namespace", "/", "socket.io namespace")
	fl.StringVar(&f.event, "event", publish.DefaultEvent, "event the tree is emitted under")
	fl.DurationVar(&f.timeout, "timeout", publish.DefaultTimeout, "connection timeout")
	fl.BoolVar(&f.insecure, "insecure", false, "skip TLS certificate verification")
}

func (f *publishFlags) options() publish.Options {
	return publish.Options{
		URL:                f.url,
		Namespace:          f.namespace,
		Timeout:            f.timeout,
		InsecureSkipVerify: f.insecure,
	}
}

func publishCmd(st *state) *cobra.Command {
	var pf publishFlags
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Send the variable tree to a socket.io server",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pf.url == "" {
				return usageError(fmt.Errorf("publish requires --url"))
			}
			ctx := cmd.Context()
			_, root, err := st.app.Build(ctx)
			if err != nil {
				return err
			}
			pub, err := st.app.Dial(ctx, pf.options())
			if err != nil {
				return err
			}
			defer pub.Close()
			if err := pub.Publish(ctx, pf.event, root); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s published %d variables to %s\n",
				okColor.Sprint("ok"), len(root.Variables()), pf.url)
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}

func watchCmd(st *state) *cobra.Command {
	var pf publishFlags
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the variable tree whenever the template changes",
		Long: `watch keeps the last good template loaded and rebuilds the tree on every
change of the template file. Trees are printed, or published when --url is
given. A broken template is reported and the previous tree stays active.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			onTree := func(root *locations.Node) error {
				return st.render(cmd.OutOrStdout(), root, func(w io.Writer) error {
					return writeTree(w, root)
				})
			}
			if pf.url != "" {
				pub, err := st.app.Dial(ctx, pf.options())
				if err != nil {
					return err
				}
				defer pub.Close()
				onTree = func(root *locations.Node) error {
					return pub.Publish(ctx, pf.event, root)
				}
			}
			return st.app.Watch(ctx, onTree)
		},
	}
	pf.bind(cmd)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print yaplc version information",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "yaplc %s\n", Version)
		},
	}
}
