package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/nucleron/yaplc/internal/app"
	"github.com/nucleron/yaplc/internal/project"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// Environment variables providing flag defaults.
const (
	EnvTargetsDir = "YAPLC_TARGETS_DIR"
	EnvTarget     = "YAPLC_TARGET"
	EnvLogLevel   = "YAPLC_LOG_LEVEL"
)

type flags struct {
	targetsDir string
	target     string
	template   string
	project    string
	logLevel   string
	logFormat  string
	format     string
	noColor    bool
}

// state is shared by all commands of one invocation.
type state struct {
	flags flags
	app   *app.App
}

// NewRootCommand builds the yaplc command tree.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	st := &state{}

	root := &cobra.Command{
		Use:   "yaplc",
		Short: "YAPLC location template engine",
		Long: `yaplc parses target location templates (extensions.cfg), validates them
and flattens the selected groups and locations into located IEC variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.setup(stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&st.flags.targetsDir, "targets-dir", os.Getenv(EnvTargetsDir), "directory holding <target>/extensions.cfg (default \""+app.DefaultTargetsDir+"\")")
	pf.StringVarP(&st.flags.target, "target", "t", os.Getenv(EnvTarget), "target whose template is used")
	pf.StringVar(&st.flags.template, "template", "", "template file, overrides the target")
	pf.StringVarP(&st.flags.project, "project", "p", "", "project file (default \"./"+project.DefaultFileName+"\" when present)")
	pf.StringVar(&st.flags.logLevel, "log-level", envOr(EnvLogLevel, "warn"), "logging level: debug, info, warn or error")
	pf.StringVar(&st.flags.logFormat, "log-format", "text", "log output format: text or json")
	pf.StringVarP(&st.flags.format, "format", "o", "text", "output format: text, json or yaml")
	pf.BoolVar(&st.flags.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		targetsCmd(st),
		checkCmd(st),
		groupsCmd(st),
		treeCmd(st),
		varsCmd(st),
		schemaCmd(st),
		expandCmd(st),
		codegenCmd(st),
		publishCmd(st),
		watchCmd(st),
		versionCmd(),
	)
	return root
}

func (st *state) setup(logW io.Writer) error {
	if st.flags.noColor {
		color.NoColor = true
	}

	projectPath := st.flags.project
	if projectPath == "" {
		if info, err := os.Stat(project.DefaultFileName); err == nil && !info.IsDir() {
			projectPath = project.DefaultFileName
		}
	}

	cfg, err := app.NewConfig(app.Config{
		TargetsDir:   st.flags.targetsDir,
		Target:       st.flags.target,
		TemplatePath: st.flags.template,
		ProjectPath:  projectPath,
		LogLevel:     st.flags.logLevel,
		LogFormat:    st.flags.logFormat,
		OutputFormat: st.flags.format,
	})
	if err != nil {
		return usageError(err)
	}
	st.app = app.NewApp(logW, cfg)
	st.app.Logger().Debug("CLI configuration complete.", "config", fmt.Sprintf("%+v", *cfg))
	return nil
}

// usageArgs turns argument validation failures into usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
