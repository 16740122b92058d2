package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formtree"
	"github.com/goliatone/go-formtree/internal/logging"
	"github.com/goliatone/go-formtree/pkg/config"
	"github.com/goliatone/go-formtree/pkg/fields"
	"github.com/goliatone/go-formtree/pkg/form"
	"github.com/goliatone/go-formtree/pkg/terms"
)

// app holds the flags shared by every command.
type app struct {
	out, errOut io.Writer
	logLevel    string
	templates   string
	termsFile   string
	noFilters   bool
	logger      *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:           "formtree",
		Short:         "Build, render, and validate HTML forms from definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = logging.NewWriter(a.errOut, logging.ParseLevel(a.logLevel))
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&a.templates, "templates", "", "directory with widget templates overriding the built-in ones")
	flags.StringVar(&a.termsFile, "terms", "", "YAML file with taxonomy terms")
	flags.BoolVar(&a.noFilters, "no-filters", false, "skip the default sanitising filters")

	root.AddCommand(
		newRenderCmd(a),
		newValidateCmd(a),
		newFillCmd(a),
		newOpenAPICmd(a),
		newTypesCmd(a),
	)
	return root
}

// settings translates the shared flags into facade options.
func (a *app) settings() ([]formtree.Option, error) {
	opts := []formtree.Option{formtree.WithLogger(a.logger)}
	if a.templates != "" {
		opts = append(opts, formtree.WithTemplateDir(a.templates))
	}
	if a.termsFile != "" {
		source, err := terms.Load(os.DirFS(filepath.Dir(a.termsFile)), filepath.Base(a.termsFile))
		if err != nil {
			return nil, err
		}
		opts = append(opts, formtree.WithTermSource(source))
	}
	if a.noFilters {
		opts = append(opts, formtree.WithoutFilters())
	}
	return opts, nil
}

func (a *app) factory() (*fields.Factory, error) {
	opts, err := a.settings()
	if err != nil {
		return nil, err
	}
	return formtree.NewFactory(opts...)
}

func (a *app) formOptions() ([]form.Option, error) {
	opts, err := a.settings()
	if err != nil {
		return nil, err
	}
	return formtree.FormOptions(opts...)
}

// loadForm builds the form described by a definition file.
func (a *app) loadForm(path string) (*form.Form, error) {
	doc, err := config.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, err
	}
	opts, err := a.formOptions()
	if err != nil {
		return nil, err
	}
	f, err := doc.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	a.logger.Debug("form loaded", "path", path, "fields", f.Count(), "fieldsets", len(f.Fieldsets()))
	return f, nil
}

// bindFile binds a JSON submission file, optionally below a root path.
func bindFile(f *form.Form, path, root string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read values: %w", err)
	}
	if err := f.BindJSON(data, root); err != nil {
		return fmt.Errorf("bind %s: %w", path, err)
	}
	return nil
}
