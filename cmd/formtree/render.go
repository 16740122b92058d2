package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		values   string
		root     string
		output   string
		validate bool
	)
	cmd := &cobra.Command{
		Use:   "render <definition>",
		Short: "Render a form definition as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadForm(args[0])
			if err != nil {
				return err
			}
			if err := bindFile(f, values, root); err != nil {
				return err
			}
			if validate {
				f.IsValid()
			}
			if output == "" {
				return f.Render(cmd.OutOrStdout())
			}
			file, err := os.Create(output)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := f.Render(file); err != nil {
				return err
			}
			a.logger.Info("form written", "path", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&values, "values", "", "JSON file with values to bind before rendering")
	cmd.Flags().StringVar(&root, "root", "", "path inside the JSON values to bind, e.g. data.attributes")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate bound values so errors render inline")
	return cmd
}
