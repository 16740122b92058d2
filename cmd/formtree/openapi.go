package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formtree/internal/openapi"
)

func newOpenAPICmd(a *app) *cobra.Command {
	var (
		operation string
		list      bool
		emit      bool
		validate  bool
	)
	cmd := &cobra.Command{
		Use:   "openapi <document>",
		Short: "Generate a form from an OpenAPI operation's request body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			im, err := openapi.LoadFile(cmd.Context(), os.DirFS(filepath.Dir(args[0])), filepath.Base(args[0]),
				openapi.WithValidation(validate))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if list || operation == "" {
				for _, op := range im.Operations() {
					marker := " "
					if op.HasBody {
						marker = "*"
					}
					fmt.Fprintf(out, "%s %-24s %-7s %s\n", marker, op.ID, op.Method, op.Path)
				}
				return nil
			}
			if emit {
				res, err := im.Fields(operation)
				if err != nil {
					return err
				}
				return writeDefinition(out, res)
			}
			opts, err := a.formOptions()
			if err != nil {
				return err
			}
			f, err := im.Build(operation, opts...)
			if err != nil {
				return err
			}
			return f.Render(out)
		},
	}
	cmd.Flags().StringVar(&operation, "operation", "", "operation id to generate (lists operations when empty)")
	cmd.Flags().BoolVar(&list, "list", false, "list operations; * marks those with a request body")
	cmd.Flags().BoolVar(&emit, "emit", false, "print a YAML form definition instead of HTML")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the OpenAPI document first")
	return cmd
}

// writeDefinition prints the operation's fields in the definition format
// the other commands load.
func writeDefinition(w io.Writer, res openapi.Result) error {
	fieldList := make([]map[string]any, 0, len(res.Fields))
	for _, def := range res.Fields {
		entry := map[string]any{"name": def.Name}
		for k, v := range def.Config {
			entry[k] = v
		}
		fieldList = append(fieldList, entry)
	}
	doc := map[string]any{
		"form": map[string]any{
			"action": res.Operation.Path,
			"method": res.Operation.Method,
		},
		"fields": fieldList,
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode definition: %w", err)
	}
	return enc.Close()
}
