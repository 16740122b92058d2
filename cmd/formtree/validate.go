package main

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var errInvalidSubmission = errors.New("submission is invalid")

type report struct {
	Valid  bool                `json:"valid"`
	Values map[string]any      `json:"values"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var (
		values string
		root   string
	)
	cmd := &cobra.Command{
		Use:   "validate <definition> --values <file.json>",
		Short: "Sanitise and validate a JSON submission against a form definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadForm(args[0])
			if err != nil {
				return err
			}
			if err := bindFile(f, values, root); err != nil {
				return err
			}
			rep := report{Valid: f.IsValid(), Values: f.Values(), Errors: f.AllErrors()}
			payload, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			if !rep.Valid {
				return errInvalidSubmission
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&values, "values", "", "JSON file with the submission")
	cmd.Flags().StringVar(&root, "root", "", "path inside the JSON to bind, e.g. data.attributes")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}
