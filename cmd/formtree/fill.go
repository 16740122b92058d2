package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formtree/pkg/prompt"
)

func newFillCmd(a *app) *cobra.Command {
	var attempts int
	cmd := &cobra.Command{
		Use:   "fill <definition>",
		Short: "Fill a form interactively and print the submission as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadForm(args[0])
			if err != nil {
				return err
			}
			filler := prompt.New(prompt.Survey(cmd.ErrOrStderr()),
				prompt.WithAttempts(attempts),
				prompt.WithLogger(a.logger),
			)
			if _, err := filler.Fill(cmd.Context(), f); err != nil {
				return err
			}
			payload, err := json.MarshalIndent(f.Values(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}
	cmd.Flags().IntVar(&attempts, "attempts", prompt.DefaultAttempts, "times invalid fields are asked again")
	return cmd
}
