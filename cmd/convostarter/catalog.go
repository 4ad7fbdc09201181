package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lojasmm/convostarter/internal/catalog"
	"github.com/lojasmm/convostarter/internal/practice"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List languages, scenarios and prompts and check every pair has one",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		prompts, closePrompts, err := openPrompts(cfg, log)
		if err != nil {
			return err
		}
		defer closePrompts()

		return printCatalog(cmd, prompts)
	},
}

func printCatalog(cmd *cobra.Command, prompts practice.PromptSource) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LANGUAGE\tSCENARIO\tPROMPT")

	missing := 0
	for _, l := range catalog.Languages() {
		for _, s := range catalog.Scenarios() {
			text, ok, err := prompts.Prompt(l.ID, s.ID)
			if err != nil {
				return err
			}
			if !ok {
				missing++
				text = "(missing)"
			}
			fmt.Fprintf(tw, "%s (%s)\t%s\t%s\n", l.Label, l.ID, s.ID, text)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if missing > 0 {
		return fmt.Errorf("%d catalog pairs have no prompt", missing)
	}
	return nil
}
