package main

import (
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/lojasmm/convostarter/internal/logger"
	"github.com/lojasmm/convostarter/internal/practice"
	"github.com/lojasmm/convostarter/internal/tui"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}
		// Log lines would tear the terminal UI.
		log := logger.Nop()

		prompts, closePrompts, err := openPrompts(cfg, log)
		if err != nil {
			return err
		}
		defer closePrompts()

		s := practice.NewSession(
			practice.NewResolver(prompts, log),
			clockwork.NewRealClock(),
			practice.Delays{Generate: cfg.GenerateDelay, Check: cfg.CheckDelay},
			log,
		)
		defer s.Close()
		return tui.Run(s)
	},
}
