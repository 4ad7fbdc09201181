package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lojasmm/convostarter/internal/catalog"
	"github.com/lojasmm/convostarter/internal/store"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Edit prompts in the bolt prompt store",
	Long: `Edits DATA_DIR/prompts.db, the prompt store used when PROMPT_STORE=bolt.
The store is seeded from the built-in prompts the first time it is opened.`,
}

var promptSetCmd = &cobra.Command{
	Use:   "set <language> <scenario> <text>",
	Short: "Replace the prompt for a language and scenario",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPromptStore(func(st store.Store) error {
			return setPrompt(cmd, st, args[0], args[1], strings.Join(args[2:], " "))
		})
	},
}

var promptDeleteCmd = &cobra.Command{
	Use:   "delete <language> <scenario>",
	Short: "Remove the prompt for a language and scenario",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPromptStore(func(st store.Store) error {
			return deletePrompt(cmd, st, args[0], args[1])
		})
	},
}

func init() {
	promptCmd.AddCommand(promptSetCmd, promptDeleteCmd)
}

func withPromptStore(fn func(store.Store) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, path, err := openBolt(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := fn(db); err != nil {
		return err
	}
	log.Debug("prompt store updated", "path", path)
	return nil
}

func checkPair(languageID, scenarioID string) error {
	if _, ok := catalog.Language(languageID); !ok {
		return fmt.Errorf("unknown language %q", languageID)
	}
	if _, ok := catalog.Scenario(scenarioID); !ok {
		return fmt.Errorf("unknown scenario %q", scenarioID)
	}
	return nil
}

func setPrompt(cmd *cobra.Command, st store.Store, languageID, scenarioID, text string) error {
	if err := checkPair(languageID, scenarioID); err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("prompt text is required")
	}
	if err := st.SavePrompt(languageID, scenarioID, text); err != nil {
		return fmt.Errorf("saving prompt: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "set %s/%s\n", languageID, scenarioID)
	return nil
}

// deletePrompt accepts any ids so stale entries can be removed after the
// catalog changes. A deleted catalog pair resolves to NotFound.
func deletePrompt(cmd *cobra.Command, st store.Store, languageID, scenarioID string) error {
	if _, ok, err := st.Prompt(languageID, scenarioID); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("no prompt stored for %s/%s", languageID, scenarioID)
	}
	if err := st.DeletePrompt(languageID, scenarioID); err != nil {
		return fmt.Errorf("deleting prompt: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s/%s\n", languageID, scenarioID)
	return nil
}
