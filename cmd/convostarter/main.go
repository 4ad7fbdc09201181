package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "convostarter",
	Short: "Practice real-world language chats",
	Long: `convostarter hands out a short conversation prompt for a chosen language
and scenario, then gives quick feedback on the typed response.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, practiceCmd, catalogCmd, promptCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
