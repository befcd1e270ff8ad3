// clipctl is a thin command line client for the clip-automator HTTP
// API. Server address comes from --server, CLIPCTL_SERVER or a .env
// file in the working directory.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "clipctl",
		Short:        "Control a clip-automator server",
		SilenceUsage: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("server", getenvDefault("CLIPCTL_SERVER", "http://127.0.0.1:8888"),
		"Base URL of the clip-automator server")

	root.AddCommand(
		newPipelineCmd(),
		newTaskCmd(),
		newHistoryCmd(),
		newCampaignCmd(),
		newClipCmd(),
		newTwitchCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
