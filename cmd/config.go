package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seabox-dev/seabox/internal/app"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the configuration file location",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration file contents",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), app.Default.ConfigPath)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path := app.Default.ConfigPath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logWarning("No configuration file at %s", path)
			return nil
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# Viewing '%s'\n", path)
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
