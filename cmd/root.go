package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/seabox-dev/seabox/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "seabox",
	Short: "Disposable development containers on top of podman",
	Long: `seabox creates and enters development containers with your working
directory mounted and mapped to the container user.

Each box is a podman container with:
  - The current directory (or a chosen one) bind-mounted at /mount
  - UID/GID mapping so files keep your ownership on the host
  - Host networking and a stable hostname
  - A bootstrap step that can create a user and install sudo`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print the commands that would run instead of running them")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	_          = logging.UserError // reserved for future use
)
