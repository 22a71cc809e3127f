package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seabox-dev/seabox/internal/config"
	"github.com/seabox-dev/seabox/internal/errors"
	"github.com/seabox-dev/seabox/internal/runtime"
	"github.com/seabox-dev/seabox/internal/state"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List boxes",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var listLocal bool

func init() {
	listCmd.Flags().BoolVar(&listLocal, "local", false, "List recorded boxes without consulting the runtime")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listLocal {
		return listRecords()
	}

	cfg, err := resolveConfig(config.Profile{})
	if err != nil {
		return err
	}
	synth := newSynthesizer(cfg)

	if dryRun {
		runtime.PrintCommand(synth.List())
		return nil
	}

	code, err := getExecutor().RunInteractive(synth.List())
	if err != nil {
		return errors.RuntimeFailed("ps", 0, err)
	}
	if code != 0 {
		return errors.RuntimeFailed("ps", code, nil)
	}
	return nil
}

// listRecords renders the local box records without touching the
// runtime.
func listRecords() error {
	records, err := state.List(stateDir())
	if err != nil {
		return err
	}

	if len(records) == 0 {
		logInfo("No boxes recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tIMAGE\tMODE\tCREATED")
	for _, rec := range records {
		mode := "user"
		if rec.Rootful {
			mode = "root"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rec.Name, rec.Image, mode, rec.CreatedAt)
	}
	return w.Flush()
}
