package main

import (
	"breachcheck/internal/config"
	"breachcheck/pkg/corpus"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func corpusCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Maintains the local breach corpus",
	}

	file := func() *corpus.File {
		return corpus.Open(cfg.LocalDB.Path, cfg.LocalDB.CaseSensitive)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <identifier>...",
		Short: "Appends identifiers that are not in the corpus yet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := file()
			for _, id := range args {
				added, err := f.AppendIfAbsent(id)
				if err != nil {
					return fmt.Errorf("could not add %q: %w", id, err)
				}
				if added {
					cmd.Printf("added %s\n", id)
				} else {
					cmd.Printf("%s already present\n", id)
				}
			}

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Prints corpus statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := file().Stats()
			if err != nil {
				return err //nolint: wrapcheck
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(st) //nolint: wrapcheck
		},
	})

	return cmd
}
