package main

import (
	"breachcheck/internal/config"
	"breachcheck/pkg/logger"
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCommand runs one comprehensive check from the command line and prints
// the JSON result. Running stats and metrics are not kept.
func checkCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Checks an email and optionally a password against every source",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, closeApp := newApp(ctx, cfg, nil)
			defer closeApp()

			res, err := a.Checker.Comprehensive(ctx, email, password)
			if err != nil {
				logger.Error(ctx, "check failed", zap.Error(err))

				return err //nolint: wrapcheck
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(res) //nolint: wrapcheck
		},
	}

	cmd.Flags().String("email", "", "Email address to check")
	cmd.Flags().String("password", "", "Password to check (optional)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
