// Package main provides the CLI entrypoint for the breach checker service.
// It wires subcommands (serve, check, corpus), loads configuration, and initializes logging.
package main

import (
	"breachcheck/internal/app"
	"breachcheck/internal/config"
	"breachcheck/pkg/logger"
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newApp builds the application context and returns it along with a cleanup
// function releasing its outbound connections.
func newApp(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*app.App, func()) {
	a, err := app.New(ctx, cfg, reg)
	if err != nil {
		logger.Fatal(ctx, "could not create application", zap.Error(err))
	}

	return a, func() {
		logger.Debug(ctx, "closing outbound http client...")
		a.Close()
	}
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:          "breachcheck",
		SilenceUsage: true,
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config File Path")

	fs := flag.NewFlagSet("breachcheck", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("c", "", "The config file path")
	fs.Usage = func() {}
	_ = fs.Parse(configArgs(os.Args[1:]))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config: ", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		checkCommand(cfg),
		corpusCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

// configArgs picks the -c/--config flag out of the arguments so it can be read
// before cobra runs, leaving subcommand flags alone.
func configArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		switch a := args[i]; {
		case a == "-c" || a == "--config":
			if i+1 < len(args) {
				out = append(out, "-c", args[i+1])
				i++
			}
		case strings.HasPrefix(a, "-c="):
			out = append(out, a)
		case strings.HasPrefix(a, "--config="):
			out = append(out, "-c="+strings.TrimPrefix(a, "--config="))
		}
	}

	return out
}
