package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var exit = os.Exit

// rootCmd passes its arguments verbatim to config.Resolve.
var rootCmd = &cobra.Command{
	Use:   "runbench [--key=value ...]",
	Short: "Build and time the benchmark suite across every runtime",
	Long: `runbench compiles each TypeScript benchmark to WebAssembly, builds the
MoonBit counterparts, times them on WAMR, QuickJS and Node, and prints a
table of average times and relative ratios.

Run 'runbench --help' for the full option list.`,
	DisableFlagParsing: true,
	SilenceErrors:      true,
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if code := run(cmd.Context(), args, cmd.OutOrStdout(), cmd.ErrOrStderr()); code != 0 {
			exit(code)
		}
		return nil
	},
}

// Execute runs the root command with an interrupt-aware context.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv)
}

// loadDotEnv makes SLACK_BOT_USER_TOKEN and RUNBENCH_* available from a
// local .env file. A missing file is fine.
func loadDotEnv() {
	_ = godotenv.Load()
}
