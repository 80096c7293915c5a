package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	ConfigFile      string
	InteractiveMode bool
	QueryExplain    bool
)

var rootCmd = &cobra.Command{
	Use:   "grapharscan [statement]",
	Short: "Parallel scans over GraphAr vertex tables",
	Long: `grapharscan runs table-function statements against GraphAr graphs.
Vertex tables are scanned in parallel batches by GRAPHAR_SCAN.

Supports:
  - Inline statement: grapharscan "CALL GRAPHAR_SCAN('g.graph.yml', table_name := 'person')"
  - Stdin: echo "CALL ..." | grapharscan
  - REPL: grapharscan -i

Examples:
  grapharscan "CALL GRAPHAR_SCAN('ldbc/ldbc.graph.yml', table_name := 'person') YIELD id, firstName WHERE id < 10"
  grapharscan --explain "CALL GRAPHAR_SCAN('g.yml', table_name := 'person') LIMIT 5"
  grapharscan --format table --workers 8 "CALL GRAPHAR_SCAN('g.yml', table_name = 'person')"
  grapharscan stats ldbc/ldbc.graph.yml`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		a.serveMetrics(cmd.Context())

		if InteractiveMode {
			return RunInteractive(cmd.Context(), a)
		}

		var statement string
		if len(args) == 1 {
			statement = args[0]
		} else {
			// Check if stdin has data
			stat, _ := os.Stdin.Stat()
			if stat == nil || stat.Mode()&os.ModeCharDevice != 0 {
				return cmd.Help()
			}
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			statement = string(data)
		}
		return runStatement(cmd.Context(), a, statement, cmd.OutOrStdout())
	},
}

// runStatement executes one statement, honouring --explain.
func runStatement(ctx context.Context, a *app, statement string, w io.Writer) error {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return fmt.Errorf("empty statement")
	}
	if QueryExplain && !strings.HasPrefix(strings.ToUpper(statement), "EXPLAIN") {
		statement = "EXPLAIN " + statement
	}
	return a.executor().Run(ctx, statement, a.catalog, a.settings(), w)
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&ConfigFile, "config", "", "Config file (yaml, json or toml)")
	flags.Int("workers", 0, "Number of parallel scan workers (default: number of CPUs)")
	flags.Int("capacity", 0, "Rows per output batch (default 2048)")
	flags.String("format", "", "Output format: jsonl or table")
	flags.Bool("pretty", false, "Pretty print output")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVarP(&InteractiveMode, "interactive", "i", false, "Interactive REPL mode")
	flags.BoolVar(&QueryExplain, "explain", false, "Print the execution plan instead of running the statement")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(validateCmd)
}
