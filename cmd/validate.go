package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/graphar"
)

var validateCmd = &cobra.Command{
	Use:   "validate <graph.yml>",
	Short: "Check that every vertex type can be scanned",
	Long: `Bind GRAPHAR_SCAN against every vertex type of a graph and report the
ones whose schema or metadata cannot be scanned.

Examples:
  grapharscan validate ldbc.graph.yml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	path := args[0]
	meta, err := a.store.LoadMetadata(path)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "❌ Validation failed: %v\n", err)
		return err
	}
	fn, err := a.catalog.GetFunction(graphar.FunctionName)
	if err != nil {
		return err
	}

	failed := 0
	for _, name := range meta.VertexTypes() {
		in := &database.BindInput{
			Args:           []interface{}{path},
			Options:        map[string]interface{}{graphar.OptionTableName: name},
			MaxWorkers:     a.cfg.Workers,
			VectorCapacity: a.cfg.VectorCapacity,
		}
		bind, err := fn.Bind(cmd.Context(), in)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "❌ %s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s: %d column(s)\n", name, len(bind.ColumnNames()))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d vertex type(s) failed to bind", failed, len(meta.VertexTypes()))
	}
	return nil
}
