package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/bisegni/grapharscan/pkg/graphar"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <graph.yml> [vertex type]",
	Short: "Show the columns GRAPHAR_SCAN produces",
	Long: `Print the resolved output schema of every vertex type, or of a single one.

Examples:
  grapharscan schema ldbc.graph.yml
  grapharscan schema ldbc.graph.yml person`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	meta, err := a.store.LoadMetadata(args[0])
	if err != nil {
		return err
	}
	tables := meta.VertexTypes()
	if len(args) == 2 {
		tables = []string{args[1]}
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"vertex type", "#", "column", "type"})
	for _, name := range tables {
		schema, err := graphar.ResolveSchema(meta, name)
		if err != nil {
			return err
		}
		for i, e := range schema {
			t.AppendRow(table.Row{name, i, e.Name, e.Kind.String()})
		}
		t.AppendSeparator()
	}
	t.Render()
	return nil
}
