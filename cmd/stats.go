package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/bisegni/grapharscan/pkg/graphar"
)

var statsCmd = &cobra.Command{
	Use:   "stats <graph.yml>",
	Short: "Show row counts and scan partitioning",
	Long: `Display, per vertex type, the number of rows and how a scan with the
current worker and capacity settings would split them into batches.

Examples:
  grapharscan stats ldbc.graph.yml
  grapharscan stats ldbc.graph.yml --workers 16`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

// partitionStats describes how one vertex type would be scanned.
type partitionStats struct {
	Table     string
	Rows      int64
	BatchSize int64
	Batches   int64
}

func gatherStats(a *app, path string) ([]partitionStats, error) {
	meta, err := a.store.LoadMetadata(path)
	if err != nil {
		return nil, err
	}
	var stats []partitionStats
	for _, name := range meta.VertexTypes() {
		c, err := a.store.OpenCollection(meta, name)
		if err != nil {
			return nil, err
		}
		rows := c.Size()
		batch := graphar.BatchSize(rows, a.cfg.Workers, a.cfg.VectorCapacity, 0)
		stats = append(stats, partitionStats{
			Table:     name,
			Rows:      rows,
			BatchSize: batch,
			Batches:   (rows + batch - 1) / batch,
		})
	}
	return stats, nil
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := gatherStats(a, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Graph: %s\n", args[0])
	fmt.Fprintf(out, "Workers: %d, vector capacity: %d\n", a.cfg.Workers, a.cfg.VectorCapacity)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"vertex type", "rows", "batch size", "batches"})
	var total int64
	for _, s := range stats {
		t.AppendRow(table.Row{s.Table, s.Rows, s.BatchSize, s.Batches})
		total += s.Rows
	}
	t.AppendFooter(table.Row{"total", total, "", ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
	return nil
}
