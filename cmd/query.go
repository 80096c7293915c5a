package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bisegni/grapharscan/pkg/graphar"
)

var (
	QueryYield []string
	QueryWhere string
	QueryLimit int64
	QueryBatch int
)

var queryCmd = &cobra.Command{
	Use:   "query <graph.yml> <vertex type>",
	Short: "Scan one vertex type",
	Long: `Scan a vertex type of a GraphAr graph without writing the CALL statement.

Examples:
  grapharscan query ldbc.graph.yml person
  grapharscan query ldbc.graph.yml person --yield id,firstName --where "id < 10" --limit 5
  grapharscan query ldbc.graph.yml person --yield "firstName AS name" --format table
  grapharscan query ldbc.graph.yml person --yield firstName --where "id >= 2"

WHERE can use yielded names and any property of the vertex type.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		a.serveMetrics(cmd.Context())

		statement := BuildStatement(args[0], args[1], QueryYield, QueryWhere, QueryLimit, QueryBatch)
		a.logger.Debug("built statement", "statement", statement)
		return runStatement(cmd.Context(), a, statement, cmd.OutOrStdout())
	},
}

// BuildStatement renders the CALL statement the query command runs.
// limit < 0 and batchSize <= 0 are omitted.
func BuildStatement(path, table string, yield []string, where string, limit int64, batchSize int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CALL %s(%s, %s := %s", graphar.FunctionName, quote(path), graphar.OptionTableName, quote(table))
	if batchSize > 0 {
		fmt.Fprintf(&sb, ", %s := %d", graphar.OptionBatchSize, batchSize)
	}
	sb.WriteString(")")
	if len(yield) > 0 {
		sb.WriteString(" YIELD ")
		sb.WriteString(strings.Join(yield, ", "))
	}
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	if limit >= 0 {
		fmt.Fprintf(&sb, " LIMIT %d", limit)
	}
	return sb.String()
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func init() {
	queryCmd.Flags().StringSliceVarP(&QueryYield, "yield", "y", nil, "Columns to return, optionally renamed (e.g. id,firstName AS name)")
	queryCmd.Flags().StringVarP(&QueryWhere, "where", "w", "", "Filter expression (e.g. \"id > 10 AND firstName = 'Amy'\")")
	queryCmd.Flags().Int64VarP(&QueryLimit, "limit", "l", -1, "Maximum number of rows")
	queryCmd.Flags().IntVar(&QueryBatch, "batch-size", 0, "Rows claimed per scan call (default: rows / workers)")
}
