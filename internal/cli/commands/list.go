package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glushkov/querygen"
	"github.com/glushkov/querygen/internal/config"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// Shown when a field is marked as primary key but has no column.
const noPrimaryKeyColumn = "(no column)"

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List structs and their tables",
		Long: `List every struct declared in the source with its table, columns and
primary key. Structs without table metadata are shown with no table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			structs, err := loadStructs(ctx, cfg.Source)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(structs) == 0 {
				_, _ = fmt.Fprintln(out, "(0 structs)")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Struct", "Table", "Columns", "Primary key"})

			for _, st := range structs {
				entity, err := describeStructs(ctx, structs, st.Name, cfg.Package)
				if err != nil {
					return err
				}
				pk, err := entity[0].PrimaryKeyColumn()
				if errors.Is(err, querygen.ErrPrimaryKeyColumn) {
					pk = noPrimaryKeyColumn
				}
				t.AppendRow(table.Row{
					st.Name,
					entity[0].Table,
					strings.Join(entity[0].ColumnNames(), ", "),
					pk,
				})
			}
			t.Render()
			_, _ = fmt.Fprintf(out, "(%d structs)\n", len(structs))
			return nil
		},
	}
}
