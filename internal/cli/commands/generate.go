package commands

import (
	"fmt"

	"github.com/glushkov/querygen"
	"github.com/glushkov/querygen/internal/config"
	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "generate [type]",
		Aliases: []string{"gen"},
		Short:   "Print SQL statements for structs declared in Go source",
		Long: `Read struct declarations from a Go file or package directory and print
SQL statements for them, one per line.

Only statements that depend on the type alone can be generated from source:
select-all, select-by-id and delete. The key used by select-by-id and delete
comes from --id.

Without a type argument or --type, statements are printed for every struct
with table metadata, each group headed by a comment naming the struct.`,
		Example: `  querygen generate Person --source ./model
  querygen gen --statements select-all,delete --id 42`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			log := config.Logger(ctx)

			typeName := cfg.Type
			if len(args) > 0 {
				typeName = args[0]
			}

			stmts, err := parseStatements(cfg.Statements)
			if err != nil {
				return err
			}

			structs, err := loadStructs(ctx, cfg.Source)
			if err != nil {
				return err
			}
			entities, err := describeStructs(ctx, structs, typeName, cfg.Package)
			if err != nil {
				return err
			}
			if len(entities) == 0 {
				return fmt.Errorf("no structs with table metadata in %s", cfg.Source)
			}

			out := cmd.OutOrStdout()
			for i, entity := range entities {
				if len(entities) > 1 {
					if i > 0 {
						_, _ = fmt.Fprintln(out)
					}
					_, _ = fmt.Fprintf(out, "-- %s\n", entity.Name)
				}
				for _, stmt := range stmts {
					text, err := entity.Build(stmt, cfg.ID, nil)
					if err != nil {
						return fmt.Errorf("generating %s for %s: %w", stmt, entity.Name, err)
					}
					log.Debug("generated", "struct", entity.Name, "statement", stmt.String())
					_, _ = fmt.Fprintln(out, text)
				}
			}
			return nil
		},
	}
}

func parseStatements(names []string) ([]querygen.Statement, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no statements to generate")
	}

	out := make([]querygen.Statement, 0, len(names))
	for _, name := range names {
		stmt, err := querygen.ParseStatement(name)
		if err != nil {
			return nil, err
		}
		if stmt.NeedsValues() {
			return nil, fmt.Errorf("statement %s needs an instance and cannot be generated from source", stmt)
		}
		out = append(out, stmt)
	}
	return out, nil
}
