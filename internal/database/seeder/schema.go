package seeder

import (
	"context"
	"fmt"
	"strings"

	"hirelink/internal/database"
)

// EnsureTableColumns fails when table lacks any of columns, naming every
// missing one. Seeders call it so a stale schema reports a migration problem
// instead of a SQL error halfway through a transaction.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" || len(columns) == 0 {
		return fmt.Errorf("empty table or column list")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := make(map[string]struct{}, len(columns))
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: %s is missing %s (run migrate first)", table, strings.Join(missing, ", "))
	}
	return nil
}
