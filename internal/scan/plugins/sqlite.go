package plugins

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/scnrgo/scnr/internal/scan"
)

// Sqlite decodes a node as a sqlite database file. Since sqlite needs random
// access and mattn/go-sqlite3 needs a real file path, the node's bytes are
// first copied into a temp file, opened read-only, and removed once decoding
// finishes. Each table is read in full and emitted as one JSON array of
// row-objects under a child path named after the table — except that tables
// larger than the configured row batch limit are split across multiple
// array segments, all emitted under that same child name.
//
// That batching is a deliberate addition beyond a one-array-per-table model:
// it bounds how much of a huge table is held in memory for one Content
// value. It also reproduces a known defect rather than working around it —
// every segment of the same table shares one child path, so a consumer that
// keys results by path only keeps the last segment. That collision is
// accepted as-is; see the design notes for why.
type Sqlite struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (Sqlite) Name() string { return "sqlite" }

// Scan copies r into a temp file, opens it read-only, and emits one child
// entry per table (more than one if a table exceeds the row batch limit).
func (s Sqlite) Scan(ctx *scan.Context, r scan.Reader) error {
	tmp, err := os.CreateTemp("", "scnr-sqlite-*.db")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&immutable=1", tmpPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	tables, err := listTables(db)
	if err != nil {
		return err
	}

	limit := ctx.SqliteRowBatchLimit()
	for _, table := range tables {
		if err := s.scanTable(ctx, db, table, limit); err != nil {
			return err
		}
	}
	return nil
}

func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (s Sqlite) scanTable(ctx *scan.Context, db *sql.DB, table string, batchLimit int) error {
	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM "%s"`, table))
	if err != nil {
		return err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	binRepr := ctx.BinRepr()
	batch := make([]any, 0, batchLimit)
	scanDest := make([]any, len(cols))
	scanPtrs := make([]any, len(cols))
	for i := range scanDest {
		scanPtrs[i] = &scanDest[i]
	}

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := ctx.SendChildContent(scan.JSONContent(batch), table); err != nil {
			return err
		}
		batch = make([]any, 0, batchLimit)
		return nil
	}

	for rows.Next() {
		if err := rows.Scan(scanPtrs...); err != nil {
			return err
		}
		obj := make(map[string]any, len(cols))
		for i, col := range cols {
			obj[col] = convertSqliteValue(scanDest[i], binRepr)
		}
		batch = append(batch, obj)
		if len(batch) >= batchLimit {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return flush()
}

// convertSqliteValue maps a driver-returned value onto the shared
// JSON-shaped representation. mattn/go-sqlite3 already returns int64,
// float64, string, []byte, and nil for sqlite's four storage classes plus
// NULL; only []byte needs folding through binRepr.
func convertSqliteValue(v any, binRepr scan.BinRepr) any {
	switch t := v.(type) {
	case []byte:
		return binRepr.Encode(t)
	default:
		return t
	}
}
