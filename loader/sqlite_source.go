package loader

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

const sqliteDriver = "sqlite"

type sqliteSource struct {
	db     *sql.DB
	rows   *sql.Rows
	header []string
	values []sql.NullString
	row    []string
}

// openSQLiteSource reads every row of table. The database file must exist, sqlite would
// otherwise create an empty one.
func openSQLiteSource(ctx context.Context, filepath string, table string) (*sqliteSource, error) {
	if _, err := os.Stat(filepath); err != nil {
		return nil, fmt.Errorf("error opening %s: %w", filepath, err)
	}

	db, err := sql.Open(sqliteDriver, filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM %s", quoteIdentifier(table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error querying table %s: %w", table, err)
	}

	header, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		_ = db.Close()
		return nil, fmt.Errorf("error reading columns of table %s: %w", table, err)
	}

	return &sqliteSource{
		db:     db,
		rows:   rows,
		header: header,
		values: make([]sql.NullString, len(header)),
		row:    make([]string, len(header)),
	}, nil
}

func (ss *sqliteSource) Header() []string {
	return ss.header
}

func (ss *sqliteSource) Next() ([]string, error) {
	if !ss.rows.Next() {
		if err := ss.rows.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}

	destinations := make([]any, len(ss.values))
	for idx := range ss.values {
		destinations[idx] = &ss.values[idx]
	}
	if err := ss.rows.Scan(destinations...); err != nil {
		return nil, err
	}

	for idx, value := range ss.values {
		ss.row[idx] = ""
		if value.Valid {
			ss.row[idx] = value.String
		}
	}
	return ss.row, nil
}

func (ss *sqliteSource) Close() error {
	rowsErr := ss.rows.Close()
	dbErr := ss.db.Close()
	if rowsErr != nil {
		return rowsErr
	}
	return dbErr
}

func quoteIdentifier(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
