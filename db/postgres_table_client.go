package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

const postgresLogPrefix = "postgres-table-client"

// PostgresTableClient runs table calls directly against Postgres.
type PostgresTableClient struct {
	db *sql.DB
}

// ConnectPostgres opens the pool and pings the database.
func ConnectPostgres(connectionString string) (*PostgresTableClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgresTableClient(db), nil
}

func NewPostgresTableClient(db *sql.DB) *PostgresTableClient {
	return &PostgresTableClient{db: db}
}

// sortedColumns keeps generated SQL stable for a given row.
func sortedColumns(r Row) []string {
	cols := make([]string, 0, len(r))
	for c := range r {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// whereClause renders `"a" = $n AND "b" = $n+1`, numbering from start.
func whereClause(where Row, start int) (string, []interface{}) {
	cols := sortedColumns(where)
	parts := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for i, c := range cols {
		parts = append(parts, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), start+i))
		args = append(args, where[c])
	}
	return strings.Join(parts, " AND "), args
}

func buildSelect(q SelectQuery) (string, []interface{}) {
	cols := "*"
	if len(q.Columns) > 0 {
		quoted := make([]string, 0, len(q.Columns))
		for _, c := range q.Columns {
			quoted = append(quoted, pq.QuoteIdentifier(c))
		}
		cols = strings.Join(quoted, ", ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", cols, pq.QuoteIdentifier(q.Table))

	var args []interface{}
	if len(q.Eq) > 0 {
		clause, whereArgs := whereClause(q.Eq, 1)
		sb.WriteString(" WHERE " + clause)
		args = whereArgs
	}

	if len(q.Order) > 0 {
		parts := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			dir := "ASC"
			if o.Descending {
				dir = "DESC"
			}
			parts = append(parts, pq.QuoteIdentifier(o.Column)+" "+dir)
		}
		sb.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	}

	return sb.String(), args
}

func buildInsert(table string, row Row) (string, []interface{}) {
	cols := sortedColumns(row)
	quoted := make([]string, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for i, c := range cols {
		quoted = append(quoted, pq.QuoteIdentifier(c))
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, row[c])
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	return query, args
}

func buildUpdate(table string, values Row, where Row) (string, []interface{}) {
	cols := sortedColumns(values)
	sets := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols)+len(where))
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), i+1))
		args = append(args, values[c])
	}
	clause, whereArgs := whereClause(where, len(cols)+1)
	args = append(args, whereArgs...)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s RETURNING *",
		pq.QuoteIdentifier(table), strings.Join(sets, ", "), clause)
	return query, args
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []Row{}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			// numeric and uuid columns come back as raw bytes
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (c *PostgresTableClient) Select(ctx context.Context, q SelectQuery) ([]Row, error) {
	query, args := buildSelect(q)
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": postgresLogPrefix,
			"table":  q.Table,
			"error":  err,
		}).Error("select fail")
		return nil, err
	}
	return scanRows(rows)
}

func (c *PostgresTableClient) Insert(ctx context.Context, table string, row Row) error {
	query, args := buildInsert(table, row)
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		log.WithFields(log.Fields{
			"prefix": postgresLogPrefix,
			"table":  table,
			"error":  err,
		}).Error("insert fail")
		return err
	}
	return nil
}

func (c *PostgresTableClient) Update(ctx context.Context, table string, values Row, where Row) ([]Row, error) {
	if len(where) == 0 {
		return nil, fmt.Errorf("refusing to update every row of %s", table)
	}
	query, args := buildUpdate(table, values, where)
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": postgresLogPrefix,
			"table":  table,
			"error":  err,
		}).Error("update fail")
		return nil, err
	}
	return scanRows(rows)
}

func (c *PostgresTableClient) Ping() error {
	return c.db.Ping()
}

// Close closes the database connection
func (c *PostgresTableClient) Close() error {
	return c.db.Close()
}
