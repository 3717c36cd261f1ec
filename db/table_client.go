package db

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Row is one table row keyed by column name.
type Row map[string]interface{}

// Order sorts a select by one column.
type Order struct {
	Column     string
	Descending bool
}

// SelectQuery is a table scoped select. Eq filters are ANDed together.
type SelectQuery struct {
	Table   string
	Columns []string // empty selects every column
	Eq      Row
	Order   []Order
}

// TableClient is the table store the data layer reads from and writes to.
type TableClient interface {
	Select(ctx context.Context, q SelectQuery) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) error
	// Update sets values on every row matching where and returns the updated rows.
	Update(ctx context.Context, table string, values Row, where Row) ([]Row, error)
	Ping() error
}

// String reads a column as text. Missing or null columns read as "".
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case time.Time:
		return formatTimeValue(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int reads a numeric column. Unparseable values read as 0.
func (r Row) Int(col string) int {
	switch v := r[col].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		n, err := strconv.ParseFloat(r.String(col), 64)
		if err != nil {
			return 0
		}
		return int(n)
	}
}

// Float reads a numeric column. Unparseable values read as 0.
func (r Row) Float(col string) float64 {
	switch v := r[col].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		f, err := strconv.ParseFloat(r.String(col), 64)
		if err != nil {
			return 0
		}
		return f
	}
}

// formatTimeValue renders driver time values the way the REST store sends them:
// time columns as "15:04:05", date columns as "2006-01-02".
func formatTimeValue(t time.Time) string {
	switch {
	case t.Year() == 0:
		return t.Format("15:04:05")
	case t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0:
		return t.Format("2006-01-02")
	default:
		return t.Format(time.RFC3339)
	}
}
