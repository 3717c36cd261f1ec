package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"spots-server/api"
)

const restLogPrefix = "rest-table-client"

// RestTableClient talks to a hosted PostgREST style table endpoint:
// /{prefix}/{table}?select=...&col=eq.value&order=col.asc
type RestTableClient struct {
	http       *api.HTTPClient
	pathPrefix string
	apiKey     string
}

// NewRestTableClient wraps an HTTPClient pointed at the store's base URL.
func NewRestTableClient(httpClient *api.HTTPClient, pathPrefix, apiKey string) *RestTableClient {
	return &RestTableClient{
		http:       httpClient,
		pathPrefix: strings.TrimRight(pathPrefix, "/"),
		apiKey:     apiKey,
	}
}

func (c *RestTableClient) headers(prefer string) map[string]string {
	h := map[string]string{
		"apikey":        c.apiKey,
		"Authorization": "Bearer " + c.apiKey,
	}
	if prefer != "" {
		h["Prefer"] = prefer
	}
	return h
}

func (c *RestTableClient) endpoint(table string, q url.Values) string {
	endpoint := c.pathPrefix + "/" + url.PathEscape(table)
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	return endpoint
}

func eqValues(q url.Values, where Row) {
	for col, v := range where {
		q.Set(col, "eq."+Row{col: v}.String(col))
	}
}

// Select issues GET /{table} with eq filters and ordering.
func (c *RestTableClient) Select(ctx context.Context, sq SelectQuery) ([]Row, error) {
	q := url.Values{}
	if len(sq.Columns) > 0 {
		q.Set("select", strings.Join(sq.Columns, ","))
	} else {
		q.Set("select", "*")
	}
	eqValues(q, sq.Eq)
	if len(sq.Order) > 0 {
		parts := make([]string, 0, len(sq.Order))
		for _, o := range sq.Order {
			dir := "asc"
			if o.Descending {
				dir = "desc"
			}
			parts = append(parts, o.Column+"."+dir)
		}
		q.Set("order", strings.Join(parts, ","))
	}

	var rows []Row
	if err := c.http.Request(ctx, "GET", c.endpoint(sq.Table, q), c.headers(""), nil, &rows); err != nil {
		log.WithFields(log.Fields{
			"prefix": restLogPrefix,
			"table":  sq.Table,
			"error":  err,
		}).Error("select fail")
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

// Insert issues POST /{table} without asking for the row back.
func (c *RestTableClient) Insert(ctx context.Context, table string, row Row) error {
	if err := c.http.Request(ctx, "POST", c.endpoint(table, nil), c.headers("return=minimal"), row, nil); err != nil {
		log.WithFields(log.Fields{
			"prefix": restLogPrefix,
			"table":  table,
			"error":  err,
		}).Error("insert fail")
		return err
	}
	return nil
}

// Update issues PATCH /{table}?col=eq.value and returns the updated rows.
func (c *RestTableClient) Update(ctx context.Context, table string, values Row, where Row) ([]Row, error) {
	if len(where) == 0 {
		return nil, fmt.Errorf("refusing to update every row of %s", table)
	}
	q := url.Values{}
	eqValues(q, where)

	var rows []Row
	if err := c.http.Request(ctx, "PATCH", c.endpoint(table, q), c.headers("return=representation"), values, &rows); err != nil {
		log.WithFields(log.Fields{
			"prefix": restLogPrefix,
			"table":  table,
			"error":  err,
		}).Error("update fail")
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

// Ping fetches the endpoint root, which any reachable store answers.
func (c *RestTableClient) Ping() error {
	return c.http.Request(context.Background(), "GET", c.pathPrefix+"/", c.headers(""), nil, nil)
}
