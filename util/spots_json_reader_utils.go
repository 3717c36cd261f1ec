package util

import (
	"encoding/json"
	"fmt"
	"os"

	"spots-server/db"
)

// ReadSeedTablesFromJSON loads {"table": [row, ...]} fixtures from disk.
func ReadSeedTablesFromJSON(filePath string) (map[string][]db.Row, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var tables map[string][]db.Row
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed tables: %w", err)
	}
	return tables, nil
}

// SeedMockTableClient copies every fixture table into client.
func SeedMockTableClient(client *db.MockTableClient, tables map[string][]db.Row) {
	for table, rows := range tables {
		client.Seed(table, rows...)
	}
}
