package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"slices"

	_ "github.com/marcboeker/go-duckdb"
)

// ListSchemas returns the user schemas of a DuckDB database file, sorted by name.
func ListSchemas(ctx context.Context, path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("unable to open database %v: %w", path, err)
	}
	db, err := sql.Open("duckdb", path+"?access_mode=read_only")
	if err != nil {
		return nil, fmt.Errorf("unable to open database %v: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT DISTINCT schema_name
		FROM information_schema.schemata
		WHERE catalog_name = current_database()
		AND schema_name NOT IN ('information_schema', 'pg_catalog')
		ORDER BY schema_name`)
	if err != nil {
		return nil, fmt.Errorf("unable to list schemas of %v: %w", path, err)
	}
	defer rows.Close()
	schemas := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		schemas = append(schemas, name)
	}
	return schemas, rows.Err()
}

func CheckSchema(ctx context.Context, path string, schema string) error {
	schemas, err := ListSchemas(ctx, path)
	if err != nil {
		return err
	}
	if !slices.Contains(schemas, schema) {
		return fmt.Errorf("schema %q not found in %v (available: %v)", schema, path, schemas)
	}
	return nil
}
