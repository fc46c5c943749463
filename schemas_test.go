package main

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func createDuckDb(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.duckdb")
	db, err := sql.Open("duckdb", path)
	require.Nil(t, err)
	for _, stmt := range []string{
		"CREATE SCHEMA tpch",
		"CREATE TABLE tpch.part (p_name VARCHAR)",
		"CREATE TABLE notes (body VARCHAR)",
	} {
		_, err = db.Exec(stmt)
		require.Nil(t, err)
	}
	require.Nil(t, db.Close())
	return path
}

func TestListSchemas(t *testing.T) {
	path := createDuckDb(t)
	schemas, err := ListSchemas(context.Background(), path)
	require.Nil(t, err)
	require.Equal(t, []string{"main", "tpch"}, schemas)
}

func TestCheckSchema(t *testing.T) {
	path := createDuckDb(t)
	require.Nil(t, CheckSchema(context.Background(), path, "tpch"))
	require.ErrorContains(t, CheckSchema(context.Background(), path, "imdb"), `schema "imdb" not found`)
}

func TestListSchemasMissingDatabase(t *testing.T) {
	_, err := ListSchemas(context.Background(), filepath.Join(t.TempDir(), "missing.duckdb"))
	require.NotNil(t, err)
}
