// internal/db/db.go
package db

import (
    "database/sql"

    _ "github.com/lib/pq"
)

// Connect opens a Postgres connection pool and verifies it with a ping.
// The handle is injected into repositories by the caller; there is no
// package-level singleton.
func Connect(databaseURL string) (*sql.DB, error) {
    conn, err := sql.Open("postgres", databaseURL)
    if err != nil {
        return nil, err
    }
    if err := conn.Ping(); err != nil {
        conn.Close()
        return nil, err
    }
    return conn, nil
}
