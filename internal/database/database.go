// file: internal/database/database.go
// version: 2.0.0
// guid: 5b8e3a1d-7c2f-4d6b-a9e4-1f8c3b6d9e27

package database

import (
	"database/sql"
	"sync"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// driverName is the sqlite3 driver variant with the text-matching scalar
// functions installed. Registered once; sql.Register panics on duplicates.
const driverName = "sqlite3_stockroom"

var registerDriverOnce sync.Once

// registerDriver installs similarity() and editdist() on every new
// connection so matching queries can rank rows inside SQL.
func registerDriver() {
	registerDriverOnce.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				if err := conn.RegisterFunc("similarity", TrigramSimilarity, true); err != nil {
					return err
				}
				return conn.RegisterFunc("editdist", LevenshteinDistance, true)
			},
		})
	})
}
