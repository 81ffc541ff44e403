package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// OpenDBWithDSN opens and configures a MySQL connection pool for dsn.
func OpenDBWithDSN(dsn string) (*sql.DB, error) {
	return OpenDriver("mysql", dsn)
}

// OpenDriver opens a pool for any registered database/sql driver and pings it.
func OpenDriver(driver, dsn string) (*sql.DB, error) {
	// 1. Open a new connection pool.
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// 2. Configure the connection pool settings.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 3. Ping the database to verify the connection.
	if err := db.Ping(); err != nil {
		log.Printf("Error connecting to %s database: %v", driver, err)
		db.Close()
		return nil, err
	}

	return db, nil
}
