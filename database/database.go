package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/Aayush4518/WhisperBox-SQL/config"
)

func Open(cfg config.Config) (db *sql.DB, err error) {
	// foreign_keys is a per-connection pragma and the pool opens more
	// than one connection, so it has to ride the DSN
	dsn := cfg.DBUrl + "?_foreign_keys=on"
	if strings.Contains(cfg.DBUrl, "?") {
		dsn = cfg.DBUrl + "&_foreign_keys=on"
	}

	db, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	err = migrateDB(db)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate database")
	}

	return
}
