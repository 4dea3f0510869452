package mariadb

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"github.com/ophthalmoai/saas-backend/config"
)

var (
	db   *sql.DB
	once sync.Once
)

// Connect opens the single shared database connection. Credentials come from
// the environment via config. Any failure here is fatal: the service cannot
// do anything without its store, so the process halts with no retry.
func Connect() *sql.DB {
	once.Do(func() {
		cfg := config.LoadConfig()
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&timeout=10s",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

		var err error
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			logrus.Fatalf("failed to open database connection: %v", err)
		}
		db.SetConnMaxLifetime(5 * time.Minute)

		if err = db.Ping(); err != nil {
			logrus.Fatalf("database unreachable: %v", err)
		}

		logrus.Info("connected to database")
	})

	return db
}

// GetDB returns the connection established by Connect.
func GetDB() *sql.DB {
	return db
}
