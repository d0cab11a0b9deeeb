package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// PageSize is the fixed batch size used when paging through source rows.
const PageSize = 50

var (
	sourceDB      *gorm.DB
	destinationDB *gorm.DB
)

func GetSourceDB() *gorm.DB {
	return sourceDB
}

func GetDestinationDB() *gorm.DB {
	return destinationDB
}

func init() {
	// Load env from .env
	godotenv.Load()
}

// ConnectSourceWithRetry connects to the legacy MySQL store and sets the
// package-level source handle. The source store is only ever read.
func ConnectSourceWithRetry() error {
	dbUser := os.Getenv("SRC_DB_USER")
	dbPassword := os.Getenv("SRC_DB_PASSWORD")
	dbHost := os.Getenv("SRC_DB_HOST")
	dbPort := os.Getenv("SRC_DB_PORT")
	dbName := os.Getenv("SRC_DB_NAME")

	network := "tcp"
	address := fmt.Sprintf("%s:%s", dbHost, dbPort)

	// Cloud SQL: when SRC_DB_HOST is "/cloudsql/<CONNECTION_NAME>", connect
	// through the Unix socket provided by the Cloud SQL Auth Proxy.
	if strings.HasPrefix(dbHost, "/cloudsql/") {
		network = "unix"
		address = dbHost
	}

	dsn := fmt.Sprintf("%s:%s@%s(%s)/%s?multiStatements=true&parseTime=true",
		dbUser,
		dbPassword,
		network,
		address,
		dbName,
	)

	db, err := openWithRetry("source", func() (*gorm.DB, error) {
		return gorm.Open(mysql.Open(dsn), initConfig())
	})
	if err != nil {
		return err
	}
	sourceDB = db
	return nil
}

// ConnectDestinationWithRetry connects to the new PostgreSQL store and sets
// the package-level destination handle.
func ConnectDestinationWithRetry() error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DEST_DB_HOST"),
		os.Getenv("DEST_DB_USER"),
		os.Getenv("DEST_DB_PASSWORD"),
		os.Getenv("DEST_DB_NAME"),
		os.Getenv("DEST_DB_PORT"),
		envOrDefault("DEST_DB_SSLMODE", "disable"),
	)

	db, err := openWithRetry("destination", func() (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), initConfig())
	})
	if err != nil {
		return err
	}
	destinationDB = db
	return nil
}

// openWithRetry dials with exponential backoff. Unlike a long-lived server we
// give up after DB_CONNECT_MAX_ATTEMPTS (default 10) so an operator gets a
// non-zero exit instead of a hung terminal.
func openWithRetry(name string, open func() (*gorm.DB, error)) (*gorm.DB, error) {
	maxAttempts := intFromEnv("DB_CONNECT_MAX_ATTEMPTS", 10)

	var attempt int
	for {
		attempt++
		db, err := open()
		if err == nil {
			tunePool(db)
			if pluginErr := db.Use(otelgorm.NewPlugin()); pluginErr != nil {
				log.Printf("%s db connected but failed to install otelgorm plugin: %v", name, pluginErr)
			}
			log.Printf("connected to %s database (attempt=%d)", name, attempt)
			return db, nil
		}

		if isAuthError(err) {
			return nil, fmt.Errorf("connect %s database: %w", name, err)
		}
		if attempt >= maxAttempts {
			return nil, fmt.Errorf("connect %s database: %w (after %d attempts)", name, err, attempt)
		}

		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		log.Printf("failed to connect %s database (attempt=%d): %v; retrying in %s", name, attempt, err, sleep)
		time.Sleep(sleep)
	}
}

// Bad credentials never heal; retrying only delays the exit.
func isAuthError(err error) bool {
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1044 || mysqlErr.Number == 1045
	}
	return false
}

// Tune database/sql pool. Env overrides (optional):
// - DB_MAX_OPEN_CONNS (default 10)
// - DB_MAX_IDLE_CONNS (default 5)
// - DB_CONN_MAX_LIFETIME_SECONDS (default 300)
// - DB_CONN_MAX_IDLE_TIME_SECONDS (default 60)
func tunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil || sqlDB == nil {
		return
	}
	maxOpen := intFromEnv("DB_MAX_OPEN_CONNS", 10)
	maxIdle := intFromEnv("DB_MAX_IDLE_CONNS", 5)
	connMaxLife := time.Duration(intFromEnv("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second
	connMaxIdle := time.Duration(intFromEnv("DB_CONN_MAX_IDLE_TIME_SECONDS", 60)) * time.Second

	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if connMaxLife > 0 {
		sqlDB.SetConnMaxLifetime(connMaxLife)
	}
	if connMaxIdle > 0 {
		sqlDB.SetConnMaxIdleTime(connMaxIdle)
	}
}

func envOrDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// InitConfig Initialize Config
func initConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         initLog(),
		NamingStrategy: initNamingStrategy(),
	}
}

// InitLog Connection Log Configuration
func initLog() logger.Interface {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			Colorful:      false,
			LogLevel:      logger.Error,
			SlowThreshold: time.Second,
		},
	)
	return newLogger
}

// InitNamingStrategy Init NamingStrategy
func initNamingStrategy() *schema.NamingStrategy {
	return &schema.NamingStrategy{
		SingularTable: false,
		TablePrefix:   "",
	}
}
