package db

import (
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"

	"taskmind/internal/config"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

var (
	registerLowerOnce sync.Once
	registerLowerErr  error
)

func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	switch conf.DbDriver {
	case DriverSQLite:
		return ConnectSQLite(conf.SQLitePath)
	case DriverMySQL, "":
		return connectMySQL(conf)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", conf.DbDriver)
	}
}

func connectMySQL(conf *config.Config) (*sqlx.DB, error) {
	params := conf.DbParams
	if params == "" {
		params = "parseTime=true&multiStatements=true"
	}

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)

	return sqlx.Connect(DriverMySQL, dsn)
}

// ConnectSQLite opens path (":memory:" is allowed) on a single connection, so
// an in-memory database is shared by every query and writes are serialized.
func ConnectSQLite(path string) (*sqlx.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	if err := registerUnicodeLower(); err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(DriverSQLite, path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting pragma: %w", err)
	}
	return db, nil
}

// registerUnicodeLower replaces SQLite's built-in lower(), which only folds
// ASCII, so LOWER(category) agrees with strings.ToLower on the filter value.
// It must run before the first connection is opened.
func registerUnicodeLower() error {
	registerLowerOnce.Do(func() {
		registerLowerErr = sqlite.RegisterDeterministicScalarFunction("lower", 1, unicodeLower)
		if registerLowerErr != nil {
			registerLowerErr = fmt.Errorf("registering lower(): %w", registerLowerErr)
		}
	})
	return registerLowerErr
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch value := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(value), nil
	case []byte:
		return strings.ToLower(string(value)), nil
	default:
		return value, nil
	}
}
