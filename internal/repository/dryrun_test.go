package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"pantry-backend/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder keeps every statement gorm builds, with values inlined.
type sqlRecorder struct {
	mu   sync.Mutex
	stmt []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface      { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	query, _ := fc()
	if query == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stmt = append(r.stmt, query)
}

func (r *sqlRecorder) statements() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stmt...)
}

// only returns the single recorded statement.
func (r *sqlRecorder) only(t *testing.T) string {
	t.Helper()
	stmts := r.statements()
	require.Len(t, stmts, 1, "statements: %q", stmts)
	return stmts[0]
}

// indexOf returns the position of the first statement containing fragment, or -1.
func (r *sqlRecorder) indexOf(fragment string) int {
	for i, s := range r.statements() {
		if strings.Contains(s, fragment) {
			return i
		}
	}
	return -1
}

var errNoDatabase = errors.New("dry run: no database")

// nopPool satisfies gorm.ConnPool for DryRun sessions, which build SQL
// without sending it.
type nopPool struct{}

func (nopPool) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errNoDatabase
}

func (nopPool) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errNoDatabase
}

func (nopPool) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errNoDatabase
}

func (nopPool) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (p nopPool) BeginTx(context.Context, *sql.TxOptions) (gorm.ConnPool, error) {
	return &nopTx{p}, nil
}

// nopTx is the transaction handed out by nopPool.
type nopTx struct{ nopPool }

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

func newDryRunDB(t *testing.T) (*database.Database, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: nopPool{}}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 rec,
		NowFunc: func() time.Time {
			return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		},
	})
	require.NoError(t, err)
	return &database.Database{DB: gdb}, rec
}
