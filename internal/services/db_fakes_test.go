package services

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"
)

// fakeDB implements DBConn with per-call function fields. Unset fields fall
// back to harmless defaults so a test only wires the calls it cares about.
type fakeDB struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (CommandTag, error)
	BeginFunc    func(ctx context.Context) (Tx, error)

	execCalls []string
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if f.QueryFunc != nil {
		return f.QueryFunc(ctx, sql, args...)
	}
	return &fakeRows{}, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if f.QueryRowFunc != nil {
		return f.QueryRowFunc(ctx, sql, args...)
	}
	return errRow{err: pgx.ErrNoRows}
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	f.execCalls = append(f.execCalls, sql)
	if f.ExecFunc != nil {
		return f.ExecFunc(ctx, sql, args...)
	}
	return fakeCommandTag{rowsAffected: 1}, nil
}

func (f *fakeDB) Begin(ctx context.Context) (Tx, error) {
	if f.BeginFunc != nil {
		return f.BeginFunc(ctx)
	}
	return &fakeTx{}, nil
}

// fakeTx records commit/rollback and delegates statements to function fields.
type fakeTx struct {
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (CommandTag, error)

	execCalls  []string
	committed  bool
	rolledBack bool
}

func (f *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if f.QueryRowFunc != nil {
		return f.QueryRowFunc(ctx, sql, args...)
	}
	return errRow{err: pgx.ErrNoRows}
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	f.execCalls = append(f.execCalls, sql)
	if f.ExecFunc != nil {
		return f.ExecFunc(ctx, sql, args...)
	}
	return fakeCommandTag{rowsAffected: 1}, nil
}

func (f *fakeTx) Commit(ctx context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeCommandTag struct {
	rowsAffected int64
}

func (f fakeCommandTag) RowsAffected() int64 {
	return f.rowsAffected
}

// errRow fails every Scan with the given error.
type errRow struct {
	err error
}

func (r errRow) Scan(dest ...any) error {
	return r.err
}

// rowFromValues returns a Row whose Scan copies the given values into the
// destinations positionally.
func rowFromValues(values ...any) Row {
	return valueRow{values: values}
}

type valueRow struct {
	values []any
}

func (r valueRow) Scan(dest ...any) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d)
		if dv.Kind() != reflect.Pointer {
			return fmt.Errorf("scan: destination %d is not a pointer", i)
		}
		dv.Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

// fakeRows yields one row per entry in rows. A non-nil err surfaces from
// Err() after iteration, like a connection dropping mid-scan.
type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	return valueRow{values: f.rows[f.idx-1]}.Scan(dest...)
}

func (f *fakeRows) Close() {}

func (f *fakeRows) Err() error { return f.err }

// fakeRedis is an in-memory RedisConn with injectable failures.
type fakeRedis struct {
	data   map[string]string
	setErr error
	getErr error
	delErr error

	setCalls int
	delCalls int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return v, nil
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) error {
	f.delCalls++
	if f.delErr != nil {
		return f.delErr
	}
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}
