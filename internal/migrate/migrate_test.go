package migrate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/tablefinder/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boolRow struct{ v bool }

func (r boolRow) Scan(dest ...any) error {
	*(dest[0].(*bool)) = r.v
	return nil
}

type fakeDB struct {
	applied map[string]bool
	execs   []string
	failOn  string
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) error {
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return errors.New("syntax error")
	}
	f.execs = append(f.execs, sql)
	if strings.HasPrefix(sql, "INSERT INTO schema_migrations") {
		f.applied[args[0].(string)] = true
	}
	return nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) db.Row {
	return boolRow{v: f.applied[args[0].(string)]}
}

func (f *fakeDB) Query(context.Context, string, ...any) (db.Rows, error) {
	return nil, errors.New("not used")
}

func TestFilesAreOrdered(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "0001_booking_attempts.sql", files[0])
	assert.IsNonDecreasing(t, files)
}

func TestUpAppliesOnce(t *testing.T) {
	d := &fakeDB{applied: map[string]bool{}}
	applied, err := Up(context.Background(), d)
	require.NoError(t, err)
	assert.Contains(t, applied, "0001_booking_attempts.sql")
	assert.True(t, d.applied["0001_booking_attempts.sql"])

	applied, err = Up(context.Background(), d)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestUpReportsFailingFile(t *testing.T) {
	d := &fakeDB{applied: map[string]bool{}, failOn: "CREATE TABLE IF NOT EXISTS booking_attempts"}
	_, err := Up(context.Background(), d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply 0001_booking_attempts.sql")
	assert.False(t, d.applied["0001_booking_attempts.sql"])
}
