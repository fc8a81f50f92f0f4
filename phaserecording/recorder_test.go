package phaserecording

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T) *sqliteWriter {
	w := &sqliteWriter{
		dbName:    filepath.Join(t.TempDir(), "run"),
		batchSize: 4096,
		tables:    make(map[string]*table),
	}
	w.init()

	t.Cleanup(func() { w.DB.Close() })

	return w
}

func TestCreateTable(t *testing.T) {
	w := newTestWriter(t)

	w.CreateTable("steps", StepEntry{})

	var name string
	err := w.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='steps'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "steps", name)
	assert.Equal(t, []string{"steps"}, w.ListTables())
}

func TestInsertAndFlush(t *testing.T) {
	w := newTestWriter(t)
	w.CreateTable("steps", StepEntry{})

	w.InsertData("steps", StepEntry{
		Seq: 0, Kind: "WorkBegin", Cursor: 0, Effects: 5, Halt: false,
	})
	w.InsertData("steps", StepEntry{
		Seq: 1, Kind: "WorkEnd", Cursor: 0, Effects: 1, Halt: true,
	})
	w.Flush()

	rows, err := w.Query("SELECT Seq, Kind, Halt FROM steps ORDER BY Seq")
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		seq  int
		kind string
		halt bool
	}

	var got []row
	for rows.Next() {
		var r row
		require.NoError(t, rows.Scan(&r.seq, &r.kind, &r.halt))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []row{
		{0, "WorkBegin", false},
		{1, "WorkEnd", true},
	}, got)
}

func TestInsertIntoMissingTable(t *testing.T) {
	w := newTestWriter(t)

	assert.Panics(t, func() {
		w.InsertData("missing", StepEntry{})
	})
}

func TestRejectNestedEntry(t *testing.T) {
	w := newTestWriter(t)

	type nested struct {
		Inner []int
	}

	assert.Panics(t, func() {
		w.CreateTable("nested", nested{})
	})
}
