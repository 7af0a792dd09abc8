package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

func TestLoadAbsentFile(t *testing.T) {
	c := NewCollection[note](t.TempDir(), "notes")
	assert.Empty(t, c.Load())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := NewCollection[note](t.TempDir(), "notes")
	in := []note{{ID: "1", Body: "hola"}, {ID: "2", Body: "adios"}}
	require.NoError(t, c.SaveAll(in))
	assert.Equal(t, in, c.Load())
}

func TestMalformedFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	c := NewCollection[note](dir, "notes")
	assert.Empty(t, c.Load())

	// next save replaces the corrupt document
	require.NoError(t, c.SaveAll([]note{{ID: "1"}}))
	assert.Len(t, c.Load(), 1)
}

func TestSaveCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	c := NewCollection[note](dir, "notes")
	require.NoError(t, c.SaveAll([]note{{ID: "1"}}))
	assert.FileExists(t, filepath.Join(dir, "notes.json"))
}

func TestUpdateErrorWritesNothing(t *testing.T) {
	c := NewCollection[note](t.TempDir(), "notes")
	require.NoError(t, c.SaveAll([]note{{ID: "1"}}))

	err := c.Update(func(items []note) ([]note, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	assert.Len(t, c.Load(), 1)
}

func TestUpdateSerializesWriters(t *testing.T) {
	c := NewCollection[note](t.TempDir(), "notes")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Update(func(items []note) ([]note, error) {
				return append(items, note{ID: "x"}), nil
			})
		}()
	}
	wg.Wait()

	assert.Len(t, c.Load(), 20)
}
