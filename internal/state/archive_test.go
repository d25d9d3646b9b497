package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiverStoreCompressesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	clock := clockwork.NewFakeClockAt(testStart)
	archiver, err := NewArchiver(filepath.Join(dir, "archive"), 5, clock)
	require.NoError(t, err)

	payload := []byte(`{"versao":"3.0","temperatura":{"zona":"IDEAL"}}`)
	name, err := archiver.Store(payload)
	require.NoError(t, err)
	assert.Equal(t, "states-20260825T120000Z.json.zst", name)

	compressed, err := os.ReadFile(filepath.Join(archiver.Dir(), name))
	require.NoError(t, err)

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	require.NoError(t, err)
	defer dec.Close()

	restored, err := dec.DecodeAll(compressed, nil)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}

func TestArchiverPrunesOldest(t *testing.T) {
	dir := t.TempDir()
	clock := clockwork.NewFakeClockAt(testStart)
	archiver, err := NewArchiver(dir, 2, clock)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := archiver.Store([]byte("doc"))
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "states-20260825T120100Z.json.zst", entries[0].Name())
	assert.Equal(t, "states-20260825T120200Z.json.zst", entries[1].Name())
}

func TestArchiverIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep me"), 0o644))

	clock := clockwork.NewFakeClockAt(testStart)
	archiver, err := NewArchiver(dir, 1, clock)
	require.NoError(t, err)

	_, err = archiver.Store([]byte("a"))
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = archiver.Store([]byte("b"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "notes.txt"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // notes.txt plus the newest archive
}

func TestArchiverCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	clock := clockwork.NewFakeClockAt(testStart)
	nested := filepath.Join(dir, "a", "b", "archive")
	archiver, err := NewArchiver(nested, 3, clock)
	require.NoError(t, err)

	_, err = archiver.Store([]byte("doc"))
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
