package ports

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFileSystem_WriteReadExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	fs := NewRealFileSystem()
	require.False(t, fs.Exists(path))

	require.NoError(t, fs.WriteFile(path, []byte(`{"a":1}`), 0o644))
	assert.True(t, fs.Exists(path))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestRealFileSystem_CopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "package.json")
	dst := filepath.Join(dir, "package.json.bak")

	fs := NewRealFileSystem()
	require.NoError(t, fs.WriteFile(src, []byte("original"), 0o644))
	require.NoError(t, fs.CopyFile(src, dst))

	data, err := fs.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	// Mutating the source afterward must not affect the already-taken copy.
	require.NoError(t, fs.WriteFile(src, []byte("mutated"), 0o644))
	data, err = fs.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestRealFileSystem_RenameIsAtomicOverExisting(t *testing.T) {
	dir := t.TempDir()
	backup := filepath.Join(dir, "package.json.bak")
	live := filepath.Join(dir, "package.json")

	fs := NewRealFileSystem()
	require.NoError(t, fs.WriteFile(live, []byte("broken"), 0o644))
	require.NoError(t, fs.WriteFile(backup, []byte("original"), 0o644))

	require.NoError(t, fs.Rename(backup, live))
	assert.False(t, fs.Exists(backup))

	data, err := fs.ReadFile(live)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestRealFileSystem_Remove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stale.bak")

	fs := NewRealFileSystem()
	require.NoError(t, fs.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, fs.Remove(path))
	assert.False(t, fs.Exists(path))
}

func TestMockFileSystem_RoundTrip(t *testing.T) {
	fs := NewMockFileSystem()
	fs.AddFile("/proj/package.json", `{"deps":{}}`)

	assert.True(t, fs.Exists("/proj/package.json"))

	require.NoError(t, fs.CopyFile("/proj/package.json", "/proj/package.json.bak"))
	require.NoError(t, fs.WriteFile("/proj/package.json", []byte(`{"deps":{"zod":"1.0.0"}}`), 0o644))

	backup, err := fs.ReadFile("/proj/package.json.bak")
	require.NoError(t, err)
	assert.Equal(t, `{"deps":{}}`, string(backup))

	require.NoError(t, fs.Rename("/proj/package.json.bak", "/proj/package.json"))
	restored, err := fs.ReadFile("/proj/package.json")
	require.NoError(t, err)
	assert.Equal(t, `{"deps":{}}`, string(restored))
}

func TestMockFileSystem_MissingFileErrors(t *testing.T) {
	fs := NewMockFileSystem()
	_, err := fs.ReadFile("/nowhere")
	require.Error(t, err)

	err = fs.Remove("/nowhere")
	require.Error(t, err)

	err = fs.Rename("/nowhere", "/elsewhere")
	require.Error(t, err)
}
