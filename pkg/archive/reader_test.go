package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJar(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func quietReader() (*Reader, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewReader(log.New(&buf)), &buf
}

func TestReadJar(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "jar.jar")
	writeJar(t, jar, map[string]string{
		"eea-for-gav":        "java:java",
		"nested/eea-for-gav": "nested:only",
	})
	r, _ := quietReader()

	first, ok := r.Read(jar, "eea-for-gav")
	require.True(t, ok)
	assert.Equal(t, "java:java", first)

	second, ok := r.Read(jar, "eea-for-gav")
	require.True(t, ok)
	assert.Equal(t, first, second)

	_, ok = r.Read(jar, "missing")
	assert.False(t, ok)

	nested, ok := r.Read(jar, "nested/eea-for-gav")
	require.True(t, ok)
	assert.Equal(t, "nested:only", nested)
}

func TestReadDirectoryMatchesArchive(t *testing.T) {
	dir := t.TempDir()
	unpacked := filepath.Join(dir, "unpacked")
	require.NoError(t, os.MkdirAll(filepath.Join(unpacked, "nested"), 0o755))
	content := "# JDK\njava:java\n\ncom.google.guava:guava\n"
	require.NoError(t, os.WriteFile(filepath.Join(unpacked, "eea-for-gav"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(unpacked, "nested", "eea-for-gav"), []byte("x:y"), 0o644))

	jar := filepath.Join(dir, "packed.jar")
	writeJar(t, jar, map[string]string{"eea-for-gav": content, "nested/eea-for-gav": "x:y"})

	r, _ := quietReader()
	for _, name := range []string{"eea-for-gav", "nested/eea-for-gav"} {
		fromDir, okDir := r.Read(unpacked, name)
		fromJar, okJar := r.Read(jar, name)
		assert.True(t, okDir, name)
		assert.True(t, okJar, name)
		assert.Equal(t, fromDir, fromJar, name)
	}

	_, ok := r.Read(unpacked, "missing")
	assert.False(t, ok)
}

func TestReadMissingLocation(t *testing.T) {
	r, buf := quietReader()
	_, ok := r.Read(filepath.Join(t.TempDir(), "does-not-exist.jar"), "eea-for-gav")
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "File does not exist")
}

func TestReadCorruptArchive(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "corrupt.jar")
	require.NoError(t, os.WriteFile(bad, []byte("not a zip file"), 0o644))

	r, buf := quietReader()
	_, ok := r.Read(bad, "eea-for-gav")
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "Cannot open archive")
}

func TestZeroValueReader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "eea-for-gav"), []byte("g:a"), 0o644))

	var r Reader
	got, ok := r.Read(dir, "eea-for-gav")
	require.True(t, ok)
	assert.Equal(t, "g:a", got)
}
