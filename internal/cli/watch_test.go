package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lastnpe/eeaconf/pkg/project"
)

const watchPOM = `<project>
  <groupId>com.example</groupId>
  <artifactId>app</artifactId>
  <version>1.0.0</version>
  %s
</project>
`

func writePOM(t *testing.T, dir, properties string) string {
	t.Helper()
	path := filepath.Join(dir, "pom.xml")
	content := []byte(fmt.Sprintf(watchPOM, properties))
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func newTestWatcher(t *testing.T, dir string) *pomWatcher {
	t.Helper()
	current, err := project.Load(dir)
	require.NoError(t, err)
	return &pomWatcher{dir: dir, logger: log.New(io.Discard), current: current}
}

func TestPOMWatcherHandleEvent(t *testing.T) {
	const withPath = `<properties><m2e.jdt.annotationpath>/eea</m2e.jdt.annotationpath></properties>`

	tests := []struct {
		name       string
		file       string
		op         fsnotify.Op
		properties string
		want       bool
	}{
		{name: "property added", file: "pom.xml", op: fsnotify.Write, properties: withPath, want: true},
		{name: "pom replaced", file: "pom.xml", op: fsnotify.Create, properties: withPath, want: true},
		{name: "unrelated edit", file: "pom.xml", op: fsnotify.Write, properties: "", want: false},
		{name: "other file", file: ".classpath", op: fsnotify.Write, properties: withPath, want: false},
		{name: "chmod ignored", file: "pom.xml", op: fsnotify.Chmod, properties: withPath, want: false},
		{name: "remove ignored", file: "pom.xml", op: fsnotify.Remove, properties: withPath, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writePOM(t, dir, "")
			w := newTestWatcher(t, dir)

			writePOM(t, dir, tt.properties)
			ev := fsnotify.Event{Name: filepath.Join(dir, tt.file), Op: tt.op}
			assert.Equal(t, tt.want, w.handleEvent(ev))
		})
	}
}

func TestPOMWatcherTracksCurrentModel(t *testing.T) {
	const withPath = `<properties><m2e.jdt.annotationpath>/eea</m2e.jdt.annotationpath></properties>`

	dir := t.TempDir()
	path := writePOM(t, dir, "")
	w := newTestWatcher(t, dir)
	ev := fsnotify.Event{Name: path, Op: fsnotify.Write}

	writePOM(t, dir, withPath)
	require.True(t, w.handleEvent(ev), "first change should be reported")
	assert.False(t, w.handleEvent(ev), "unchanged pom should not be reported again")

	writePOM(t, dir, "")
	assert.True(t, w.handleEvent(ev), "removing the property should be reported")
}

func TestPOMWatcherInvalidPOM(t *testing.T) {
	dir := t.TempDir()
	path := writePOM(t, dir, "")
	w := newTestWatcher(t, dir)

	require.NoError(t, os.WriteFile(path, []byte("<project"), 0o644))
	assert.False(t, w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write}), "unparseable pom")
	assert.NotNil(t, w.current, "current model should be kept after a failed reload")
}
