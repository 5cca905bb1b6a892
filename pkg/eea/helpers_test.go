package eea

import (
	"context"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"github.com/lastnpe/eeaconf/pkg/archive"
	"github.com/lastnpe/eeaconf/pkg/errors"
	"github.com/lastnpe/eeaconf/pkg/gav"
	"github.com/lastnpe/eeaconf/pkg/maven"
	"github.com/lastnpe/eeaconf/pkg/observability"
	"github.com/lastnpe/eeaconf/pkg/workspace"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

// writeJar creates a JAR at path holding the given entries.
func writeJar(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

type fakeResolver struct {
	files map[string]string // artifact string -> file
	calls []string
}

func (r *fakeResolver) Resolve(_ context.Context, a gav.Artifact, _ []maven.Repository) (*maven.Resolved, error) {
	r.calls = append(r.calls, a.String())
	file, ok := r.files[a.String()]
	if !ok {
		return nil, errors.New(errors.ErrCodePackageNotFound, "%s not found", a)
	}
	return &maven.Resolved{Artifact: a, File: file, Source: observability.SourceLocal}, nil
}

type fakeFacade struct {
	props   map[string]string
	deps    []maven.Dependency
	plugins map[string]*maven.Plugin
	dir     string
}

func (f *fakeFacade) Property(name string) (string, bool) {
	v, ok := f.props[name]
	return v, ok
}

func (f *fakeFacade) Dependencies() []maven.Dependency { return f.deps }

func (f *fakeFacade) Plugin(key string) *maven.Plugin { return f.plugins[key] }

func (f *fakeFacade) Repositories() []maven.Repository {
	return []maven.Repository{{ID: "central", URL: maven.CentralURL}}
}

func (f *fakeFacade) Basedir() string { return f.dir }

// fixture is a workspace at root with M2_REPO pointing at repo.
type fixture struct {
	root     string
	repo     string
	ws       *workspace.Workspace
	resolver *fakeResolver
	conf     *Configurator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	base := t.TempDir()
	fx := &fixture{
		root:     filepath.Join(base, "workspace"),
		repo:     filepath.Join(base, "repository"),
		resolver: &fakeResolver{files: map[string]string{}},
	}
	require.NoError(t, os.MkdirAll(fx.root, 0o755))
	fx.ws = workspace.New(fx.root, workspace.Options{
		Variables: map[string]string{"M2_REPO": fx.repo},
		Logger:    quietLogger(),
	})
	fx.conf = NewConfigurator(Options{
		Workspace: fx.ws,
		Resolver:  fx.resolver,
		Reader:    archive.NewReader(quietLogger()),
		Logger:    quietLogger(),
	})
	return fx
}

// repoJar writes a JAR into the repository at rel and returns its path.
func (fx *fixture) repoJar(t *testing.T, rel string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(fx.repo, filepath.FromSlash(rel))
	writeJar(t, path, entries)
	return path
}

// project creates an open workspace project directory.
func (fx *fixture) project(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(fx.root, name)
	writeFile(t, filepath.Join(dir, workspace.DescriptorFile),
		"<projectDescription><name>"+name+"</name></projectDescription>")
	_, err := fx.ws.AddProject(dir)
	require.NoError(t, err)
	return dir
}

func compilerPlugin(propertiesPath string, deps ...maven.Dependency) *maven.Plugin {
	p := &maven.Plugin{
		GroupID:      "org.apache.maven.plugins",
		ArtifactID:   "maven-compiler-plugin",
		Dependencies: deps,
	}
	if propertiesPath != "" {
		p.Configuration = &maven.Node{Nodes: []maven.Node{{
			XMLName: xml.Name{Local: "compilerArguments"},
			Nodes: []maven.Node{{
				XMLName: xml.Name{Local: "properties"},
				Content: propertiesPath,
			}},
		}}}
	}
	return p
}
