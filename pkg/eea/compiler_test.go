package eea

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lastnpe/eeaconf/pkg/jdt"
	"github.com/lastnpe/eeaconf/pkg/maven"
)

const prefsText = "org.eclipse.jdt.core.compiler.annotation.nullanalysis=enabled\norg.eclipse.jdt.core.compiler.problem.nullReference=error\n"

var (
	tycho      = maven.Dependency{GroupID: "org.eclipse.tycho", ArtifactID: "tycho-compiler-jdt", Version: "4.0.0"}
	settingsV1 = maven.Dependency{GroupID: "org.example", ArtifactID: "jdt-settings", Version: "1.0"}
)

func facadeWith(dir string, plugin *maven.Plugin) *fakeFacade {
	return &fakeFacade{dir: dir, plugins: map[string]*maven.Plugin{CompilerPlugin: plugin}}
}

func TestConfigureFromPluginDependency(t *testing.T) {
	fx := newFixture(t)
	jar := fx.repoJar(t, "org/example/jdt-settings/1.0/jdt-settings-1.0.jar", map[string]string{jdt.FileName: prefsText})
	fx.resolver.files[settingsV1.Artifact().String()] = jar

	prefs, err := jdt.Parse([]byte("org.eclipse.jdt.core.compiler.source=17\n"))
	require.NoError(t, err)

	src := fx.conf.Configure(context.Background(), facadeWith(t.TempDir(), compilerPlugin("", tycho, settingsV1)), prefs)
	assert.Equal(t, "org.example:jdt-settings:1.0", src)
	assert.Equal(t, []string{"org.example:jdt-settings:1.0"}, fx.resolver.calls, "tycho-compiler-jdt is never resolved")

	assert.Equal(t, map[string]string{
		"org.eclipse.jdt.core.compiler.source":                  "17",
		"org.eclipse.jdt.core.compiler.annotation.nullanalysis": "enabled",
		"org.eclipse.jdt.core.compiler.problem.nullReference":   "error",
	}, prefs.Options())
}

func TestConfigureFromConfigurationPath(t *testing.T) {
	fx := newFixture(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "build", "jdt.prefs"), prefsText)

	prefs := jdt.New()
	// The dependency does not resolve, so the configured file is used.
	src := fx.conf.Configure(context.Background(), facadeWith(dir, compilerPlugin("build/jdt.prefs", settingsV1)), prefs)
	assert.Equal(t, filepath.Join(dir, "build", "jdt.prefs"), src)
	assert.Equal(t, 2, prefs.Len())
}

func TestConfigureIgnoresSettingsDirectory(t *testing.T) {
	fx := newFixture(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".settings", jdt.FileName)
	writeFile(t, path, prefsText)

	prefs := jdt.New()
	assert.Empty(t, fx.conf.Configure(context.Background(), facadeWith(dir, compilerPlugin(path)), prefs))
	assert.Zero(t, prefs.Len())
}

func TestConfigureMissingPieces(t *testing.T) {
	fx := newFixture(t)
	dir := t.TempDir()
	prefs := jdt.New()

	assert.Empty(t, fx.conf.Configure(context.Background(), &fakeFacade{dir: dir}, prefs), "no compiler plugin")
	assert.Empty(t, fx.conf.Configure(context.Background(), facadeWith(dir, compilerPlugin("")), prefs), "no configuration")
	assert.Empty(t, fx.conf.Configure(context.Background(), facadeWith(dir, compilerPlugin("absent.prefs")), prefs), "file missing")
	assert.Zero(t, prefs.Len())
	assert.False(t, prefs.Changed())
}
