package project

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lastnpe/eeaconf/pkg/classpath"
	"github.com/lastnpe/eeaconf/pkg/config"
	"github.com/lastnpe/eeaconf/pkg/eea"
	"github.com/lastnpe/eeaconf/pkg/errors"
	"github.com/lastnpe/eeaconf/pkg/jdt"
	"github.com/lastnpe/eeaconf/pkg/maven"
	"github.com/lastnpe/eeaconf/pkg/observability"
	"github.com/lastnpe/eeaconf/pkg/workspace"
)

const pom = `<project>
  <groupId>org.example</groupId>
  <artifactId>app</artifactId>
  <version>1.0</version>
  <dependencies>
    <dependency>
      <groupId>com.google.guava</groupId>
      <artifactId>guava</artifactId>
      <version>33.0.0-jre</version>
    </dependency>
    <dependency>
      <groupId>org.lastnpe.eea</groupId>
      <artifactId>jdk-eea</artifactId>
      <version>2.3.0</version>
    </dependency>
    <dependency>
      <groupId>org.example</groupId>
      <artifactId>unavailable</artifactId>
      <version>1.0</version>
    </dependency>
  </dependencies>
  <build>
    <plugins>
      <plugin>
        <artifactId>maven-compiler-plugin</artifactId>
        <dependencies>
          <dependency>
            <groupId>org.example</groupId>
            <artifactId>jdt-settings</artifactId>
            <version>1.0</version>
          </dependency>
        </dependencies>
      </plugin>
    </plugins>
  </build>
</project>`

const jreContainer = eea.JREContainer + "/org.eclipse.jdt.internal.debug.ui.launcher.StandardVMType/JavaSE-17"

const containerClasspath = `<?xml version="1.0" encoding="UTF-8"?>
<classpath>
	<classpathentry kind="src" output="target/classes" path="src/main/java"/>
	<classpathentry kind="con" path="` + jreContainer + `"/>
	<classpathentry kind="con" path="` + eea.MavenContainer + `"/>
	<classpathentry kind="output" path="target/classes"/>
</classpath>
`

const plainClasspath = `<?xml version="1.0" encoding="UTF-8"?>
<classpath>
	<classpathentry kind="src" path="src/main/java"/>
	<classpathentry kind="con" path="` + jreContainer + `"/>
	<classpathentry kind="output" path="target/classes"/>
</classpath>
`

type fixture struct {
	dir    string
	repo   string
	runner *Runner
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

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

func newFixture(t *testing.T, cpContent string) *fixture {
	t.Helper()
	base := t.TempDir()
	fx := &fixture{
		dir:  filepath.Join(base, "workspace", "app"),
		repo: filepath.Join(base, "repository"),
	}
	writeFile(t, filepath.Join(fx.dir, maven.POMFile), pom)
	writeFile(t, filepath.Join(fx.dir, classpath.FileName), cpContent)

	writeJar(t, filepath.Join(fx.repo, "com/google/guava/guava/33.0.0-jre/guava-33.0.0-jre.jar"),
		map[string]string{"com/google/common/base/Optional.class": ""})
	writeJar(t, filepath.Join(fx.repo, "org/lastnpe/eea/jdk-eea/2.3.0/jdk-eea-2.3.0.jar"),
		map[string]string{eea.MappingFile: "java:java\ncom.google.guava:guava\n"})
	writeJar(t, filepath.Join(fx.repo, "org/example/jdt-settings/1.0/jdt-settings-1.0.jar"),
		map[string]string{jdt.FileName: "org.eclipse.jdt.core.compiler.annotation.nullanalysis=enabled\n"})

	logger := log.New(io.Discard)
	ws := workspace.New(filepath.Dir(fx.dir), workspace.Options{
		Variables: map[string]string{config.M2Repo: fx.repo},
		Logger:    logger,
	})
	resolver := maven.NewResolver(maven.ResolverOptions{LocalRepo: fx.repo, Offline: true, Logger: logger})
	fx.runner = NewRunner(ws, resolver, logger)
	return fx
}

func (fx *fixture) reload(t *testing.T) *classpath.Classpath {
	t.Helper()
	cp, err := classpath.Load(filepath.Join(fx.dir, classpath.FileName))
	require.NoError(t, err)
	return cp
}

const (
	guavaVar = "M2_REPO/com/google/guava/guava/33.0.0-jre/guava-33.0.0-jre.jar"
	eeaVar   = "M2_REPO/org/lastnpe/eea/jdk-eea/2.3.0/jdk-eea-2.3.0.jar"
)

func TestRunWithMavenContainer(t *testing.T) {
	fx := newFixture(t, containerClasspath)

	res, err := fx.runner.Run(context.Background(), Options{Dir: fx.dir})
	require.NoError(t, err)

	assert.NotEmpty(t, res.PassID)
	assert.False(t, res.Materialized)
	assert.Len(t, res.Dependencies, 2, "unavailable dependency is skipped")
	assert.Equal(t, "org.example:jdt-settings:1.0", res.CompilerOptions)
	assert.Len(t, res.Written, 2)

	// JRE from the java:java declaration; guava only in memory.
	cp := fx.reload(t)
	require.Len(t, cp.Entries(), 4)
	assert.Equal(t, eeaVarFile(fx), cp.Find(classpath.KindContainer, jreContainer).AnnotationPath())
	assert.Empty(t, cp.Find(classpath.KindContainer, eea.MavenContainer).AnnotationPath())
	assert.Equal(t, eeaVar, res.Dependencies[0].AnnotationPath())

	prefs, err := jdt.Load(jdt.PathFor(fx.dir))
	require.NoError(t, err)
	v, _ := prefs.Get("org.eclipse.jdt.core.compiler.annotation.nullanalysis")
	assert.Equal(t, "enabled", v)
}

func eeaVarFile(fx *fixture) string {
	return filepath.Join(fx.repo, "org", "lastnpe", "eea", "jdk-eea", "2.3.0", "jdk-eea-2.3.0.jar")
}

func TestRunMaterializes(t *testing.T) {
	fx := newFixture(t, plainClasspath)

	res, err := fx.runner.Run(context.Background(), Options{Dir: fx.dir})
	require.NoError(t, err)
	assert.True(t, res.Materialized)

	cp := fx.reload(t)
	guava := cp.Find(classpath.KindVariable, guavaVar)
	require.NotNil(t, guava)
	assert.Equal(t, eeaVar, guava.AnnotationPath())
	require.NotNil(t, guava.Artifact)
	assert.Equal(t, "com.google.guava:guava:33.0.0-jre", guava.Artifact.String())
	assert.Equal(t, classpath.KindOutput, cp.Entries()[len(cp.Entries())-1].Kind)

	// A second pass is stable.
	_, err = fx.runner.Run(context.Background(), Options{Dir: fx.dir})
	require.NoError(t, err)
	assert.Len(t, fx.reload(t).Entries(), len(cp.Entries()))
}

func TestRunDryRun(t *testing.T) {
	fx := newFixture(t, containerClasspath)

	res, err := fx.runner.Run(context.Background(), Options{Dir: fx.dir, DryRun: true})
	require.NoError(t, err)
	assert.Empty(t, res.Written)
	assert.NotEmpty(t, res.Annotations)

	data, err := os.ReadFile(filepath.Join(fx.dir, classpath.FileName))
	require.NoError(t, err)
	assert.Equal(t, containerClasspath, string(data))
	_, err = os.Stat(jdt.PathFor(fx.dir))
	assert.True(t, os.IsNotExist(err))
}

func TestRunGlobalProperty(t *testing.T) {
	fx := newFixture(t, containerClasspath)
	withProp := `<project>
  <groupId>org.example</groupId>
  <artifactId>app</artifactId>
  <version>1.0</version>
  <properties>
    <m2e.jdt.annotationpath>/eea-project</m2e.jdt.annotationpath>
  </properties>
</project>`
	writeFile(t, filepath.Join(fx.dir, maven.POMFile), withProp)

	_, err := fx.runner.Run(context.Background(), Options{Dir: fx.dir})
	require.NoError(t, err)

	cp := fx.reload(t)
	assert.Equal(t, "/eea-project", cp.Find(classpath.KindContainer, jreContainer).AnnotationPath())
	assert.Equal(t, "/eea-project", cp.Find(classpath.KindContainer, eea.MavenContainer).AnnotationPath())
}

func TestRunMissingFiles(t *testing.T) {
	fx := newFixture(t, containerClasspath)
	require.NoError(t, os.Remove(filepath.Join(fx.dir, classpath.FileName)))

	_, err := fx.runner.Run(context.Background(), Options{Dir: fx.dir})
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))

	_, err = fx.runner.Run(context.Background(), Options{Dir: t.TempDir()})
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestRunReportsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &passHooks{}
	observability.SetConfigureHooks(hooks)

	fx := newFixture(t, containerClasspath)
	res, err := fx.runner.Run(context.Background(), Options{Dir: fx.dir, DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 1, hooks.started)
	assert.Equal(t, len(res.Annotations), hooks.annotated)
	assert.NoError(t, hooks.err)
}

type passHooks struct {
	observability.NoopConfigureHooks
	started   int
	annotated int
	err       error
}

func (h *passHooks) OnPassStart(context.Context, string) { h.started++ }

func (h *passHooks) OnPassComplete(_ context.Context, _ string, annotated int, _ time.Duration, err error) {
	h.annotated = annotated
	h.err = err
}

func TestRunWithWorkspaceEEAProject(t *testing.T) {
	fx := newFixture(t, containerClasspath)
	wsRoot := filepath.Dir(fx.dir)

	eeaDir := filepath.Join(wsRoot, "guava-eea")
	writeFile(t, filepath.Join(eeaDir, workspace.DescriptorFile),
		"<projectDescription><name>guava-eea</name></projectDescription>")
	writeFile(t, filepath.Join(eeaDir, maven.POMFile), `<project>
  <groupId>org.lastnpe.eea</groupId>
  <artifactId>guava-eea</artifactId>
  <version>1.0</version>
</project>`)
	writeFile(t, filepath.Join(eeaDir, "target", "classes", eea.MappingFile), "com.google.guava:guava\n")
	writeFile(t, filepath.Join(fx.dir, maven.POMFile), `<project>
  <groupId>org.example</groupId>
  <artifactId>app</artifactId>
  <version>1.0</version>
  <dependencies>
    <dependency>
      <groupId>com.google.guava</groupId>
      <artifactId>guava</artifactId>
      <version>33.0.0-jre</version>
    </dependency>
    <dependency>
      <groupId>org.lastnpe.eea</groupId>
      <artifactId>guava-eea</artifactId>
      <version>1.0</version>
    </dependency>
  </dependencies>
</project>`)

	logger := log.New(io.Discard)
	ws, err := workspace.Open(wsRoot, workspace.Options{
		Variables: map[string]string{config.M2Repo: fx.repo},
		Logger:    logger,
	})
	require.NoError(t, err)
	resolver := maven.NewResolver(maven.ResolverOptions{LocalRepo: fx.repo, Offline: true, Logger: logger})
	require.Equal(t, 1, resolver.IndexWorkspace(ws.Projects()))
	runner := NewRunner(ws, resolver, logger)

	res, err := runner.Run(context.Background(), Options{Dir: fx.dir, DryRun: true})
	require.NoError(t, err)
	require.Len(t, res.Dependencies, 2)

	guava, eeaEntry := res.Dependencies[0], res.Dependencies[1]
	assert.Equal(t, "/guava-eea/target/classes", eeaEntry.Path)
	assert.Equal(t, guavaVar, guava.Path)
	assert.Equal(t, "/guava-eea/target/classes", guava.AnnotationPath())
}
