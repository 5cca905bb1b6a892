package eea

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lastnpe/eeaconf/pkg/classpath"
	"github.com/lastnpe/eeaconf/pkg/errors"
	"github.com/lastnpe/eeaconf/pkg/gav"
	"github.com/lastnpe/eeaconf/pkg/maven"
)

const (
	jrePath   = JREContainer + "/org.eclipse.jdt.internal.debug.ui.launcher.StandardVMType/JavaSE-17"
	guavaPath = "M2_REPO/com/google/guava/guava/33.0.0-jre/guava-33.0.0-jre.jar"
	eeaPath   = "M2_REPO/org/lastnpe/eea/guava-eea/2.3.0/guava-eea-2.3.0.jar"
)

func containers() *classpath.Classpath {
	cp := classpath.New()
	cp.Add(&classpath.Entry{Kind: classpath.KindSource, Path: "src/main/java"})
	cp.Add(&classpath.Entry{Kind: classpath.KindContainer, Path: jrePath})
	cp.Add(&classpath.Entry{Kind: classpath.KindContainer, Path: MavenContainer})
	cp.Add(&classpath.Entry{Kind: classpath.KindContainer, Path: PDEContainer})
	cp.Add(&classpath.Entry{Kind: classpath.KindOutput, Path: "target/classes"})
	return cp
}

func annotationPaths(cp *classpath.Classpath) map[string]string {
	out := map[string]string{}
	for _, e := range cp.Entries() {
		if p := e.AnnotationPath(); p != "" {
			out[e.Path] = p
		}
	}
	return out
}

func TestConfigureClasspath(t *testing.T) {
	fx := newFixture(t)
	fx.repoJar(t, "com/google/guava/guava/33.0.0-jre/guava-33.0.0-jre.jar", map[string]string{"com/google/common/base/Optional.class": ""})
	fx.repoJar(t, "org/lastnpe/eea/guava-eea/2.3.0/guava-eea-2.3.0.jar", map[string]string{
		MappingFile: "com.google.guava:guava\n",
		"com/google/common/base/Optional.eea": "class com/google/common/base/Optional\n",
	})

	cp, err := classpath.Parse([]byte(`<classpath>
	<classpathentry kind="con" path="` + jrePath + `"/>
	<classpathentry kind="var" path="` + guavaPath + `"/>
	<classpathentry kind="var" path="` + eeaPath + `"/>
</classpath>`))
	require.NoError(t, err)

	got, err := fx.conf.ConfigureClasspath(context.Background(), &fakeFacade{dir: t.TempDir()}, cp)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, guavaPath, got[0].Entry.Path)
	assert.Equal(t, map[string]string{guavaPath: eeaPath}, annotationPaths(cp))
}

func TestConfigureClasspathRelativeLibrary(t *testing.T) {
	fx := newFixture(t)
	dir := fx.project(t, "app")
	writeJar(t, filepath.Join(dir, "lib", "x-eea.jar"), map[string]string{MappingFile: "org.example:x:1.0\n"})

	cp := classpath.New()
	cp.Add(&classpath.Entry{Kind: classpath.KindLibrary, Path: "lib/x-eea.jar"})
	cp.Add(&classpath.Entry{Kind: classpath.KindLibrary, Path: "/opt/x-1.0.jar",
		Artifact: &gav.Artifact{GroupID: "org.example", ArtifactID: "x", Version: "1.0"}})

	_, err := fx.conf.ConfigureClasspath(context.Background(), &fakeFacade{dir: dir}, cp)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"/opt/x-1.0.jar": "/app/lib/x-eea.jar"}, annotationPaths(cp))
}

func TestConfigureClasspathBadMapping(t *testing.T) {
	fx := newFixture(t)
	fx.repoJar(t, "org/lastnpe/eea/guava-eea/2.3.0/guava-eea-2.3.0.jar", map[string]string{MappingFile: "guava\n"})

	cp := classpath.New()
	cp.Add(&classpath.Entry{Kind: classpath.KindVariable, Path: eeaPath})

	_, err := fx.conf.ConfigureClasspath(context.Background(), &fakeFacade{dir: t.TempDir()}, cp)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidMapping))
}

func TestConfigureRawClasspathGlobalProperty(t *testing.T) {
	fx := newFixture(t)
	cp := containers()
	f := &fakeFacade{props: map[string]string{
		PropAnnotationPath:    "  /all-eea  ",
		PropAnnotationPathJRE: "/jre-only",
	}}

	got, err := fx.conf.ConfigureRawClasspath(context.Background(), f, cp)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, map[string]string{
		jrePath:        "/all-eea",
		MavenContainer: "/all-eea",
		PDEContainer:   "/all-eea",
	}, annotationPaths(cp))
}

func TestConfigureRawClasspathContainerProperties(t *testing.T) {
	fx := newFixture(t)
	cp := containers()
	f := &fakeFacade{
		props: map[string]string{
			PropAnnotationPath:      "   ",
			PropAnnotationPathJRE:   "/jdk-eea",
			PropAnnotationPathMaven: "/maven-eea",
		},
		deps: []maven.Dependency{{GroupID: "org.lastnpe.eea", ArtifactID: "jdk-eea", Version: "2.3.0"}},
	}

	_, err := fx.conf.ConfigureRawClasspath(context.Background(), f, cp)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		jrePath:        "/jdk-eea",
		MavenContainer: "/maven-eea",
	}, annotationPaths(cp))
	assert.Empty(t, fx.resolver.calls, "dependency scan must not run when a container property is set")
}

func TestConfigureRawClasspathJREFromDependency(t *testing.T) {
	fx := newFixture(t)
	other := fx.repoJar(t, "org/example/other-eea/1.0/other-eea-1.0.jar", map[string]string{MappingFile: "com.google.guava:guava\n"})
	jdk := fx.repoJar(t, "org/lastnpe/eea/jdk-eea/2.3.0/jdk-eea-2.3.0.jar", map[string]string{MappingFile: "java:java\n"})
	fx.resolver.files["org.example:other-eea:1.0"] = other
	fx.resolver.files["org.lastnpe.eea:jdk-eea:2.3.0"] = jdk

	cp := containers()
	f := &fakeFacade{deps: []maven.Dependency{
		{GroupID: "com.google.guava", ArtifactID: "guava", Version: "33.0.0-jre"},
		{GroupID: "org.example", ArtifactID: "missing-eea", Version: "1.0"},
		{GroupID: "org.example", ArtifactID: "other-eea", Version: "1.0"},
		{GroupID: "org.lastnpe.eea", ArtifactID: "jdk-eea", Version: "2.3.0"},
	}}

	got, err := fx.conf.ConfigureRawClasspath(context.Background(), f, cp)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]string{jrePath: jdk}, annotationPaths(cp))
	assert.Equal(t, []string{"org.example:missing-eea:1.0", "org.example:other-eea:1.0", "org.lastnpe.eea:jdk-eea:2.3.0"},
		fx.resolver.calls, "only *-eea dependencies are resolved")
}

func TestConfigureRawClasspathJREFromWorkspaceProject(t *testing.T) {
	fx := newFixture(t)
	dir := fx.project(t, "jdk-eea")
	classes := filepath.Join(dir, "target", "classes")
	writeFile(t, filepath.Join(classes, MappingFile), "java:java\n")
	fx.resolver.files["org.lastnpe.eea:jdk-eea:2.3.1-SNAPSHOT"] = classes

	cp := containers()
	f := &fakeFacade{deps: []maven.Dependency{
		{GroupID: "org.lastnpe.eea", ArtifactID: "jdk-eea", Version: "2.3.1-SNAPSHOT"},
	}}

	_, err := fx.conf.ConfigureRawClasspath(context.Background(), f, cp)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{jrePath: "/jdk-eea"}, annotationPaths(cp))
}

func TestConfigureRawClasspathSystemDependency(t *testing.T) {
	fx := newFixture(t)
	jar := filepath.Join(t.TempDir(), "jdk-eea.jar")
	writeJar(t, jar, map[string]string{MappingFile: "java:java\n"})

	cp := containers()
	f := &fakeFacade{deps: []maven.Dependency{
		{GroupID: "local", ArtifactID: "jdk-eea", Version: "1", Scope: "system", SystemPath: jar},
	}}

	_, err := fx.conf.ConfigureRawClasspath(context.Background(), f, cp)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{jrePath: jar}, annotationPaths(cp))
	assert.Empty(t, fx.resolver.calls)
}

func TestConfigureRawClasspathNothingToDo(t *testing.T) {
	fx := newFixture(t)
	cp := containers()

	got, err := fx.conf.ConfigureRawClasspath(context.Background(), &fakeFacade{}, cp)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, annotationPaths(cp))
}

func TestProjectChanged(t *testing.T) {
	withPath := func(v string) Facade {
		return &fakeFacade{props: map[string]string{PropAnnotationPath: v}}
	}
	assert.False(t, ProjectChanged(nil, nil))
	assert.False(t, ProjectChanged(withPath("/eea"), withPath(" /eea ")))
	assert.False(t, ProjectChanged(&fakeFacade{}, nil))
	assert.True(t, ProjectChanged(withPath("/old"), withPath("/new")))
	assert.True(t, ProjectChanged(nil, withPath("/new")))
	assert.True(t, ProjectChanged(withPath("/old"), &fakeFacade{}))
}
