package eea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lastnpe/eeaconf/pkg/classpath"
	"github.com/lastnpe/eeaconf/pkg/gav"
	"github.com/lastnpe/eeaconf/pkg/maven"
	"github.com/lastnpe/eeaconf/pkg/observability"
)

// Container path prefixes.
const (
	JREContainer   = "org.eclipse.jdt.launching.JRE_CONTAINER"
	MavenContainer = "org.eclipse.m2e.MAVEN2_CLASSPATH_CONTAINER"
	PDEContainer   = "org.eclipse.pde.core.requiredPlugins"
)

// Project properties read by the configurator.
const (
	PropAnnotationPath      = "m2e.jdt.annotationpath"
	PropAnnotationPathJRE   = "m2e.eea.annotationpath.jre"
	PropAnnotationPathMaven = "m2e.eea.annotationpath.maven"
	PropAnnotationPathPDE   = "m2e.eea.annotationpath.pde"
)

// eeaSuffix is the artifactId naming convention of EEA artifacts.
const eeaSuffix = "-eea"

// Workspace maps logical classpath paths to files and back.
type Workspace interface {
	// ToFile resolves a workspace, variable or filesystem path.
	ToFile(path string) (string, bool)
	// ProjectPathFor returns the workspace path of the open project located
	// at file (or at file's target/classes), else file's absolute path.
	ProjectPathFor(file string) string
}

// ArtifactResolver locates the file of an artifact.
type ArtifactResolver interface {
	Resolve(ctx context.Context, a gav.Artifact, repos []maven.Repository) (*maven.Resolved, error)
}

// Facade is the Maven project model seen by the configurator.
// It is implemented by *maven.Project.
type Facade interface {
	Property(name string) (string, bool)
	Dependencies() []maven.Dependency
	Plugin(key string) *maven.Plugin
	Repositories() []maven.Repository
	Basedir() string
}

// Annotation records one annotationpath set during a pass.
type Annotation struct {
	Entry *classpath.Entry
	Path  string
}

// Options configures [NewConfigurator].
type Options struct {
	Workspace Workspace
	Resolver  ArtifactResolver
	Reader    Reader
	Logger    *log.Logger
}

// Configurator annotates classpath entries of one project at a time.
type Configurator struct {
	workspace Workspace
	resolver  ArtifactResolver
	reader    Reader
	builder   *Builder
	logger    *log.Logger
}

// NewConfigurator creates a configurator.
func NewConfigurator(opts Options) *Configurator {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Configurator{
		workspace: opts.Workspace,
		resolver:  opts.Resolver,
		reader:    opts.Reader,
		builder:   NewBuilder(opts.Workspace, opts.Reader, logger),
		logger:    logger,
	}
}

// Builder returns the configurator's mapping builder.
func (c *Configurator) Builder() *Builder { return c.builder }

// ConfigureClasspath builds the mapping from the locations of all lib and
// var entries of cp, then annotates every entry whose artifact matches a
// mapped coordinate. The JRE container is not handled here but in
// [Configurator.ConfigureRawClasspath].
func (c *Configurator) ConfigureClasspath(ctx context.Context, f Facade, cp *classpath.Classpath) ([]Annotation, error) {
	anchor := c.workspace.ProjectPathFor(f.Basedir())

	var locations []string
	for _, e := range cp.Entries() {
		if loc, ok := e.Location(anchor); ok {
			locations = append(locations, loc)
		}
	}
	mapping, err := c.builder.Build(locations)
	if err != nil {
		return nil, err
	}
	if mapping.Len() == 0 {
		return nil, nil
	}

	var out []Annotation
	for _, e := range cp.Entries() {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if e.Artifact == nil {
			continue
		}
		m, ok := mapping.Best(*e.Artifact)
		if !ok {
			continue
		}
		out = append(out, c.set(e, m.Location))
	}
	return out, nil
}

// ConfigureRawClasspath annotates container entries from project
// properties, falling back to the JRE annotations of a *-eea dependency.
func (c *Configurator) ConfigureRawClasspath(ctx context.Context, f Facade, cp *classpath.Classpath) ([]Annotation, error) {
	if out, ok := c.setContainers(f, cp, PropAnnotationPath, ""); ok {
		return out, nil
	}

	var out []Annotation
	found := false
	for _, p := range []struct{ prop, prefix string }{
		{PropAnnotationPathJRE, JREContainer},
		{PropAnnotationPathMaven, MavenContainer},
		{PropAnnotationPathPDE, PDEContainer},
	} {
		set, ok := c.setContainers(f, cp, p.prop, p.prefix)
		out = append(out, set...)
		found = found || ok
	}
	if found {
		return out, nil
	}

	return c.configureJRE(ctx, f, cp)
}

// configureJRE scans the *-eea dependencies of f for one declaring java:java.
// At this stage the classpath holds containers only, so the declared
// dependencies are used instead of classpath entries.
func (c *Configurator) configureJRE(ctx context.Context, f Facade, cp *classpath.Classpath) ([]Annotation, error) {
	for _, d := range f.Dependencies() {
		if !strings.HasSuffix(d.ArtifactID, eeaSuffix) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file, ok := c.dependencyFile(ctx, f, d)
		if !ok {
			continue
		}
		coords, err := c.builder.Scan(file)
		if err != nil {
			return nil, err
		}
		if !containsJava(coords) {
			continue
		}
		return c.setContainerPath(cp, c.workspace.ProjectPathFor(file), JREContainer), nil
	}
	return nil, nil
}

func (c *Configurator) dependencyFile(ctx context.Context, f Facade, d maven.Dependency) (string, bool) {
	if d.Scope == "system" && d.SystemPath != "" {
		observability.Resolve().OnResolve(ctx, d.Artifact().String(), observability.SourceSystem, 0, nil)
		return d.SystemPath, true
	}
	res, err := c.resolver.Resolve(ctx, d.Artifact(), f.Repositories())
	if err != nil {
		c.logger.Warn("Cannot resolve dependency", "artifact", d.Artifact().String(), "err", err)
		return "", false
	}
	return res.File, true
}

// setContainers applies the trimmed value of prop to container entries
// starting with prefix (all containers for an empty prefix). It reports
// whether the property was set.
func (c *Configurator) setContainers(f Facade, cp *classpath.Classpath, prop, prefix string) ([]Annotation, bool) {
	path := ProjectWideAnnotationPath(f, prop)
	if path == "" {
		return nil, false
	}
	return c.setContainerPath(cp, path, prefix), true
}

func (c *Configurator) setContainerPath(cp *classpath.Classpath, path, prefix string) []Annotation {
	var out []Annotation
	for _, e := range cp.Entries() {
		if e.Kind != classpath.KindContainer || !strings.HasPrefix(e.Path, prefix) {
			continue
		}
		out = append(out, c.set(e, path))
	}
	return out
}

func (c *Configurator) set(e *classpath.Entry, path string) Annotation {
	e.SetAttribute(classpath.AttrAnnotationPath, path)
	c.logger.Info(fmt.Sprintf("Setting External Annotations of %s to %s", describe(e), path))
	return Annotation{Entry: e, Path: path}
}

// ProjectWideAnnotationPath returns the trimmed value of prop, "" when f is
// nil or the property is unset.
func ProjectWideAnnotationPath(f Facade, prop string) string {
	if f == nil {
		return ""
	}
	v, ok := f.Property(prop)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

func describe(e *classpath.Entry) string {
	var b strings.Builder
	b.WriteByte('[')
	if e.Artifact != nil {
		b.WriteString(e.Artifact.String())
		b.WriteString(" - ")
	}
	b.WriteString(e.Kind)
	b.WriteString(": ")
	b.WriteString(e.Path)
	b.WriteByte(']')
	return b.String()
}

func containsJava(coords []gav.Coordinate) bool {
	for _, c := range coords {
		if c == gav.Java {
			return true
		}
	}
	return false
}
