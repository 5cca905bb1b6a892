// Package project runs configuration passes over Maven project directories.
//
// A pass loads the project's pom.xml, .classpath and JDT prefs, runs the
// [eea.Configurator] steps and writes the results back:
//
//	runner := project.NewRunner(ws, resolver, logger)
//	result, err := runner.Run(ctx, project.Options{Dir: "."})
//
// The declared Maven dependencies are resolved and presented to the
// configurator as classpath entries. When the .classpath uses the M2E
// dependency container those entries stay in memory (M2E computes the
// container itself); otherwise, or with Options.Materialize, they are
// merged into the .classpath as M2_REPO variable entries.
package project

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lastnpe/eeaconf/pkg/archive"
	"github.com/lastnpe/eeaconf/pkg/classpath"
	"github.com/lastnpe/eeaconf/pkg/config"
	"github.com/lastnpe/eeaconf/pkg/eea"
	"github.com/lastnpe/eeaconf/pkg/errors"
	"github.com/lastnpe/eeaconf/pkg/jdt"
	"github.com/lastnpe/eeaconf/pkg/maven"
	"github.com/lastnpe/eeaconf/pkg/observability"
	"github.com/lastnpe/eeaconf/pkg/workspace"
)

// Options configures one pass.
type Options struct {
	// Dir is the project directory holding pom.xml and .classpath.
	Dir string
	// DryRun leaves all files untouched.
	DryRun bool
	// Materialize writes resolved dependencies into the .classpath even
	// when it uses the M2E dependency container.
	Materialize bool
	// Repositories are searched after the ones the pom declares.
	Repositories []maven.Repository
}

// Result describes a finished pass.
type Result struct {
	PassID      string
	Project     *maven.Project
	Classpath   *classpath.Classpath
	Prefs       *jdt.Prefs
	Annotations []eea.Annotation
	// Dependencies are the classpath entries of resolved dependencies.
	Dependencies []*classpath.Entry
	// Materialized is set when Dependencies were merged into Classpath.
	Materialized bool
	// CompilerOptions names the source of imported JDT options, "" if none.
	CompilerOptions string
	// Written lists the files saved.
	Written  []string
	Duration time.Duration
}

// Runner executes passes. It is not safe for concurrent use because passes
// register projects in the shared workspace.
type Runner struct {
	Workspace *workspace.Workspace
	Resolver  *maven.Resolver
	Reader    *archive.Reader
	Logger    *log.Logger
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(ws *workspace.Workspace, resolver *maven.Resolver, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Workspace: ws,
		Resolver:  resolver,
		Reader:    archive.NewReader(logger),
		Logger:    logger,
	}
}

// Load reads the pom.xml of the project in dir.
func Load(dir string) (*maven.Project, error) {
	if err := errors.ValidateProjectDir(dir); err != nil {
		return nil, err
	}
	return maven.Load(filepath.Join(dir, maven.POMFile))
}

// Run executes one configuration pass.
func (r *Runner) Run(ctx context.Context, opts Options) (result *Result, err error) {
	start := time.Now()
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "project directory %s", opts.Dir)
	}

	hooks := observability.Configure()
	hooks.OnPassStart(ctx, dir)
	defer func() {
		n := 0
		if result != nil {
			n = len(result.Annotations)
		}
		hooks.OnPassComplete(ctx, dir, n, time.Since(start), err)
	}()

	p, err := Load(dir)
	if err != nil {
		return nil, err
	}
	cp, err := classpath.Load(filepath.Join(dir, classpath.FileName))
	if err != nil {
		return nil, err
	}
	prefsPath := jdt.PathFor(dir)
	prefs, err := jdt.Load(prefsPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "cannot read %s", prefsPath)
	}
	if _, err := r.Workspace.AddProject(dir); err != nil {
		r.Logger.Warn("Cannot register project in workspace", "dir", dir, "err", err)
	}
	cp.InferArtifacts(r.Resolver.LocalRepo())

	result = &Result{
		PassID:    uuid.NewString(),
		Project:   p,
		Classpath: cp,
		Prefs:     prefs,
	}
	logger := r.Logger.With("pass", result.PassID)
	logger.Debug("Configuring project", "project", p.ID(), "dir", dir)

	facade := &facade{Project: p, extra: opts.Repositories}
	conf := eea.NewConfigurator(eea.Options{
		Workspace: r.Workspace,
		Resolver:  r.Resolver,
		Reader:    &archive.Reader{Logger: logger},
		Logger:    logger,
	})

	result.CompilerOptions = conf.Configure(ctx, facade, prefs)

	raw, err := conf.ConfigureRawClasspath(ctx, facade, cp)
	if err != nil {
		return nil, err
	}
	result.Annotations = append(result.Annotations, raw...)

	result.Dependencies = r.dependencyEntries(ctx, facade, logger)
	view := cp
	if opts.Materialize || cp.FindPrefix(classpath.KindContainer, eea.MavenContainer) == nil {
		cp.Merge(result.Dependencies)
		result.Materialized = true
	} else {
		view = classpath.New()
		for _, e := range cp.Entries() {
			view.Add(e)
		}
		for _, e := range result.Dependencies {
			view.Add(e)
		}
	}
	entries, err := conf.ConfigureClasspath(ctx, facade, view)
	if err != nil {
		return nil, err
	}
	result.Annotations = append(result.Annotations, entries...)

	if !opts.DryRun {
		cpPath := filepath.Join(dir, classpath.FileName)
		if err := cp.Save(cpPath); err != nil {
			return nil, err
		}
		result.Written = append(result.Written, cpPath)
		if prefs.Changed() {
			if err := prefs.Save(prefsPath); err != nil {
				return nil, err
			}
			result.Written = append(result.Written, prefsPath)
		}
	}

	result.Duration = time.Since(start)
	logger.Info("Configured project", "project", p.ID(),
		"annotated", len(result.Annotations), "duration", result.Duration.Round(time.Millisecond))
	return result, nil
}

// dependencyEntries resolves the declared dependencies into classpath
// entries. Unresolvable dependencies are logged and skipped.
func (r *Runner) dependencyEntries(ctx context.Context, f eea.Facade, logger *log.Logger) []*classpath.Entry {
	var out []*classpath.Entry
	for _, d := range f.Dependencies() {
		if d.Scope == "import" || d.Type == "pom" {
			continue
		}
		a := d.Artifact()
		file := d.SystemPath
		if d.Scope != "system" || file == "" {
			res, err := r.Resolver.Resolve(ctx, a, f.Repositories())
			if err != nil {
				logger.Warn("Cannot resolve dependency", "artifact", a.String(), "err", err)
				continue
			}
			file = res.File
		}
		e := &classpath.Entry{Kind: classpath.KindLibrary, Path: r.Workspace.MemberPath(file), Artifact: &a}
		if rel, ok := r.relativeToVariable(file); ok {
			e.Kind = classpath.KindVariable
			e.Path = config.M2Repo + "/" + rel
		} else {
			e.SetAttribute(classpath.AttrGroupID, a.GroupID)
			e.SetAttribute(classpath.AttrArtifactID, a.ArtifactID)
			e.SetAttribute(classpath.AttrVersion, a.Version)
			if a.Classifier != "" {
				e.SetAttribute(classpath.AttrClassifier, a.Classifier)
			}
		}
		e.SetAttribute(classpath.AttrPomDerived, "true")
		out = append(out, e)
	}
	return out
}

// relativeToVariable expresses file relative to M2_REPO when the variable
// points at the local repository holding it.
func (r *Runner) relativeToVariable(file string) (string, bool) {
	root, ok := r.Workspace.Variable(config.M2Repo)
	if !ok {
		return "", false
	}
	rel, err := filepath.Rel(root, file)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// facade appends configured repositories to the pom's own.
type facade struct {
	*maven.Project
	extra []maven.Repository
}

func (f *facade) Repositories() []maven.Repository {
	if len(f.extra) == 0 {
		return f.Project.Repositories()
	}
	return append(append([]maven.Repository(nil), f.Project.Repositories()...), f.extra...)
}
