package maven

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lastnpe/eeaconf/pkg/cache"
	"github.com/lastnpe/eeaconf/pkg/errors"
	"github.com/lastnpe/eeaconf/pkg/gav"
	"github.com/lastnpe/eeaconf/pkg/integrations"
	mavenrepo "github.com/lastnpe/eeaconf/pkg/integrations/maven"
	"github.com/lastnpe/eeaconf/pkg/observability"
	"github.com/lastnpe/eeaconf/pkg/workspace"
)

// POMFile is the Maven project descriptor file name.
const POMFile = "pom.xml"

// Resolved is an artifact together with the file that backs it.
type Resolved struct {
	Artifact gav.Artifact
	File     string // JAR, or project output directory for workspace projects
	Source   string // one of the observability.Source* constants
}

// Fetcher downloads an artifact from a repository.
// It is implemented by the integrations/maven Client.
type Fetcher interface {
	Fetch(ctx context.Context, repoURL string, a gav.Artifact, w io.Writer) (int64, error)
}

// ResolverOptions configures [NewResolver].
type ResolverOptions struct {
	// LocalRepo is the local repository root, ~/.m2/repository by default.
	LocalRepo string
	// Remote downloads missing artifacts. Nil disables remote repositories.
	Remote Fetcher
	// Cache remembers remote misses. Nil disables the negative cache.
	Cache cache.Cache
	// MissTTL is how long a remote miss is remembered.
	MissTTL time.Duration
	Offline bool
	Logger  *log.Logger
}

// Resolver locates artifact files: workspace projects first, then the local
// repository, then remote repositories.
type Resolver struct {
	localRepo string
	remote    Fetcher
	cache     cache.Cache
	missTTL   time.Duration
	offline   bool
	logger    *log.Logger

	projects map[string]string // "g:a:v" -> project directory
}

// DefaultLocalRepo returns ~/.m2/repository.
func DefaultLocalRepo() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".m2", "repository")
	}
	return filepath.Join(home, ".m2", "repository")
}

// NewResolver creates a resolver.
func NewResolver(opts ResolverOptions) *Resolver {
	r := &Resolver{
		localRepo: opts.LocalRepo,
		remote:    opts.Remote,
		cache:     opts.Cache,
		missTTL:   opts.MissTTL,
		offline:   opts.Offline,
		logger:    opts.Logger,
		projects:  make(map[string]string),
	}
	if r.localRepo == "" {
		r.localRepo = DefaultLocalRepo()
	}
	if r.cache == nil {
		r.cache = cache.NewNullCache()
	}
	if r.missTTL <= 0 {
		r.missTTL = cache.TTLMiss
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// LocalRepo returns the local repository root.
func (r *Resolver) LocalRepo() string { return r.localRepo }

// LocalPath returns where a lives in the local repository.
func (r *Resolver) LocalPath(a gav.Artifact) string {
	return filepath.Join(r.localRepo, filepath.FromSlash(mavenrepo.ArtifactPath(a)))
}

// AddProject registers a workspace project so that its coordinates resolve
// to dir instead of a repository file.
func (r *Resolver) AddProject(p *Project, dir string) {
	r.projects[p.ID()] = dir
}

// IndexWorkspace registers every open workspace project that has a pom.xml.
// Projects whose pom cannot be read are logged and skipped. It returns the
// number of projects indexed.
func (r *Resolver) IndexWorkspace(projects []workspace.Project) int {
	n := 0
	for _, wp := range projects {
		if !wp.Open {
			continue
		}
		pomPath := filepath.Join(wp.Location, POMFile)
		if _, err := os.Stat(pomPath); err != nil {
			continue
		}
		p, err := Load(pomPath)
		if err != nil {
			r.logger.Warn("Skipping workspace project", "project", wp.Name, "err", err)
			continue
		}
		r.AddProject(p, wp.Location)
		n++
	}
	return n
}

// Resolve finds the file backing a.
//
// Returns [errors.ErrCodeInvalidGAV] for coordinates that are missing or
// still contain ${...} references, and [errors.ErrCodePackageNotFound] when
// no source has the artifact.
func (r *Resolver) Resolve(ctx context.Context, a gav.Artifact, repos []Repository) (res *Resolved, err error) {
	start := time.Now()
	defer func() {
		source := ""
		if res != nil {
			source = res.Source
		}
		observability.Resolve().OnResolve(ctx, a.String(), source, time.Since(start), err)
	}()

	if err := validate(a); err != nil {
		return nil, err
	}

	if dir, ok := r.projects[a.GroupID+":"+a.ArtifactID+":"+a.Version]; ok {
		file := dir
		if classes := filepath.Join(dir, "target", "classes"); isDir(classes) {
			file = classes
		}
		return &Resolved{Artifact: a, File: file, Source: observability.SourceWorkspace}, nil
	}

	local := r.LocalPath(a)
	if isFile(local) {
		return &Resolved{Artifact: a, File: local, Source: observability.SourceLocal}, nil
	}

	if r.offline || r.remote == nil {
		return nil, errors.New(errors.ErrCodePackageNotFound, "%s not in local repository (offline)", a)
	}

	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, ferr := r.fetch(ctx, repo, a, local)
		if ferr != nil {
			r.logger.Debug("Download failed", "artifact", a.String(), "repository", repo.ID, "err", ferr)
			continue
		}
		if ok {
			return &Resolved{Artifact: a, File: local, Source: observability.SourceRemote}, nil
		}
	}
	return nil, errors.New(errors.ErrCodePackageNotFound, "%s not found in %d repositories", a, len(repos))
}

// fetch downloads a from repo into dest. It reports false without error for
// a (possibly cached) miss.
func (r *Resolver) fetch(ctx context.Context, repo Repository, a gav.Artifact, dest string) (bool, error) {
	key := cache.Key("miss", repo.URL, mavenrepo.ArtifactPath(a))
	if _, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "miss")
		return false, nil
	}
	observability.Cache().OnCacheMiss(ctx, "miss")

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())

	n, err := r.remote.Fetch(ctx, repo.URL, a, tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if stderrors.Is(err, integrations.ErrNotFound) {
			if err := r.cache.Set(ctx, key, []byte(a.String()), r.missTTL); err == nil {
				observability.Cache().OnCacheSet(ctx, "miss", len(a.String()))
			}
			return false, nil
		}
		return false, err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return false, err
	}
	r.logger.Info("Downloaded", "artifact", a.String(), "repository", repo.ID, "bytes", n)
	return true, nil
}

func validate(a gav.Artifact) error {
	for _, part := range []struct{ kind, value string }{
		{"groupId", a.GroupID},
		{"artifactId", a.ArtifactID},
	} {
		if err := errors.ValidateMavenID(part.kind, part.value); err != nil {
			return err
		}
	}
	if a.Version == "" || strings.Contains(a.Version, "${") {
		return errors.New(errors.ErrCodeInvalidGAV, "%s has no resolved version", a.Key())
	}
	return nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
