package workspace

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// DescriptorFile is the Eclipse project descriptor file name.
const DescriptorFile = ".project"

// Project is one project known to the workspace.
type Project struct {
	Name     string // project name from .project (directory name if absent)
	Location string // absolute directory
	Open     bool
}

// FullPath returns the workspace path of the project, "/" + Name.
func (p Project) FullPath() string { return "/" + p.Name }

// Options configures [Open].
type Options struct {
	// Variables are classpath variables such as M2_REPO.
	Variables map[string]string
	// Closed lists project names treated as closed.
	Closed []string
	Logger *log.Logger
}

// Workspace resolves workspace-relative and variable paths.
// It is not safe for concurrent mutation.
type Workspace struct {
	root      string
	projects  map[string]Project
	variables map[string]string
	closed    map[string]bool
	logger    *log.Logger
}

// New returns an empty workspace rooted at root without scanning it.
func New(root string, opts Options) *Workspace {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	w := &Workspace{
		root:      root,
		projects:  make(map[string]Project),
		variables: make(map[string]string),
		closed:    make(map[string]bool),
		logger:    logger,
	}
	for k, v := range opts.Variables {
		w.variables[k] = v
	}
	for _, name := range opts.Closed {
		w.closed[name] = true
	}
	return w
}

// Open scans root for projects. An empty root yields an empty workspace.
// A root that cannot be listed is an error.
func Open(root string, opts Options) (*Workspace, error) {
	w := New(root, opts)
	if root == "" {
		return w, nil
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, DescriptorFile)); err != nil {
			continue
		}
		if _, err := w.AddProject(dir); err != nil {
			w.logger.Warn("Skipping project with unreadable descriptor", "dir", dir, "err", err)
		}
	}
	w.logger.Debug("Opened workspace", "root", root, "projects", len(w.projects))
	return w, nil
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string { return w.root }

// AddProject registers the project located in dir. The name is read from
// dir/.project when present, otherwise the directory name is used.
func (w *Workspace) AddProject(dir string) (Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Project{}, err
	}
	name, err := readProjectName(filepath.Join(abs, DescriptorFile))
	if err != nil {
		return Project{}, err
	}
	if name == "" {
		name = filepath.Base(abs)
	}
	p := Project{Name: name, Location: abs, Open: !w.closed[name]}
	w.projects[name] = p
	return p, nil
}

// Projects returns all known projects sorted by name.
func (w *Workspace) Projects() []Project {
	out := make([]Project, 0, len(w.projects))
	for _, p := range w.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Project looks up a project by name.
func (w *Workspace) Project(name string) (Project, bool) {
	p, ok := w.projects[name]
	return p, ok
}

// Variable returns the value of a classpath variable.
func (w *Workspace) Variable(name string) (string, bool) {
	v, ok := w.variables[name]
	return v, ok
}

// FindMember resolves a workspace path such as "/project/target/classes" to
// a filesystem location. Members of closed projects are not accessible; the
// closed project itself still is.
func (w *Workspace) FindMember(path string) (string, bool) {
	if !strings.HasPrefix(path, "/") {
		return "", false
	}
	name, rest, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	p, ok := w.projects[name]
	if !ok {
		return "", false
	}
	if rest == "" {
		return p.Location, true
	}
	if !p.Open {
		return "", false
	}
	return filepath.Join(p.Location, filepath.FromSlash(rest)), true
}

// ToFile maps a classpath entry path to a filesystem path.
//
// Variable paths are expanded first. Workspace paths resolve through
// [Workspace.FindMember]; anything else is taken to be an absolute
// filesystem path (or a member of a closed project) and returned as is.
func (w *Workspace) ToFile(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	if expanded, ok := w.expand(path); ok {
		return expanded, true
	}
	if loc, ok := w.FindMember(path); ok {
		return loc, true
	}
	return filepath.FromSlash(path), true
}

func (w *Workspace) expand(path string) (string, bool) {
	if strings.HasPrefix(path, "/") {
		return "", false
	}
	name, rest, _ := strings.Cut(path, "/")
	value, ok := w.variables[name]
	if !ok {
		return "", false
	}
	return filepath.Join(value, filepath.FromSlash(rest)), true
}

// ProjectPathFor converts an artifact file to a workspace path when it is
// the location of an open workspace project, or its target/classes
// directory. Otherwise the absolute filesystem path is returned.
func (w *Workspace) ProjectPathFor(file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	abs = filepath.Clean(abs)
	if filepath.Base(abs) == "classes" && filepath.Base(filepath.Dir(abs)) == "target" {
		abs = filepath.Dir(filepath.Dir(abs))
	}
	for _, p := range w.projects {
		if !p.Open {
			continue
		}
		if filepath.Clean(p.Location) == abs {
			return p.FullPath()
		}
	}
	return abs
}

// MemberPath is the inverse of [Workspace.FindMember]: a file inside an open
// project becomes "/project/rel/path", keeping directories such as
// target/classes. Files outside open projects are returned as absolute paths.
func (w *Workspace) MemberPath(file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	abs = filepath.Clean(abs)
	best, bestLen := "", -1
	for _, p := range w.projects {
		if !p.Open {
			continue
		}
		loc := filepath.Clean(p.Location)
		rel, err := filepath.Rel(loc, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if len(loc) <= bestLen {
			continue
		}
		best, bestLen = p.FullPath(), len(loc)
		if rel != "." {
			best += "/" + filepath.ToSlash(rel)
		}
	}
	if bestLen < 0 {
		return abs
	}
	return best
}

type projectDescription struct {
	Name string `xml:"name"`
}

func readProjectName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var desc projectDescription
	if err := xml.Unmarshal(data, &desc); err != nil {
		return "", err
	}
	return strings.TrimSpace(desc.Name), nil
}
