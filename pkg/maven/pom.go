package maven

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/lastnpe/eeaconf/pkg/errors"
	"github.com/lastnpe/eeaconf/pkg/gav"
)

// CentralURL is the URL of Maven Central, implied for every project.
const CentralURL = "https://repo1.maven.org/maven2"

const centralID = "central"

// Dependency is a declared Maven dependency.
type Dependency struct {
	GroupID    string
	ArtifactID string
	Version    string
	Type       string
	Classifier string
	Scope      string
	Optional   bool
	SystemPath string
}

// Artifact returns the artifact identity of d.
func (d Dependency) Artifact() gav.Artifact {
	return gav.Artifact{
		GroupID:    d.GroupID,
		ArtifactID: d.ArtifactID,
		Version:    d.Version,
		Classifier: d.Classifier,
		Type:       d.Type,
	}
}

// Plugin is a build plugin with its own dependencies and configuration.
type Plugin struct {
	GroupID       string
	ArtifactID    string
	Version       string
	Dependencies  []Dependency
	Configuration *Node
}

// Key returns "groupId:artifactId".
func (p *Plugin) Key() string { return p.GroupID + ":" + p.ArtifactID }

// Repository is a remote artifact repository.
type Repository struct {
	ID  string
	URL string
}

// Node is a free-form XML element, used for plugin configuration.
type Node struct {
	XMLName xml.Name
	Content string `xml:",chardata"`
	Nodes   []Node `xml:",any"`

	project *Project
}

// Child returns the first child element called name, or nil.
// It is safe to call on a nil Node.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			c := &n.Nodes[i]
			c.project = n.project
			return c
		}
	}
	return nil
}

// Value returns the trimmed, interpolated text of n ("" for a nil Node).
func (n *Node) Value() string {
	if n == nil {
		return ""
	}
	v := strings.TrimSpace(n.Content)
	if n.project != nil {
		v = n.project.Interpolate(v)
	}
	return v
}

// Project is a parsed pom.xml.
type Project struct {
	GroupID    string
	ArtifactID string
	Version    string
	Packaging  string
	Dir        string // directory containing the pom

	properties   map[string]string
	dependencies []Dependency
	managed      map[string]string
	plugins      []*Plugin
	repositories []Repository
}

// Load parses the pom.xml at path, merging a local parent pom when
// relativePath (default ../pom.xml) points at the declared parent.
func Load(path string) (*Project, error) {
	raw, err := readPOM(path)
	if err != nil {
		return nil, err
	}
	basedir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	var parent *Project
	if raw.Parent != nil {
		parent = loadParent(basedir, raw.Parent)
	}
	return newProject(raw, basedir, parent), nil
}

// Parse builds a Project from pom.xml content; basedir anchors ${basedir}.
// Parent poms are not followed.
func Parse(data []byte, basedir string) (*Project, error) {
	var raw pomProject
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "cannot parse pom.xml")
	}
	return newProject(&raw, basedir, nil), nil
}

func readPOM(path string) (*pomProject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no pom.xml at %s", path)
		}
		return nil, err
	}
	var raw pomProject
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "cannot parse %s", path)
	}
	return &raw, nil
}

func loadParent(basedir string, decl *pomParent) *Project {
	rel := decl.RelativePath
	if rel == "" {
		rel = "../pom.xml"
	}
	path := filepath.Join(basedir, filepath.FromSlash(rel))
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, "pom.xml")
	}
	p, err := Load(path)
	if err != nil {
		return nil
	}
	if p.GroupID != decl.GroupID || p.ArtifactID != decl.ArtifactID {
		return nil
	}
	return p
}

func newProject(raw *pomProject, basedir string, parent *Project) *Project {
	p := &Project{
		GroupID:    raw.GroupID,
		ArtifactID: raw.ArtifactID,
		Version:    raw.Version,
		Packaging:  raw.Packaging,
		Dir:        basedir,
		properties: make(map[string]string),
		managed:    make(map[string]string),
	}
	if raw.Parent != nil {
		if p.GroupID == "" {
			p.GroupID = raw.Parent.GroupID
		}
		if p.Version == "" {
			p.Version = raw.Parent.Version
		}
	}
	if p.Packaging == "" {
		p.Packaging = "jar"
	}

	if parent != nil {
		for k, v := range parent.properties {
			p.properties[k] = v
		}
		for k, v := range parent.managed {
			p.managed[k] = v
		}
	}
	for _, prop := range raw.Properties.Entries {
		p.properties[prop.XMLName.Local] = strings.TrimSpace(prop.Value)
	}
	for _, d := range raw.DependencyManagement {
		dep := p.dependency(d)
		p.managed[managedKey(dep)] = dep.Version
	}
	for _, d := range raw.Dependencies {
		dep := p.dependency(d)
		if dep.Version == "" {
			dep.Version = p.managed[managedKey(dep)]
		}
		p.dependencies = append(p.dependencies, dep)
	}

	declared := make(map[string]bool)
	for _, rp := range raw.Plugins {
		pl := p.plugin(rp)
		declared[pl.Key()] = true
		p.plugins = append(p.plugins, pl)
	}
	if parent != nil {
		for _, pl := range parent.plugins {
			if !declared[pl.Key()] {
				p.plugins = append(p.plugins, pl)
			}
		}
	}

	own := make(map[string]bool)
	for _, r := range raw.Repositories {
		repo := Repository{ID: p.Interpolate(r.ID), URL: p.Interpolate(r.URL)}
		own[repo.ID] = true
		p.repositories = append(p.repositories, repo)
	}
	if parent != nil {
		for _, r := range parent.repositories {
			if !own[r.ID] {
				p.repositories = append(p.repositories, r)
			}
		}
	}
	return p
}

func managedKey(d Dependency) string {
	t := d.Type
	if t == "" {
		t = "jar"
	}
	return d.GroupID + ":" + d.ArtifactID + ":" + t + ":" + d.Classifier
}

func (p *Project) dependency(d pomDependency) Dependency {
	return Dependency{
		GroupID:    p.Interpolate(strings.TrimSpace(d.GroupID)),
		ArtifactID: p.Interpolate(strings.TrimSpace(d.ArtifactID)),
		Version:    p.Interpolate(strings.TrimSpace(d.Version)),
		Type:       p.Interpolate(strings.TrimSpace(d.Type)),
		Classifier: p.Interpolate(strings.TrimSpace(d.Classifier)),
		Scope:      strings.TrimSpace(d.Scope),
		Optional:   strings.TrimSpace(d.Optional) == "true",
		SystemPath: p.Interpolate(strings.TrimSpace(d.SystemPath)),
	}
}

func (p *Project) plugin(rp pomPlugin) *Plugin {
	groupID := strings.TrimSpace(rp.GroupID)
	if groupID == "" {
		groupID = "org.apache.maven.plugins"
	}
	pl := &Plugin{
		GroupID:    groupID,
		ArtifactID: strings.TrimSpace(rp.ArtifactID),
		Version:    p.Interpolate(strings.TrimSpace(rp.Version)),
	}
	for _, d := range rp.Dependencies {
		pl.Dependencies = append(pl.Dependencies, p.dependency(d))
	}
	if rp.Configuration != nil {
		pl.Configuration = rp.Configuration
		pl.Configuration.project = p
	}
	return pl
}

// Basedir returns the directory containing the pom.
func (p *Project) Basedir() string { return p.Dir }

// ID returns "groupId:artifactId:version".
func (p *Project) ID() string { return p.GroupID + ":" + p.ArtifactID + ":" + p.Version }

// Property returns the interpolated value of a pom property.
// A nil Project has no properties.
func (p *Project) Property(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.properties[name]
	if !ok {
		return "", false
	}
	return p.Interpolate(v), true
}

// Properties returns a copy of the raw pom properties.
func (p *Project) Properties() map[string]string {
	out := make(map[string]string, len(p.properties))
	for k, v := range p.properties {
		out[k] = v
	}
	return out
}

// Dependencies returns the declared dependencies in pom order.
func (p *Project) Dependencies() []Dependency { return p.dependencies }

// Plugin returns the build plugin with key "groupId:artifactId", or nil.
func (p *Project) Plugin(key string) *Plugin {
	for _, pl := range p.plugins {
		if pl.Key() == key {
			return pl
		}
	}
	return nil
}

// Repositories returns the declared repositories, the project's own before
// inherited ones, followed by Maven Central unless a repository with id
// central was declared.
func (p *Project) Repositories() []Repository {
	out := make([]Repository, 0, len(p.repositories)+1)
	out = append(out, p.repositories...)
	for _, r := range p.repositories {
		if r.ID == centralID {
			return out
		}
	}
	return append(out, Repository{ID: centralID, URL: CentralURL})
}

const maxInterpolationDepth = 10

// Interpolate expands ${...} references from project coordinates, pom
// properties, env.* and a few well-known system properties. Unknown
// references are left untouched.
func (p *Project) Interpolate(s string) string {
	for i := 0; i < maxInterpolationDepth; i++ {
		if !strings.Contains(s, "${") {
			return s
		}
		next := p.expandOnce(s)
		if next == s {
			return s
		}
		s = next
	}
	return s
}

func (p *Project) expandOnce(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		end += start
		name := s[start+2 : end]
		b.WriteString(s[:start])
		if v, ok := p.lookup(name); ok {
			b.WriteString(v)
		} else {
			b.WriteString(s[start : end+1])
		}
		s = s[end+1:]
	}
}

func (p *Project) lookup(name string) (string, bool) {
	switch name {
	case "project.groupId", "pom.groupId":
		return p.GroupID, p.GroupID != ""
	case "project.artifactId", "pom.artifactId":
		return p.ArtifactID, p.ArtifactID != ""
	case "project.version", "pom.version", "version":
		return p.Version, p.Version != ""
	case "project.basedir", "basedir":
		return p.Dir, p.Dir != ""
	case "user.home":
		home, err := os.UserHomeDir()
		return home, err == nil
	}
	if env, ok := strings.CutPrefix(name, "env."); ok {
		return os.LookupEnv(env)
	}
	v, ok := p.properties[name]
	return v, ok
}

type pomProject struct {
	GroupID              string          `xml:"groupId"`
	ArtifactID           string          `xml:"artifactId"`
	Version              string          `xml:"version"`
	Packaging            string          `xml:"packaging"`
	Parent               *pomParent      `xml:"parent"`
	Properties           pomProperties   `xml:"properties"`
	Dependencies         []pomDependency `xml:"dependencies>dependency"`
	DependencyManagement []pomDependency `xml:"dependencyManagement>dependencies>dependency"`
	Plugins              []pomPlugin     `xml:"build>plugins>plugin"`
	Repositories         []pomRepository `xml:"repositories>repository"`
}

type pomParent struct {
	GroupID      string `xml:"groupId"`
	ArtifactID   string `xml:"artifactId"`
	Version      string `xml:"version"`
	RelativePath string `xml:"relativePath"`
}

type pomProperties struct {
	Entries []pomProperty `xml:",any"`
}

type pomProperty struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Type       string `xml:"type"`
	Classifier string `xml:"classifier"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
	SystemPath string `xml:"systemPath"`
}

type pomPlugin struct {
	GroupID       string          `xml:"groupId"`
	ArtifactID    string          `xml:"artifactId"`
	Version       string          `xml:"version"`
	Dependencies  []pomDependency `xml:"dependencies>dependency"`
	Configuration *Node           `xml:"configuration"`
}

type pomRepository struct {
	ID  string `xml:"id"`
	URL string `xml:"url"`
}
