package classpath

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lastnpe/eeaconf/pkg/errors"
	"github.com/lastnpe/eeaconf/pkg/gav"
)

// FileName is the name of the descriptor inside a project directory.
const FileName = ".classpath"

// Entry kinds.
const (
	KindSource    = "src"
	KindContainer = "con"
	KindLibrary   = "lib"
	KindVariable  = "var"
	KindOutput    = "output"
)

// Well-known attribute names.
const (
	AttrAnnotationPath = "annotationpath"
	AttrPomDerived     = "maven.pomderived"
	AttrGroupID        = "maven.groupId"
	AttrArtifactID     = "maven.artifactId"
	AttrVersion        = "maven.version"
	AttrClassifier     = "maven.classifier"
)

// Attribute is one name/value pair of an entry's attributes element.
type Attribute struct {
	Name  string
	Value string
}

// Entry is one classpathentry.
type Entry struct {
	Kind       string
	Path       string
	Output     string
	SourcePath string
	Attributes []Attribute

	// Artifact holds the Maven coordinates of lib and var entries when
	// known, nil otherwise.
	Artifact *gav.Artifact

	extra    []xml.Attr
	children []rawNode
}

// Attribute returns the value of the named attribute.
func (e *Entry) Attribute(name string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute sets the named attribute, replacing an existing value in
// place or appending a new attribute.
func (e *Entry) SetAttribute(name, value string) {
	for i := range e.Attributes {
		if e.Attributes[i].Name == name {
			e.Attributes[i].Value = value
			return
		}
	}
	e.Attributes = append(e.Attributes, Attribute{Name: name, Value: value})
}

// RemoveAttribute deletes the named attribute if present.
func (e *Entry) RemoveAttribute(name string) {
	out := e.Attributes[:0]
	for _, a := range e.Attributes {
		if a.Name != name {
			out = append(out, a)
		}
	}
	e.Attributes = out
}

// AnnotationPath returns the annotationpath attribute, "" when unset.
func (e *Entry) AnnotationPath() string {
	v, _ := e.Attribute(AttrAnnotationPath)
	return v
}

// String returns the entry path; it names the entry in log output.
func (e *Entry) String() string { return e.Path }

// Location returns the logical path under which the entry's content can be
// looked up in the workspace, for lib and var entries only. Relative
// library paths are anchored at projectPath, the workspace path of the
// project ("/app") or its directory when it is not in the workspace.
func (e *Entry) Location(projectPath string) (string, bool) {
	switch e.Kind {
	case KindLibrary:
		if e.Path == "" {
			return "", false
		}
		if strings.HasPrefix(e.Path, "/") || filepath.IsAbs(e.Path) {
			return e.Path, true
		}
		return strings.TrimRight(projectPath, "/") + "/" + e.Path, true
	case KindVariable:
		return e.Path, e.Path != ""
	default:
		return "", false
	}
}

// Classpath is an ordered list of entries.
type Classpath struct {
	entries []*Entry
}

// New returns an empty classpath.
func New() *Classpath { return &Classpath{} }

// Load reads a .classpath file.
//
// Returns [errors.ErrCodeFileNotFound] if the file does not exist and
// [errors.ErrCodeInvalidManifest] if it is not a valid descriptor.
func Load(path string) (*Classpath, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no %s", FileName)
		}
		return nil, err
	}
	cp, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "cannot parse %s", path)
	}
	return cp, nil
}

// Parse decodes .classpath content.
func Parse(data []byte) (*Classpath, error) {
	var raw rawClasspath
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.XMLName.Local != "classpath" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "root element is %q, want classpath", raw.XMLName.Local)
	}
	cp := New()
	for _, re := range raw.Entries {
		cp.entries = append(cp.entries, re.entry())
	}
	return cp, nil
}

// Entries returns the entries in descriptor order. The returned entries
// are live: mutations are written by Save.
func (c *Classpath) Entries() []*Entry { return c.entries }

// Add appends e.
func (c *Classpath) Add(e *Entry) { c.entries = append(c.entries, e) }

// Find returns the first entry of the given kind and path, or nil.
func (c *Classpath) Find(kind, path string) *Entry {
	for _, e := range c.entries {
		if e.Kind == kind && e.Path == path {
			return e
		}
	}
	return nil
}

// FindPrefix returns the first entry of the given kind whose path starts
// with prefix, or nil.
func (c *Classpath) FindPrefix(kind, prefix string) *Entry {
	for _, e := range c.entries {
		if e.Kind == kind && strings.HasPrefix(e.Path, prefix) {
			return e
		}
	}
	return nil
}

// Merge adds the entries of other that c does not contain yet. Entries
// already present (same kind and path) keep their position; attributes of
// the incoming entry are copied onto them. Merged entries are inserted
// before the first output entry.
func (c *Classpath) Merge(other []*Entry) {
	for _, in := range other {
		if e := c.Find(in.Kind, in.Path); e != nil {
			for _, a := range in.Attributes {
				e.SetAttribute(a.Name, a.Value)
			}
			if e.Artifact == nil {
				e.Artifact = in.Artifact
			}
			continue
		}
		c.insertBeforeOutput(in)
	}
}

func (c *Classpath) insertBeforeOutput(e *Entry) {
	for i, x := range c.entries {
		if x.Kind == KindOutput {
			c.entries = append(c.entries[:i], append([]*Entry{e}, c.entries[i:]...)...)
			return
		}
	}
	c.entries = append(c.entries, e)
}

// InferArtifacts fills in Artifact for library entries located under one
// of the given repository roots that have no coordinates yet.
func (c *Classpath) InferArtifacts(repoRoots ...string) {
	for _, e := range c.entries {
		if e.Kind != KindLibrary || e.Artifact != nil {
			continue
		}
		for _, root := range repoRoots {
			if root == "" {
				continue
			}
			rel, err := filepath.Rel(root, e.Path)
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}
			if a, ok := ArtifactFromLayout(filepath.ToSlash(rel)); ok {
				e.Artifact = &a
				break
			}
		}
	}
}

// Bytes encodes c in the layout Eclipse writes: tab indentation and
// attributes sorted by name.
func (c *Classpath) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo implements io.WriterTo.
func (c *Classpath) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if _, err := io.WriteString(cw, xml.Header); err != nil {
		return cw.n, err
	}
	enc := xml.NewEncoder(cw)
	enc.Indent("", "\t")
	root := xml.StartElement{Name: xml.Name{Local: "classpath"}}
	if err := enc.EncodeToken(root); err != nil {
		return cw.n, err
	}
	for _, e := range c.entries {
		if err := encodeEntry(enc, e); err != nil {
			return cw.n, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return cw.n, err
	}
	if err := enc.Flush(); err != nil {
		return cw.n, err
	}
	_, err := io.WriteString(cw, "\n")
	return cw.n, err
}

// Save writes c to path, replacing the file atomically.
func (c *Classpath) Save(path string) error {
	data, err := c.Bytes()
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".classpath-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func encodeEntry(enc *xml.Encoder, e *Entry) error {
	attrs := append([]xml.Attr(nil), e.extra...)
	add := func(name, value string) {
		if value != "" {
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
		}
	}
	add("kind", e.Kind)
	add("path", e.Path)
	add("output", e.Output)
	add("sourcepath", e.SourcePath)
	sort.SliceStable(attrs, func(i, j int) bool { return attrs[i].Name.Local < attrs[j].Name.Local })

	start := xml.StartElement{Name: xml.Name{Local: "classpathentry"}, Attr: attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if len(e.Attributes) > 0 {
		as := xml.StartElement{Name: xml.Name{Local: "attributes"}}
		if err := enc.EncodeToken(as); err != nil {
			return err
		}
		for _, a := range e.Attributes {
			el := xml.StartElement{Name: xml.Name{Local: "attribute"}, Attr: []xml.Attr{
				{Name: xml.Name{Local: "name"}, Value: a.Name},
				{Name: xml.Name{Local: "value"}, Value: a.Value},
			}}
			if err := enc.EncodeToken(el); err != nil {
				return err
			}
			if err := enc.EncodeToken(el.End()); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(as.End()); err != nil {
			return err
		}
	}
	for _, n := range e.children {
		if err := enc.Encode(n); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

type rawClasspath struct {
	XMLName xml.Name
	Entries []rawEntry `xml:"classpathentry"`
}

type rawEntry struct {
	Kind       string         `xml:"kind,attr"`
	Path       string         `xml:"path,attr"`
	Output     string         `xml:"output,attr"`
	SourcePath string         `xml:"sourcepath,attr"`
	Extra      []xml.Attr     `xml:",any,attr"`
	Attributes []rawAttribute `xml:"attributes>attribute"`
	Children   []rawNode      `xml:",any"`
}

type rawAttribute struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type rawNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

func (re rawEntry) entry() *Entry {
	e := &Entry{
		Kind:       re.Kind,
		Path:       re.Path,
		Output:     re.Output,
		SourcePath: re.SourcePath,
		extra:      re.Extra,
	}
	for _, a := range re.Attributes {
		e.Attributes = append(e.Attributes, Attribute(a))
	}
	for _, n := range re.Children {
		if n.XMLName.Local != "attributes" {
			e.children = append(e.children, n)
		}
	}
	e.Artifact = artifactOf(e)
	return e
}
