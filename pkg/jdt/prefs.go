// Package jdt reads and writes the JDT compiler options of a project,
// stored in .settings/org.eclipse.jdt.core.prefs as Java properties.
package jdt

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/magiconair/properties"
)

const (
	// SettingsDir is the per-project preferences directory.
	SettingsDir = ".settings"
	// FileName is the JDT core preferences file, also the entry name looked
	// up inside compiler plugin dependencies.
	FileName = "org.eclipse.jdt.core.prefs"

	versionKey = "eclipse.preferences.version"
)

// PathFor returns the prefs file of the project in dir.
func PathFor(dir string) string {
	return filepath.Join(dir, SettingsDir, FileName)
}

// Prefs holds JDT options in memory.
type Prefs struct {
	props   *properties.Properties
	changed bool
}

// New returns empty preferences.
func New() *Prefs {
	p := properties.NewProperties()
	p.DisableExpansion = true
	return &Prefs{props: p}
}

// Load reads the prefs file at path. A missing file yields empty
// preferences.
func Load(path string) (*Prefs, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes Java properties text. ${...} references are kept
// literally.
func Parse(data []byte) (*Prefs, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := l.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	props.DisableExpansion = true
	return &Prefs{props: props}, nil
}

// ParseOptions decodes Java properties text into a map.
func ParseOptions(text string) (map[string]string, error) {
	p, err := Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	return p.Options(), nil
}

// Options returns a copy of all options.
func (p *Prefs) Options() map[string]string { return p.props.Map() }

// Get returns one option.
func (p *Prefs) Get(key string) (string, bool) { return p.props.Get(key) }

// Len returns the number of options.
func (p *Prefs) Len() int { return p.props.Len() }

// Merge adds options, overwriting existing keys. Options not in m are
// kept. It returns how many options were added or changed.
func (p *Prefs) Merge(m map[string]string) int {
	n := 0
	for k, v := range m {
		if old, ok := p.props.Get(k); ok && old == v {
			continue
		}
		p.props.MustSet(k, v)
		n++
	}
	if n > 0 {
		p.changed = true
	}
	return n
}

// Changed reports whether Merge modified the options since loading.
func (p *Prefs) Changed() bool { return p.changed }

// Bytes encodes the options sorted by key, in the ISO-8859-1 escaping
// Eclipse uses.
func (p *Prefs) Bytes() ([]byte, error) {
	if _, ok := p.props.Get(versionKey); !ok {
		p.props.MustSet(versionKey, "1")
	}
	p.props.Sort()
	var buf bytes.Buffer
	if _, err := p.props.Write(&buf, properties.ISO_8859_1); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the options to path, creating the settings directory.
func (p *Prefs) Save(path string) error {
	data, err := p.Bytes()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	p.changed = false
	return nil
}
