package eea

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lastnpe/eeaconf/pkg/errors"
	"github.com/lastnpe/eeaconf/pkg/gav"
)

// MappingFile is the entry that declares what an EEA artifact annotates.
const MappingFile = "eea-for-gav"

// Mapping maps coordinates to the classpath location providing their
// annotations. Keys iterate in first-insertion order; a later Put for an
// existing key replaces the location but keeps the position.
type Mapping struct {
	keys      []gav.Coordinate
	locations map[gav.Coordinate]string
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{locations: make(map[gav.Coordinate]string)}
}

// Put maps c to location.
func (m *Mapping) Put(c gav.Coordinate, location string) {
	if _, ok := m.locations[c]; !ok {
		m.keys = append(m.keys, c)
	}
	m.locations[c] = location
}

// Location returns the location mapped for exactly c.
func (m *Mapping) Location(c gav.Coordinate) (string, bool) {
	loc, ok := m.locations[c]
	return loc, ok
}

// Keys returns the coordinates in first-insertion order.
func (m *Mapping) Keys() []gav.Coordinate {
	return append([]gav.Coordinate(nil), m.keys...)
}

// Len returns the number of coordinates.
func (m *Mapping) Len() int { return len(m.keys) }

// Lookup returns the first coordinate, in insertion order, matching a.
func (m *Mapping) Lookup(a gav.Artifact) (gav.Coordinate, string, bool) {
	for _, c := range m.keys {
		if c.Matches(a) {
			return c, m.locations[c], true
		}
	}
	return gav.Coordinate{}, "", false
}

// Match is the result of [Mapping.Best].
type Match struct {
	Coordinate gav.Coordinate
	Location   string
}

// Best returns the most specific coordinate matching a. At most one key per
// specificity can match an artifact, so the result does not depend on
// insertion order.
func (m *Mapping) Best(a gav.Artifact) (Match, bool) {
	var best Match
	found := false
	for _, c := range m.keys {
		if !c.Matches(a) {
			continue
		}
		if !found || c.Specificity() > best.Coordinate.Specificity() {
			best = Match{Coordinate: c, Location: m.locations[c]}
			found = true
		}
	}
	return best, found
}

// Reader reads a named entry from a directory or archive.
// It is implemented by archive.Reader.
type Reader interface {
	Read(location, entryName string) (string, bool)
}

// Builder collects eea-for-gav declarations into a [Mapping].
type Builder struct {
	workspace Workspace
	reader    Reader
	logger    *log.Logger
}

// NewBuilder creates a builder.
func NewBuilder(ws Workspace, r Reader, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{workspace: ws, reader: r, logger: logger}
}

// Build scans locations in order. Every coordinate a location declares maps
// to that location; later locations overwrite earlier ones.
//
// A malformed line fails the build with [errors.ErrCodeInvalidMapping].
func (b *Builder) Build(locations []string) (*Mapping, error) {
	m := NewMapping()
	for _, loc := range locations {
		file, ok := b.workspace.ToFile(loc)
		if !ok {
			continue
		}
		coords, err := b.Scan(file)
		if err != nil {
			return nil, err
		}
		for _, c := range coords {
			m.Put(c, loc)
		}
	}
	return m, nil
}

// Scan returns the coordinates declared by the eea-for-gav entry of file,
// a directory or archive. A file without the entry declares nothing.
func (b *Builder) Scan(file string) ([]gav.Coordinate, error) {
	content, ok := b.reader.Read(file, MappingFile)
	if !ok {
		return nil, nil
	}
	var coords []gav.Coordinate
	for _, line := range Lines(content) {
		c, err := gav.Parse(line)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMapping, err,
				"bad line in %s of %s: %s", MappingFile, file, line)
		}
		b.logger.Debug("Found EEA", "gav", c.String(), "in", file)
		coords = append(coords, c)
	}
	return coords, nil
}

// Lines splits eea-for-gav content into its meaningful lines: trimmed,
// without blank lines and # comments.
func Lines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
