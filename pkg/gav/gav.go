package gav

import (
	"strings"

	"github.com/lastnpe/eeaconf/pkg/errors"
)

// Coordinate identifies the artifacts an EEA location applies to.
//
// Empty Version or Classifier mean absent. Coordinate is a comparable value
// type and is used directly as a map key; equality is over all four fields.
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
	Classifier string
}

// Java is the special coordinate an EEA artifact declares when it carries
// annotations for the JRE itself.
var Java = Of("java", "java")

// Of returns the coordinate group:artifact.
func Of(groupID, artifactID string) Coordinate {
	return Coordinate{GroupID: groupID, ArtifactID: artifactID}
}

// OfVersion returns the coordinate group:artifact:version.
func OfVersion(groupID, artifactID, version string) Coordinate {
	return Coordinate{GroupID: groupID, ArtifactID: artifactID, Version: version}
}

// Parse parses a colon-delimited line of 2 to 4 segments.
//
// The line is trimmed first. Segments beyond the fourth are ignored. A line
// with fewer than two segments, or with an empty group or artifact, fails
// with [errors.ErrCodeInvalidGAV].
func Parse(line string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(line), ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Coordinate{}, errors.New(errors.ErrCodeInvalidGAV,
			"line must have at least groupId:artifactId, but was: %s", line)
	}
	c := Of(parts[0], parts[1])
	if len(parts) > 2 {
		c.Version = parts[2]
	}
	if len(parts) > 3 {
		c.Classifier = parts[3]
	}
	return c, nil
}

// Matches reports whether a is covered by c. Group and artifact must be
// equal; version and classifier are only compared when c has them.
func (c Coordinate) Matches(a Artifact) bool {
	return c.GroupID == a.GroupID &&
		c.ArtifactID == a.ArtifactID &&
		(c.Version == "" || c.Version == a.Version) &&
		(c.Classifier == "" || c.Classifier == a.Classifier)
}

// Specificity ranks how narrowly c selects artifacts: 0 for group:artifact,
// 1 with only a classifier, 2 with a version and 3 with both. A version
// outranks a classifier.
func (c Coordinate) Specificity() int {
	n := 0
	if c.Version != "" {
		n += 2
	}
	if c.Classifier != "" {
		n++
	}
	return n
}

// String renders c as group:artifact[:version[:classifier]]. A classifier
// without a version renders with an empty version segment so that the
// result parses back to c.
func (c Coordinate) String() string {
	var b strings.Builder
	b.WriteString(c.GroupID)
	b.WriteByte(':')
	b.WriteString(c.ArtifactID)
	if c.Version != "" || c.Classifier != "" {
		b.WriteByte(':')
		b.WriteString(c.Version)
	}
	if c.Classifier != "" {
		b.WriteByte(':')
		b.WriteString(c.Classifier)
	}
	return b.String()
}

// Artifact is the concrete identity of a classpath entry or dependency.
type Artifact struct {
	GroupID    string
	ArtifactID string
	Version    string
	Classifier string
	Type       string // packaging type, "jar" when empty
}

// Key returns the group:artifact identity of a, ignoring version.
func (a Artifact) Key() string {
	return a.GroupID + ":" + a.ArtifactID
}

// Extension returns the file extension Maven uses for a's type.
func (a Artifact) Extension() string {
	switch a.Type {
	case "", "jar", "test-jar", "maven-plugin", "ejb", "ejb-client", "bundle", "eclipse-plugin", "java-source", "javadoc":
		return "jar"
	default:
		return a.Type
	}
}

// String renders a as group:artifact:version[:classifier].
func (a Artifact) String() string {
	s := a.GroupID + ":" + a.ArtifactID + ":" + a.Version
	if a.Classifier != "" {
		s += ":" + a.Classifier
	}
	return s
}
