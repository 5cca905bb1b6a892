package classpath

import (
	"path"
	"strings"

	"github.com/lastnpe/eeaconf/pkg/gav"
)

// artifactOf derives the coordinates of a lib or var entry.
func artifactOf(e *Entry) *gav.Artifact {
	if e.Kind != KindLibrary && e.Kind != KindVariable {
		return nil
	}
	if g, ok := e.Attribute(AttrGroupID); ok {
		a := gav.Artifact{GroupID: g}
		a.ArtifactID, _ = e.Attribute(AttrArtifactID)
		a.Version, _ = e.Attribute(AttrVersion)
		a.Classifier, _ = e.Attribute(AttrClassifier)
		if a.ArtifactID != "" {
			return &a
		}
	}
	if e.Kind == KindVariable {
		// VARIABLE/group/path/artifact/version/file
		if i := strings.IndexByte(e.Path, '/'); i > 0 {
			if a, ok := ArtifactFromLayout(e.Path[i+1:]); ok {
				return &a
			}
		}
	}
	return nil
}

// ArtifactFromLayout parses a Maven2 repository-relative path such as
// "org/example/lib/1.0/lib-1.0-sources.jar" into coordinates.
func ArtifactFromLayout(rel string) (gav.Artifact, bool) {
	parts := strings.Split(strings.Trim(rel, "/"), "/")
	if len(parts) < 4 {
		return gav.Artifact{}, false
	}
	n := len(parts)
	file, version, artifactID := parts[n-1], parts[n-2], parts[n-3]
	groupID := strings.Join(parts[:n-3], ".")

	ext := path.Ext(file)
	if ext == "" {
		return gav.Artifact{}, false
	}
	base := strings.TrimSuffix(file, ext)

	// Timestamped snapshots are stored as artifact-1.0-20240101.120000-1.jar
	// inside the 1.0-SNAPSHOT directory.
	fileVersion := version
	prefix := artifactID + "-"
	if !strings.HasPrefix(base, prefix) {
		return gav.Artifact{}, false
	}
	rest := base[len(prefix):]
	if !strings.HasPrefix(rest, fileVersion) {
		snapshot := strings.TrimSuffix(version, "-SNAPSHOT")
		if snapshot == version || !strings.HasPrefix(rest, snapshot+"-") {
			return gav.Artifact{}, false
		}
		fileVersion = timestampedVersion(rest, snapshot)
	}
	rest = rest[len(fileVersion):]

	a := gav.Artifact{GroupID: groupID, ArtifactID: artifactID, Version: version}
	if ext != ".jar" {
		a.Type = ext[1:]
	}
	if strings.HasPrefix(rest, "-") {
		a.Classifier = rest[1:]
	} else if rest != "" {
		return gav.Artifact{}, false
	}
	return a, true
}

// timestampedVersion returns the "1.0-20240101.120000-1" prefix of rest.
func timestampedVersion(rest, base string) string {
	fields := strings.SplitN(rest[len(base)+1:], "-", 3)
	if len(fields) < 2 {
		return rest
	}
	return base + "-" + fields[0] + "-" + fields[1]
}
