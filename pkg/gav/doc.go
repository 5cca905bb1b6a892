// Package gav implements Maven "GAV" coordinates: groupId, artifactId and an
// optional version and classifier.
//
// # Coordinates
//
// A [Coordinate] is what an eea-for-gav file declares, one per line:
//
//	com.google.guava:guava
//	com.google.guava:guava:31.1-jre
//	org.example:lib:1.0:tests
//
// An absent version or classifier acts as a wildcard in [Coordinate.Matches],
// so a single EEA artifact can cover every version of a library.
//
// # Artifacts
//
// An [Artifact] is the concrete identity of a classpath entry or a Maven
// dependency. Unlike a Coordinate it always carries whatever the build knows
// about it, including the packaging type.
package gav
