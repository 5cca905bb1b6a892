// Package maven provides a client for Maven2-layout artifact repositories.
//
// # Overview
//
// This package downloads artifact files (JARs, POMs) from remote
// repositories such as Maven Central (https://repo1.maven.org/maven2) and
// from file:// repositories on disk.
//
// # Usage
//
//	client := maven.NewClient()
//
//	a := gav.Artifact{GroupID: "org.lastnpe.eea", ArtifactID: "jdk-eea", Version: "2.3.0"}
//	var buf bytes.Buffer
//	if _, err := client.Fetch(ctx, "https://repo1.maven.org/maven2", a, &buf); err != nil {
//	    log.Fatal(err)
//	}
//
// # Layout
//
// [ArtifactPath] maps coordinates to repository paths:
//
//	groupId (dots as slashes) / artifactId / version / artifactId-version[-classifier].ext
//
// # Snapshots
//
// For SNAPSHOT versions the version-level maven-metadata.xml is consulted to
// find the timestamped file name of the latest deployed build.
package maven
