// Package maven provides the Maven side of eeaconf: the pom.xml project
// model and artifact resolution.
//
// # Project Model
//
// [Load] parses a pom.xml into a [Project]:
//
//	p, err := maven.Load("pom.xml")
//	path, ok := p.Property("m2e.jdt.annotationpath")
//	for _, d := range p.Dependencies() { ... }
//
// The model covers what classpath configuration needs: properties (with
// ${...} interpolation), dependencies versioned through dependencyManagement,
// build plugins with their dependencies and free-form configuration, and
// repositories. A parent pom reachable through relativePath is merged in.
//
// # Artifact Resolution
//
// [Resolver] locates the file backing an artifact, trying in order:
//
//   - open workspace projects whose pom declares the same coordinates
//   - the local repository (~/.m2/repository layout)
//   - remote repositories, downloading into the local repository
//
// Remote misses are remembered in a [cache.Cache] for the configured TTL.
//
// [cache.Cache]: github.com/lastnpe/eeaconf/pkg/cache.Cache
package maven
