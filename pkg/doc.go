// Package pkg provides the core libraries of eeaconf.
//
// # Overview
//
// eeaconf configures Eclipse External null-Annotations (EEA) for Maven
// projects. An EEA artifact ships an eea-for-gav file listing the Maven
// coordinates it annotates; eeaconf collects those declarations from a
// project's dependencies and writes the matching annotationpath attributes
// into the project's .classpath.
//
// # Architecture
//
// The data flow of one configuration pass:
//
//	pom.xml + .classpath + org.eclipse.jdt.core.prefs
//	         ↓
//	    [maven] package (project model, dependency resolution)
//	         ↓
//	    [eea] package (eea-for-gav mapping, annotation path selection)
//	         ↓
//	    [classpath] and [jdt] packages (write the results back)
//
// [project] ties these steps together:
//
//	ws, _ := workspace.Open(root, workspace.Options{Variables: vars})
//	resolver := maven.NewResolver(maven.ResolverOptions{Remote: mavenrepo.NewClient()})
//	runner := project.NewRunner(ws, resolver, logger)
//	result, err := runner.Run(ctx, project.Options{Dir: "."})
//
// # Main Packages
//
// ## Domain
//
// [gav] - Maven coordinates with wildcard matching and specificity.
//
// [eea] - The eea-for-gav mapping, the annotation path selection for
// classpath entries and containers, and the import of JDT compiler options.
//
// [classpath] - Reading and writing Eclipse .classpath files.
//
// [jdt] - Reading and writing org.eclipse.jdt.core.prefs.
//
// [maven] - The pom.xml model and the artifact resolver (workspace, local
// repository, remote repositories).
//
// [workspace] - Eclipse workspace projects and classpath variables.
//
// [archive] - Reading entries from directories and JAR files.
//
// ## Infrastructure
//
// [config] - TOML configuration file.
//
// [cache] - TTL caches used to remember remote misses.
//
// [integrations] - HTTP client foundation and the Maven repository client.
//
// [httputil] - Retry with exponential backoff.
//
// [observability] - Hooks for pass, resolution, cache and HTTP events.
//
// [errors] - Structured errors with machine-readable codes.
//
// [gav]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/gav
// [eea]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/eea
// [classpath]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/classpath
// [jdt]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/jdt
// [maven]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/maven
// [workspace]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/workspace
// [archive]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/archive
// [project]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/project
// [config]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/config
// [cache]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/cache
// [integrations]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/integrations
// [httputil]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/observability
// [errors]: https://pkg.go.dev/github.com/lastnpe/eeaconf/pkg/errors
package pkg
