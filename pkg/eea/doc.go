// Package eea configures External null-Annotations (EEA) on the classpath
// of Maven projects.
//
// # Overview
//
// An EEA artifact declares which artifacts it annotates in a text file
// called eea-for-gav at its root, one groupId:artifactId[:version[:classifier]]
// coordinate per line:
//
//	# annotations for the JDK
//	java:java
//	com.google.guava:guava
//
// [Builder] collects these declarations from classpath locations into a
// [Mapping]. The [Configurator] then sets the annotationpath attribute of
// each classpath entry whose artifact matches a declaration.
//
// # Passes
//
// A configuration pass runs three steps, mirroring the M2E configurator
// lifecycle:
//
//   - [Configurator.Configure] imports JDT compiler options shipped with
//     the maven-compiler-plugin configuration
//   - [Configurator.ConfigureRawClasspath] annotates the container entries
//     (JRE, Maven dependencies, PDE required plugins)
//   - [Configurator.ConfigureClasspath] annotates library entries
//
// # Container Properties
//
// Container annotation paths come from project properties, in order:
//
//   - m2e.jdt.annotationpath applies to every container
//   - m2e.eea.annotationpath.jre, .maven and .pde apply to one container each
//   - otherwise the first *-eea dependency declaring java:java annotates the JRE
//
// # Collaborators
//
// The package does not touch the filesystem through anything but its
// collaborators: a [Workspace] for path resolution, an [ArtifactResolver]
// for dependency files, a [Reader] for archive entries and a [Facade] for
// the Maven project model.
package eea
