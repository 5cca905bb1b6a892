// Package classpath reads and writes Eclipse .classpath descriptors.
//
// A [Classpath] is an ordered list of [Entry] values, one per
// classpathentry element. Entries carry a kind (src, con, lib, var, output),
// a path and an ordered list of extra attributes such as annotationpath:
//
//	cp, err := classpath.Load(".classpath")
//	for _, e := range cp.Entries() {
//	    if e.Kind == classpath.KindContainer {
//	        e.SetAttribute(classpath.AttrAnnotationPath, "/my-eea")
//	    }
//	}
//	err = cp.Save(".classpath")
//
// XML attributes and child elements this package does not model (access
// rules, exclusion patterns) are preserved on a round trip.
//
// # Artifacts
//
// Library and variable entries may carry Maven coordinates, either through
// maven.groupId / maven.artifactId / maven.version / maven.classifier
// attributes or implicitly through a repository layout path such as
// M2_REPO/org/example/lib/1.0/lib-1.0.jar. [Entry.Artifact] exposes them.
package classpath
