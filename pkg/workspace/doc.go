// Package workspace models an Eclipse workspace on the local filesystem.
//
// # Overview
//
// Eclipse classpath entries refer to files in three ways:
//
//   - workspace paths, "/project/sub/dir", resolved through the project's location
//   - variable paths, "M2_REPO/org/example/lib/1.0/lib-1.0.jar"
//   - plain absolute filesystem paths
//
// [Workspace.ToFile] maps any of them to a filesystem path, falling back to
// the path itself when it does not name a member of an open project.
// [Workspace.ProjectPathFor] goes the other way for artifact files that
// live inside a workspace project.
//
// # Discovery
//
// [Open] scans the immediate subdirectories of the workspace root for
// Eclipse ".project" descriptors. Projects outside the root can be added
// with [Workspace.AddProject].
package workspace
