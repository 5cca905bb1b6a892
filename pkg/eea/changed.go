package eea

// ProjectChanged reports whether the project-wide annotation path differs
// between the old and new model of a project. Either may be nil. A change
// means the project needs a full reconfiguration.
func ProjectChanged(old, updated Facade) bool {
	return ProjectWideAnnotationPath(old, PropAnnotationPath) != ProjectWideAnnotationPath(updated, PropAnnotationPath)
}
