package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateCoordinatePart validates one segment of a Maven coordinate
// (groupId, artifactId, version or classifier).
//
// The validation rules are intentionally conservative:
//   - No empty segments
//   - No control characters or whitespace
//   - No colons (the coordinate separator)
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateCoordinatePart(kind, part string) error {
	if part == "" {
		return New(ErrCodeInvalidGAV, "%s cannot be empty", kind)
	}

	if len(part) > 256 {
		return New(ErrCodeInvalidGAV, "%s too long (max 256 characters)", kind)
	}

	for _, r := range part {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidGAV, "%s contains invalid characters: %q", kind, part)
		}
	}

	dangerousPatterns := []string{
		":",  // Coordinate separator
		"..", // Parent directory
		"/",  // Path separator
		"\\", // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(part, pattern) {
			return New(ErrCodeInvalidGAV, "%s contains invalid characters: %q", kind, pattern)
		}
	}

	return nil
}

// mavenIDRegex matches valid Maven groupId and artifactId values.
var mavenIDRegex = regexp.MustCompile(`^[A-Za-z0-9_\-.]+$`)

// ValidateMavenID validates a groupId or artifactId against the character
// set Maven itself accepts for identifiers.
func ValidateMavenID(kind, id string) error {
	if err := ValidateCoordinatePart(kind, id); err != nil {
		return err
	}
	if !mavenIDRegex.MatchString(id) {
		return New(ErrCodeInvalidGAV, "invalid Maven %s: %q", kind, id)
	}
	return nil
}

// ValidateProjectDir validates a project directory argument.
// It must be non-empty and free of null bytes and control characters.
func ValidateProjectDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "project directory cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a repository URL string for safety.
// It ensures the URL has a safe scheme (http, https or file).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") && !strings.HasPrefix(rawURL, "file://") {
		return New(ErrCodeInvalidInput, "URL must use http, https or file scheme")
	}

	return nil
}
