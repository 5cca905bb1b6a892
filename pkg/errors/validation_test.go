package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCoordinatePart(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid group", "org.eclipse.jdt", false},
		{"valid artifact with dash", "guava-eea", false},
		{"valid version", "31.0.1-jre", false},
		{"valid classifier", "sources", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"colon", "a:b", true},
		{"path traversal", "..", true},
		{"slash", "org/eclipse", true},
		{"backslash", "org\\eclipse", true},
		{"space", "org eclipse", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinatePart("groupId", tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Equal(t, ErrCodeInvalidGAV, GetCode(err))
		})
	}
}

func TestValidateMavenID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"com.google.guava", false},
		{"commons_lang", false},
		{"jdk-eea", false},
		{"java", false},
		{"${project.groupId}", true},
		{"a@b", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateMavenID("artifactId", tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "ValidateMavenID(%q) error = %v", tt.input, err)
		})
	}
}

func TestValidateProjectDir(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "my-project", false},
		{"absolute", "/home/me/workspace/my-project", false},
		{"dot", ".", false},

		{"empty", "", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x1bbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectDir(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "ValidateProjectDir(%q) error = %v", tt.input, err)
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://repo1.maven.org/maven2", false},
		{"http://localhost:8081/repository/maven-public", false},
		{"file:///srv/maven", false},
		{"", true},
		{"ftp://example.com", true},
		{"repo1.maven.org", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateURL(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "ValidateURL(%q) error = %v", tt.input, err)
		})
	}
}
