// Package integrations provides HTTP clients for remote Maven repositories.
//
// # Overview
//
// The [Client] type provides shared HTTP functionality: default headers,
// retry with backoff for transient failures, status-code mapping to
// [ErrNotFound] and [ErrNetwork], and observability hooks for every request.
//
// Repository-specific logic lives in subpackages:
//
//   - [maven]: Maven 2 repository layout (artifact and pom downloads)
//
// [maven]: github.com/lastnpe/eeaconf/pkg/integrations/maven
package integrations
