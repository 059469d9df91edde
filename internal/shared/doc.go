// Package shared holds helpers used across edacli packages that belong to no
// single layer. The testutil subpackage provides captured slog handlers and
// small dataset fixtures for tests.
package shared
