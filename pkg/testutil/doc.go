// Package testutil provides utilities for testing pathpirate components.
//
// Key components:
//   - Install: a fake PathPilot install (version directory, ~/tmc link,
//     metadata JSON, the configuration files pathpirate edits, and the
//     bundle of reference files) built in memory or in a temp directory
//   - MockRunner, MockFetcher, MockFlasher: testify mocks for the external
//     collaborators
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Tests that need real symlinks or file modes use EnvIsolated
//   - Fixture file contents are defined inline in fixtures.go
package testutil
