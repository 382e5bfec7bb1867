// Package shared groups helpers that belong to no single report stage.
//
// The testutil subpackage captures slog output so tests can assert on the
// records a component logs:
//
//	logger, logs := testutil.NewTestLogger(t)
//	m := operations.NewManager(nil, nil, logger)
//	...
//	testutil.AssertLogContains(t, logs, slog.LevelError, "stage_error")
package shared
