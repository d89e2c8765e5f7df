// Package testutil provides utilities for testing provisio components.
//
// Key components:
//   - ScriptedRunner: an executor.Runner that answers from a script of
//     canned results keyed by command line and records every call
//   - MemoryFS helpers for configuration writes without touching the host
//
// Tests define their data inline; nothing here reads fixture files.
package testutil
