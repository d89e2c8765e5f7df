// Package types defines the data model shared by the provisioning pipeline:
// command specifications and results, package names and their verdicts,
// configuration actions, pipeline phases and the filesystem abstraction.
package types
