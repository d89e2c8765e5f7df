// Package registry provides a small generic, thread-safe name→item registry.
// Package backends and built-in configuration actions register themselves
// here from init() and are looked up by the names used in configuration.
package registry
