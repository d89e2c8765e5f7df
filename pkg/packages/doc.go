// Package packages knows how to talk to a system package manager.
//
// A Backend builds the argument vectors for the four interactions provisio
// needs (index refresh, batched install, index query and database query) and
// classifies the output of the two read-only queries. Backends hold no state
// and run nothing themselves; the executor runs what they build.
//
// Two backends are registered: "apt" for Debian and Ubuntu hosts and
// "pacman" for Arch hosts.
package packages
