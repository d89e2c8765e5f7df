// Package configure applies configuration actions: whole-file writes of
// embedded content to well-known system paths.
//
// Writes are independent and not transactional. ApplyAll stops at the
// first failing action and leaves earlier writes in place.
package configure
