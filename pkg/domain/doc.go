// Package domain holds the core types of the option list: entries, bindings,
// implication links, drafts and the events emitted while they change.
//
// The types here are deliberately free of I/O. Bindings carry explicit
// accessor closures instead of reflected property names, so a bad reference
// fails when the binding is constructed, not when the list commits.
package domain
