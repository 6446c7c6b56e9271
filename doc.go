// Package optlist implements a bound option list: a set of boolean
// options, each tied to a configuration value, rendered by a host
// surface and kept consistent through implication links.
//
// The core unit is the Panel. Entries are created against bindings
// (typed accessors over a bool, a struct field, or a keyed config
// source), links declare implications between entries ("unchecking A
// unchecks B"), and a policy can lock entries against user changes
// without touching their backing values.
//
// Synchronization is explicit and two-way: Load pulls bound values into
// the displayed states, Commit pushes displayed states back, skipping
// locked entries and aggregating per-entry write failures.
//
// Subpackages provide the surrounding machinery: pkg/manifest loads
// panel definitions from YAML or a loam markdown repository, pkg/policy
// ships common lock policies, and pkg/adapters contains config-source,
// draft-store, HTTP and MCP implementations.
package optlist
