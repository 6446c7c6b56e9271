/*
Package ports defines the driven ports (interfaces) for the option list.

These interfaces decouple the core from external implementations, allowing
the list to work with various rendering surfaces, configuration backends and
draft stores.

# Key Interfaces

  - Surface: the rendering collaborator receiving entry and state notifications.
  - Policy: the enforcement authority that can lock bound values read-only.
  - ConfigSource: a configuration document exposed as named boolean values.
  - DraftStore: persistence for uncommitted panel snapshots.
  - Locker: distributed locking for multi-replica draft access.
*/
package ports
