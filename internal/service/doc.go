// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the storage
// ports (defined in internal/store) to fulfill application features.
//
// The services own every business rule applied before an entity reaches
// storage: validation, existence checks, partial-update semantics, and
// collection-level invariants such as email uniqueness. They perform no
// local recovery; every failure is raised to the immediate caller, and the
// API layer decides the externally visible outcome.
//
// Services are synchronous and stateless. Check-then-act sequences (the
// existence check before a delete, the stock read-modify-write, the email
// lookup before a create) are not atomic here; the storage boundary carries
// the serialization (the unique email index in postgres). See the package
// tests for the documented race windows.
package service
