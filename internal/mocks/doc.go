// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of the store interfaces,
// facilitating consistent and DRY testing across the codebase. Each mock
// keeps a mutex-guarded in-memory map as its default backing store and
// exposes function fields that individual tests can override to force
// specific behaviors (errors, fixed return values, call capture).
//
// The map-backed defaults mirror the semantics of the postgres stores,
// including ID assignment on first save and email uniqueness for users,
// so service tests exercise realistic storage behavior without a database.
package mocks
