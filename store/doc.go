// Package store provides reference user stores for auth.Store: an
// in-memory map for tests and single-process hosts, and a GORM-backed
// users table.
package store
