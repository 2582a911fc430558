// Package kv re-exports the medium abstraction and opens configured backends.
package kv

import "storefront/internal/kv/core"

type (
	// Driver identifies a medium backend.
	Driver = core.Driver
	// Medium is the key-value persistence medium.
	Medium = core.Medium
)

const (
	DriverMemory     = core.DriverMemory
	DriverFilesystem = core.DriverFilesystem
	DriverBolt       = core.DriverBolt
	DriverSQLite     = core.DriverSQLite
	DriverPostgres   = core.DriverPostgres
	DriverMySQL      = core.DriverMySQL
	DriverRedis      = core.DriverRedis
	DriverS3         = core.DriverS3
)

// ErrNotFound is returned by Medium.Get for absent keys.
var ErrNotFound = core.ErrNotFound
