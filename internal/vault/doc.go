// Package vault performs the filesystem side of the pipeline: replace
// copies with SHA-256 verification, staging of displaced files, and
// collision-safe archive moves.
//
// All operations go through a [billy.Filesystem] so the package runs
// against the real OS filesystem in production and an in-memory filesystem
// in tests.
package vault
