// Package file provides the TOML-backed configuration store.
// Configuration lives in the passage config directory and is persisted
// as dot-notation keys within nested TOML tables.
package file
