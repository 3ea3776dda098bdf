// Package registry provides a generic, type-safe registry that remembers
// registration order. The transform catalog is built on it: the order in
// which transforms are registered is the order they are listed and the
// order their targets are walked on revert.
package registry
