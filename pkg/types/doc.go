// Package types holds the interfaces shared across pathpirate packages.
package types
