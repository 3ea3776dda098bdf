// Package catalog holds the fixed set of named transforms pathpirate can
// apply to a PathPilot install, and the Runner that executes them.
//
// A Transform is data: the files it requires, the steps it runs through
// the transform package, the assets it downloads and the artifacts it
// copies. Every required file is checked before anything is written, so
// a transform with a missing input changes nothing.
//
// Transforms that depend on the machine hardware (add-encoder and
// add-servos) resolve a Variant from the machine model and PathPilot
// minor version first. An unsupported combination fails before any
// mutation.
package catalog
