// Package linkage solves the planar scissor linkage at the heart of a
// deployable ring or arch structure. Given a fold angle and a module
// configuration it produces the per-module relative rotation and the
// local hinge positions that every other package builds on.
package linkage
