// Package game simulates a corridor session: a player walking a level,
// sliding along whatever it bumps into, and an optional enemy steered by an
// evolving perceptron.
//
// The World is not safe for concurrent use; the interactive front end only
// touches it from its event loop.
package game
