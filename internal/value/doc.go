// Package value holds the item variant model and the context resolution
// rules shared by both rendering strategies. Classification happens once,
// at compile time; resolution happens on every render.
package value
