// Package engine compiles classified fragment/item sequences into render
// closures. Two interchangeable strategies exist: a generated one that
// synthesizes and evaluates an HCL template expression, and an interpreted
// fold that serves as the reference semantics. One strategy is selected per
// process at init time, and the two must agree byte-for-byte on every valid
// input.
package engine
