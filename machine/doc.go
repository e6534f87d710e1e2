// Package machine implements the byte-tape virtual machine for the eight
// instruction Brainfuck language.
//
// The machine consists of a bounded tape of 8-bit cells (30,000 by default),
// a data pointer with strict bounds, and a single-threaded dispatch loop.
// Bracket structure is validated up front into a jump table; characters
// outside the instruction set are only rejected when dispatched. Output,
// input, and tape observation are pluggable hooks, and a StepControl gives
// callers cooperative cancellation and a hard step ceiling.
package machine
