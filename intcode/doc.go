// Package intcode implements the IntCode virtual machine: a flat, growable
// int64 memory, an instruction pointer and relative base, a FIFO input
// queue, and a Run call that returns to the host whenever the program needs
// input, produces output, or halts.
package intcode
