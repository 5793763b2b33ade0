// Package pool implements the symbol worker pool and its dispatcher.
//
// The pool:
//   - Runs a fixed number of workers pulling symbols from a shared queue
//   - Stops each worker with one sentinel per worker (Drain)
//   - Keeps going when one symbol fails; failures are joined and returned by Wait
//
// Lifecycle: Idle -> Running -> Draining -> Done.
package pool
