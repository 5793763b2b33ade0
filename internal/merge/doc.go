// Package merge combines a directory of per-symbol tick files into one
// time-ordered file.
//
// Records are ordered by timestamp; equal timestamps are ordered by file id,
// the 1-based position of the file in name order. MergeParallel splits the
// files across workers, each running its own heap, and merges the worker
// streams in a final heap; its output is identical to Merge.
package merge
