// Package check validates patch files in bulk.
//
// Discover expands files and directories into a sorted file list. A Runner
// parses and lints the files concurrently with a bounded number of
// goroutines and returns a Report whose results keep the input order, so
// output is stable no matter how the work was scheduled. Reports convert
// to history runs for the run history store.
package check
