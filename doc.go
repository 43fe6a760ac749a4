// Package depsolve is a backtracking dependency-resolution engine.
//
// A graph of Node values, each carrying an identity and an optional Requirement, is solved
// depth-first from a root. Every accepted selection is returned as a Path through the graph.
// When nothing can be selected, the Cause of the returned Resolved names the nodes whose
// repeated identity blocked resolution.
//
// The graph must be fully constructed before solving starts and must not be mutated while a
// solve is running.
package depsolve
