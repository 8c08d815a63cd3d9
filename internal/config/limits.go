// Package config holds the evaluator's tunable limits and shared constants.
package config

// DefaultComplexityLimit bounds AST depth/size examined by the checker
// while inferring comprehension element types and resolving overloads, to
// keep macro-expanded inputs (nested all/exists/map/filter) from causing
// exponential blowup during checking.
const DefaultComplexityLimit = 100000

// DefaultIterationBudget bounds the total number of comprehension loop
// iterations a single evaluation may perform, summed across every
// comprehension the program executes.
const DefaultIterationBudget = 1000000

// DefaultStackDepth bounds the evaluator's value stack. The interpreter
// checks the live stack height after every step and ends the evaluation
// with an error value once it exceeds this bound; planned steps carry no
// per-step stack delta, and Plan computes no depth bound of its own.
const DefaultStackDepth = 10000

// IsTestMode is a mode flag that no package in this module reads or
// sets; it has no effect on evaluation or on diagnostic formatting.
var IsTestMode = false
