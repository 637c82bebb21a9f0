// Package expr is the construction engine behind every composite circuit
// expression: the smart-constructor pipeline, the canonical instance cache,
// lazily computed derived properties, and the observability hooks.
//
// An Operation describes one n-ary constructor (series product,
// concatenation). Operation.Create runs the canonicalization pipeline:
//
//  1. Flatten nested operands of the same operation (associativity).
//  2. Validate the flattened operand list (e.g. channel dimensions).
//  3. Drop neutral operands; an empty remainder yields Operation.Empty.
//  4. Scan adjacent pairs against the binary rule table, splicing each
//     rewrite back into the list and stepping one position back so a new
//     neighbour pair is retried. This repeats to a fixed point.
//  5. Build the node and intern it in the engine's Cache, so structurally
//     equal expressions share one instance.
//
// The Engine carries configuration (logger, observer, rewrite limit, cache
// size) through functional options:
//
//	eng := expr.NewEngine[circuit.Circuit](eq, hash,
//	    expr.WithLogger(logger),
//	    expr.WithObserver(obs),
//	    expr.WithMaxRewrites(500),
//	)
//
// All Engine methods are safe for concurrent use.
package expr
