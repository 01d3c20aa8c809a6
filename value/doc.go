// Package value implements the evaluator's array value model.
//
// An Array is an immutable, row-major collection of elements with an ordered
// Shape. Elements are a closed tagged union: numbers, characters, and boxed
// sub-arrays (Box allows heterogeneous nesting, e.g. run-grouping results of
// differing lengths). Every operation that "modifies" an array returns a new
// one; underlying storage may be shared because arrays are never mutated.
//
// The package also provides the broadcast engine: Pervade and PervadeUnary
// apply element operations across arrays of compatible but possibly differing
// shapes using leading-axis agreement (the lower-rank array's shape must be a
// prefix of the higher-rank array's shape, and each of its elements pairs
// with a whole cell of the other array). Pervasion recurses through boxes.
package value
