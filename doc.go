// Package mwp implements mwp-analysis: a static flow-calculus deciding
// whether each variable of an imperative program admits a polynomial
// bound, in the initial values of the program's inputs, after the
// program runs.
//
// The package is organized around the five algebraic layers the
// calculus is built from, leaves first: a [Scalar] semiring of growth
// classes, [Monomial]s of indicator [Delta]s, [Polynomial]s ordered
// over those monomials, [Relation] matrices of polynomials indexed by
// variable name, and [RelationList]s lifting the matrix operations
// over non-deterministic derivation choices. [DeltaGraph] accumulates
// witnesses that force an infinite bound; [Choices] turns those
// witnesses into the set of derivation choice-vectors that avoid
// infinity; [Derive] walks a program's AST and builds the
// [RelationList] a [Bound] is read off of.
package mwp
