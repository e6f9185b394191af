// Package formula implements a sandboxed arbitrary-precision formula engine.
//
// A formula is text made of numbers, the binary operators + - * / ^ (and ×
// and ÷), functions applied to parenthesized expressions like "sqrt(x)", and
// variables wrapped in brackets like "[rate]". Parse turns the text into an
// immutable expression tree once; the tree can then be evaluated any number
// of times, concurrently, against different variable storages.
//
// Parsing is driven by Options, an ordered list of grammar rules and token
// rules. Each rule either claims a span of the input, rejects it with an
// error, or passes it on to the next rule. The default rules parse constants,
// variables, parentheses, and binary operators, in that order; operators of
// equal order associate to the left, so "2^3^2" is 64 and "1-2-3" is -4.
// Numbers may use either '.' or ',' as the decimal separator.
//
// Evaluation produces a Result tree with the value of every subexpression.
// Results can be converted to Go numbers, formatted back into re-parsable
// text for a locale, or dumped as a tree for debugging.
package formula
