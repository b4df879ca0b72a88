// Package parse is a streaming parser-combinator library built on packrat
// memoization.
//
// A grammar is assembled out of small composable Parsers: Literal, AnyChar,
// CharFrom and EndOfInput at the leaves, SequenceOf, OneOf, ZeroOrMore,
// OneOrMore, Optional, FollowedBy, NotFollowedBy and Lazy to combine them.
// Applying a Parser to input, whether a whole string or a growing chunked
// stream, always runs in time linear in the input length regardless of how
// much backtracking the grammar induces, because every (parser, offset)
// pair is computed at most once per distinct input snapshot.
//
// This package is the core: the state algebra, the memo table, the
// primitive recognizers and the combinators. Running a parser against a
// whole string or a chunked stream lives in the sibling stream package.
package parse
