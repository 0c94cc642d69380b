// Package measure parses, rounds and formats carpenter tape measurements and
// does exact fraction arithmetic on them.
//
// Every function is pure. Failures come back as errors wrapping one of the
// Err* values; callers decide what the user sees.
package measure
