// Package style merges the class, inline style, attribute and ARIA
// contributions of a widget configuration into a single ordered attribute
// set.
//
// All collections here are ordered: iteration follows first insertion, and
// overwriting an existing key keeps its original position. Classes are
// deduplicated, styles and attributes follow last-write-wins.
//
// Collections are values with copy-on-write semantics: every mutating method
// returns an updated copy and leaves the receiver untouched, so a
// configuration held by one caller is never changed by another caller's
// chain.
package style
