// Package pysrc provides the limited Python source matcher used by the
// upgrade engine. It recognizes a fixed set of import spellings and call
// site shapes; anything outside that set (aliased imports, dynamically
// built names, star imports) is reported as unrecognized and left alone.
package pysrc
