// Package cli implements the giftbox command line: composing gifts and the
// interactive, step-by-step reveal.
package cli
