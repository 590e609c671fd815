// Package debug writes timestamped trace lines for the panel engine.
//
// Output goes to the file named by PANEL_DEBUG (or one set through Init by
// the binaries). With no destination configured every call is a no-op.
package debug
