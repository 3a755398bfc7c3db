// Package editor provides a Bubble Tea code editor view backed by the
// buffer package.
//
// A View is built from an ordered tree of extensions. Extensions placed in a
// Compartment can be swapped at runtime by dispatching a Transaction that
// carries the compartment's Reconfigure effect; the document, its history and
// the selection survive the swap. Update listeners run synchronously at the
// end of every dispatch and after every user input that changed the state.
package editor
