// Package host is the component base an element builds on: observed
// attributes, text content, connection bookkeeping and bubbling events.
//
// A Base is driven from a single goroutine (the UI loop) and holds no locks.
// Listeners may dispatch further events or mutate attributes re-entrantly.
package host
