// Package element binds a declarative component (mode and disabled
// attributes, a value property, embedded text content) to a live editor
// view.
//
// An Element starts Detached, holding its value in a buffer. The first
// successful Connected call builds the editor view from that buffer and the
// element becomes Attached for the rest of its life; from then on the view's
// document is the only copy of the value.
package element
