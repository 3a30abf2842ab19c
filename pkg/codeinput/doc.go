// Package codeinput implements the code-input widget core: a registry of named
// rendering templates with a queue for instances that ask for a template
// before it exists, a plugin hook dispatcher, the per-instance lifecycle state
// machine and the engine that keeps the rendered overlay in step with the
// editable surface.
//
// Instances are driven by explicit calls from a host shim (see the document
// package): Attach, Detach, SetAttribute, Input and Scroll. All work runs
// synchronously inside those calls. Attribute mutations raised while an
// instance is already reacting to one are queued and processed afterwards.
package codeinput
