// Package dom provides the element primitives code-input widgets run on: a
// small handle over golang.org/x/net/html nodes with attribute storage, class
// lists, innerHTML parsing and serialization, form values and scroll offsets.
package dom
