// Package plugins contains reusable code-input plugins and the catalog used
// to refer to them by name from configuration files.
package plugins
