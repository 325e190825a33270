// Package config provides configuration loading, merging, and validation
// for the CRM server.
//
// Configuration is assembled from the following sources; a field set by an
// earlier source is kept:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The entry point is [GetStructuredConfig].
package config
