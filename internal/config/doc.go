// Package config provides configuration loading, merging, and validation for
// the sync daemon.
//
// Configuration is assembled from several sources. For every field the first
// source that sets a non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults ([Defaults])
//
// The entry point is [GetConfig].
package config
