// Package config provides configuration loading, merging, and validation
// facilities for the GarbageSocial client and dev server.
//
// Configuration is assembled from multiple sources; when the same field is
// set in several of them, the first non-zero value wins in this order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetConfig].
package config
