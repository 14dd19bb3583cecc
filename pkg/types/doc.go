// Package types defines the configuration, topology names, and standard
// error values shared by the chains list engines and their callers.
package types
