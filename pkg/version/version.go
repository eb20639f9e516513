// Package version carries build identification, injected at link time via
// -ldflags.
package version

// Version is the repoviz release version.
var Version = "dev"

// Commit is the Git hash of the repoviz binary which is executing.
var Commit = "<unknown>"

// Date is the build timestamp.
var Date = "<unknown>"
