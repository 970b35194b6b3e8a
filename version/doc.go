// Package version reports the build version of the running binary for the
// /info endpoint and the startup log.
package version
