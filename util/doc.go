// Package util holds small parsing and string helpers shared by the
// config, server and cmd packages.
package util
