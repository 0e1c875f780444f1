// Package utils provides small shared helpers for the courtside system.
package utils

// Version is the courtside build version. Overridden at build time via
// -ldflags "-X github.com/courtsideco/courtside/pkg/utils.Version=...".
var Version = "dev"
