// Package main provides the agriseed CLI application.
// agriseed manages the lifecycle of the provincial agriculture
// statistics PostgreSQL database.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
