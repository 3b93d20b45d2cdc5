// Copyright IBM Corp. 2023, 2025

package main

import "github.com/hashicorp/go-sc/cmd"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main start go-sc cli `sctool`
func main() {
	cmd.Run(version, commit, date)
}
