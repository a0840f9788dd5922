package main

import "fmt"

// Set at build time with -ldflags "-X main.version=...".
var (
	version   string = "dev"
	gitSHA1   string = "unknown"
	gitDirty  string = "unknown"
	buildDate string = "unknown"
)

func Version() string {
	return fmt.Sprintf("chainset %s sha=%s:%s build=%s", version, gitSHA1, gitDirty, buildDate)
}
