// Package main is the entry point for the unwrapaudit CLI.
package main

import "unwrapaudit.dev/pkg/unwrapaudit/cmd"

func main() {
	cmd.Execute()
}
