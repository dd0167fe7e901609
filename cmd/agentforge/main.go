// Package main provides the entry point for the agentforge CLI.
package main

import "os"

func main() {
	os.Exit(Execute())
}
