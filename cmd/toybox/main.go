// Package main provides the toybox CLI.
package main

import "github.com/mesh-intelligence/toybox/internal/cli"

func main() {
	cli.Execute()
}
