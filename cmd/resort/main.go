// Package main is the entry point for the resort CLI tool.
package main

import (
	"github.com/hargabyte/resort/internal/cmd"
)

func main() {
	cmd.Execute()
}
