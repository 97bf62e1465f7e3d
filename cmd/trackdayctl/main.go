// Package main provides the entry point for the trackdayctl admin tool.
package main

import (
	"github.com/yourusername/trackday/internal/cli"
)

func main() {
	cli.Execute()
}
