package main

import (
	"github.com/gha-debug/gha-debug/cmd/gha-debug/internal"
)

func main() {
	internal.Execute()
}
