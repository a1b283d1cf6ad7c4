package main

import (
	"github.com/NVIDIA/ingredient-checker/pkg/cli"
)

func main() {
	cli.Execute()
}
