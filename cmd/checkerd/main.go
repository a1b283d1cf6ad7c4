package main

import (
	"log"

	"github.com/NVIDIA/ingredient-checker/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
