package main

import (
	"fmt"
	"os"

	"github.com/GintasS/social-media-post-generator/internal/bootstrap"
)

func main() {
	if err := bootstrap.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
