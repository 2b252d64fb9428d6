// Package main provides the Manifold ML Framework CLI.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/manifold-ml/manifold/backend/cpu"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Manifold ML Framework %s\n", version)
			return
		case "info":
			backend := cpu.New()
			fmt.Printf("Manifold ML Framework %s\n", version)
			fmt.Printf("Backend: %s (%d workers)\n", backend.Name(), runtime.NumCPU())
			fmt.Printf("Runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return
		}
	}

	fmt.Println("Manifold ML Framework - Variational Autoencoders for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  info       Show version, backend and runtime details")
	fmt.Println("")
	fmt.Println("To train a VAE on MNIST, see examples/mnist-vae.")
}
