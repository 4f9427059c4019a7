package main

import (
	"fmt"
	"os"

	userregistry "github.com/baditaflorin/go_user_registry"
)

func main() {
	// Fixed placeholder target; recorded by the registry, never dialed.
	_, err := userregistry.New(
		userregistry.WithConnectionTarget(userregistry.DefaultConnectionTarget),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating registry: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("user registry started")
}
