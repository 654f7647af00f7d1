package main

import (
	"fmt"
	"os"

	"percept-server/internal/version"
)

// Утилита для CI: считает BuildID по дате сборки.
// Пример: go run ./tools/buildid 2026-01-15
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: buildid <YYYY-MM-DD>")
		os.Exit(1)
	}

	version.BuildDate = os.Args[1]

	id, err := version.CalculateBuildID()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(id)
}
