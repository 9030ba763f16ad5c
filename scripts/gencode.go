package main

import (
	"flag"
	"fmt"

	"mockzen-backend/internal/usecase"
)

// Prints fresh join/invite codes for manual seeding.
func main() {
	count := flag.Int("n", 5, "number of codes to generate")
	flag.Parse()

	for i := 0; i < *count; i++ {
		fmt.Println(usecase.GenerateCode())
	}
}
