package main

import (
	"fmt"
	"os"

	"github.com/metinatakli/bus-booking-system/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bus-booking-api: %v\n", err)
		os.Exit(1)
	}
}
