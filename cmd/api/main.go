package main

import (
	"fmt"
	"os"

	"github.com/mayabazar/booking-api/internal/app"
)

func main() {
	err := app.Run(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
