package main

import (
	"os"

	"publicator/service"
)

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain runs the CLI and exits non-zero on failure
func RealMain() {
	if err := service.Execute(); err != nil {
		exit(1)
		return
	}
	exit(0)
}
