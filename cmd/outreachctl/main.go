package main

import (
	"os"

	"github.com/matheus3301/outreach/internal/ctl"
)

func main() {
	if err := ctl.Execute(); err != nil {
		os.Exit(1)
	}
}
