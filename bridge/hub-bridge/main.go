package main

import (
	"os"

	"github.com/viant/hubbridge/bridge"
)

func main() {
	if err := bridge.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
