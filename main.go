package main

import (
	"os"

	"github.com/Simi-mac/educafin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
