package main

import (
	"os"

	"alertaVecino/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
