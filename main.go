package main

import (
	"os"

	"audiosweep/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
