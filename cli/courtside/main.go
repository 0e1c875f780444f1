package main

import (
	"os"

	courtsidecmder "github.com/courtsideco/courtside/cmd/courtside"
)

func main() {
	cmd := courtsidecmder.NewCourtsideCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
