package main

import (
	"log"

	"github.com/gitscout/gitscout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
