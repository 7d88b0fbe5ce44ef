package main

import (
	"log"

	"github.com/ColaberryIntern/JobFlow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
