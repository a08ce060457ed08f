package main

import (
	"os"

	"khadija-recipes/cmd/commands"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
