package main

import (
	"os"

	"github.com/small-frappuccino/modsheet/pkg/log"
)

// main is the entry point of the modsheet bot.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.ErrorLogger().Errorf("Fatal: %v", err)
		os.Exit(1)
	}
}
