package main

import (
	"os"

	"meetmatch/core/logger"
	"meetmatch/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("Fatal", "error", err)
		os.Exit(1)
	}
}
