package main

import (
	"github.com/fizzbuzzhq/fizzbuzz-backend/config"
	"github.com/fizzbuzzhq/fizzbuzz-backend/utils/logger"
)

func main() {
	config.SetupDatabase() // connects + migrates
	logger.Info("Database migration completed successfully")
}
