package main

import (
	"github.com/project-simone/simone/internal/server"
	"github.com/project-simone/simone/internal/util"
	"github.com/project-simone/simone/pkg/logger"
	"github.com/project-simone/simone/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
		Level: util.GetEnv("LOG_LEVEL"),
		JSON:  util.GetEnv("LOG_FORMAT") == "json",
	})
	logger.Init(consoleLogger)

	server.Init()
}
