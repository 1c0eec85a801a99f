package main

import (
	"lakeside/config"
	"lakeside/di"
	"lakeside/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
