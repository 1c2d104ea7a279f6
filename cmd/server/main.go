package main

import (
	"flag"

	"github.com/ismaelfarah/studenttrack/internal/config"
	"github.com/ismaelfarah/studenttrack/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Mode == "debug" {
		logger.Init("debug")
	} else {
		logger.Init("info")
	}

	app, err := bootstrap(cfg)
	if err != nil {
		logger.Fatalf("failed to start: %v", err)
	}
	defer app.shutdown()

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("listening on %s", addr)
	if err := app.router.Run(addr); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
