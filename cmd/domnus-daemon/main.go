package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/andrescamacho/domnus-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/domnus-go/internal/infrastructure/config"
)

func main() {
	// Parse command-line flags
	configFlag := flag.String("config", "", "Path to config.yaml (searched in ., ./configs and /etc/domnus when empty)")
	flag.Parse()

	fmt.Println("Domnus Economy Service v0.1.0")
	fmt.Println("=============================")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configFlag)

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	fmt.Printf("Kingdom store: %s\n", cfg.Store.Kind)
	fmt.Printf("Database:      %s\n", cfg.Database.Type)

	app, err := bootstrap.New(cfg, bootstrap.Options{})
	if err != nil {
		return err
	}
	defer app.Close()

	fmt.Printf("Serving economy service on %s\n", app.Server().Addr())
	if cfg.Metrics.Enabled {
		fmt.Printf("Metrics on %s\n", cfg.Metrics.URL())
	}

	// Start serving (blocks until shutdown)
	return app.Run()
}
