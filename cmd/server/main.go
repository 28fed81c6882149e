/*
main.go - Server entrypoint

PURPOSE:
  Opens the run store, wires the handler and router, and serves HTTP.

CONFIGURATION:
  -port  Listen port (default 8080, or PORT env var)
  -db    SQLite database path (default ./data/runs.db)
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/warp/climate-engine/api"
	"github.com/warp/climate-engine/store/sqlite"
)

func main() {
	defaultPort := os.Getenv("PORT")
	if defaultPort == "" {
		defaultPort = "8080"
	}
	port := flag.String("port", defaultPort, "listen port")
	dbPath := flag.String("db", "./data/runs.db", "SQLite database path")
	flag.Parse()

	if dir := filepath.Dir(*dbPath); dir != "." && dir != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open run store: %v", err)
	}
	defer store.Close()

	router := api.NewRouter(api.NewHandler(store))

	addr := fmt.Sprintf(":%s", *port)
	log.Printf("Frequency engine listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal(err)
	}
}
