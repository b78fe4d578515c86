package main

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lumenlog/lumen"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[lumen]
  level = "debug"
  name = "simple"
  directory = "./simple_logs"
  task = "main"
  enable_color = true
  enable_rotation = true
  rotate_by = "size"
  max_size_bytes = 1000000
  backup_count = 5
  # Other settings use registered defaults
`

func main() {
	fmt.Println("--- Simple Logger Example ---")

	// --- Setup Config ---
	// Create dummy config file
	err := os.WriteFile(configFile, []byte(tomlContent), 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		// Continue with defaults potentially
	} else {
		fmt.Printf("Created dummy config file: %s\n", configFile)
		// defer os.Remove(configFile) // Remove to keep the config file
		// defer os.RemoveAll("./simple_logs") // Remove to keep the log directory
	}

	// Load logger settings from the file
	cfg, err := lumen.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v. Using defaults.\n", err)
		cfg = lumen.DefaultConfig()
	}

	// --- Initialize Logger ---
	if err := lumen.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logger initialized.")

	// --- Logging ---
	lumen.Debug("This is a debug message.", "user_id", 123)
	lumen.Info("Application starting...")
	lumen.Warning("Potential issue detected.", "threshold", 0.95)
	lumen.Error("An error occurred!", "code", 500)
	lumen.Exception(errors.New("connection refused"), "Upstream unreachable", "host", "db-1")

	// Logging from goroutines, each tagged with its own task label
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			base, err := lumen.Default()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to get default logger: %v\n", err)
				return
			}
			worker := base.WithTask(fmt.Sprintf("worker-%d", id))
			worker.Info("Goroutine started", "id", id)
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			worker.Info("Goroutine finished", "id", id)
		}(i)
	}

	// Wait for goroutines to finish before shutting down logger
	wg.Wait()
	fmt.Println("Goroutines finished.")

	// --- Shutdown Logger ---
	fmt.Println("Shutting down logger...")
	if err := lumen.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	fmt.Println("--- Example Finished ---")
	fmt.Printf("Check log files in './simple_logs' and the config '%s'.\n", configFile)
}
