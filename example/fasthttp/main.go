package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lumenlog/lumen"
	"github.com/lumenlog/lumen/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	// Create and configure logger
	logger, err := lumen.NewBuilder().
		Directory("/var/log/fasthttp").
		Name("fasthttp").
		Task("server").
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(lumen.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		// Other server settings
		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	// Start server
	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) int64 {
	// Custom logic to detect log levels
	// Can inspect specific fasthttp message patterns

	if strings.Contains(msg, "connection cannot be served") {
		return lumen.LevelWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return lumen.LevelError
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
