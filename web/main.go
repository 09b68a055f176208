package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	threads := flag.Int("threads", config.DefaultThreads(), "Maximum render workers per request")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *threads)

	log.Printf("Sphere Tracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webServer.Shutdown(ctx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
