package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-stochastic-raytracer/pkg/scene"
	"github.com/df07/go-stochastic-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	staticDir := flag.String("static", "static/", "Directory with the browser UI")
	flag.Parse()

	webServer := server.NewServer(*port, *staticDir)

	log.Printf("Stochastic Raytracer Web Server")
	log.Printf("Scenes: %v", scene.Names())
	log.Printf("Stream a render from http://localhost:%d/api/render?scene=default", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
