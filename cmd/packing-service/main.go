package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/andrescamacho/traveller-trade-go/internal/adapters/packing"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "50061"
)

func main() {
	host := flag.String("host", getEnv("PACKING_HOST", defaultHost), "Address to listen on")
	port := flag.String("port", getEnv("PACKING_PORT", defaultPort), "Port to listen on")
	flag.Parse()

	log.Println("Starting Freight Packing Service...")

	address := net.JoinHostPort(*host, *port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", address, err)
	}

	grpcServer := grpc.NewServer()
	packing.RegisterFreightPackingServer(grpcServer, packing.NewServer(packing.NewLocalPacker()))

	errChan := make(chan error, 1)
	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()
	log.Printf("Packing service listening on %s", listener.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Fatalf("%v", err)
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down...", sig)
		grpcServer.GracefulStop()
	}

	log.Println("Packing service stopped")
}

// getEnv returns the environment variable or a fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
