package main

import (
	"log"

	"picshare/internal/transport/http"
)

func main() {
	if err := http.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
