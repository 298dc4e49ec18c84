package main

import (
	_ "embed"
	"log"
	"net/http"
	"time"
)

//go:embed shows.json
var showsData []byte

//go:embed show_detail.json
var showDetailData []byte

func main() {
	http.HandleFunc("/shows/search/filters", func(w http.ResponseWriter, r *http.Request) {
		// Simulate network latency (50-200ms)
		time.Sleep(time.Duration(50+time.Now().UnixNano()%150) * time.Millisecond)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(showsData); err != nil {
			log.Printf("[StreamAvail] Write error: %v", err)
		}

		log.Printf("[StreamAvail] %s %s?%s - 200 OK", r.Method, r.URL.Path, r.URL.RawQuery)
	})

	http.HandleFunc("/shows/search/title", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(showsData); err != nil {
			log.Printf("[StreamAvail] Write error: %v", err)
		}

		log.Printf("[StreamAvail] %s %s?%s - 200 OK", r.Method, r.URL.Path, r.URL.RawQuery)
	})

	http.HandleFunc("/shows/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(showDetailData); err != nil {
			log.Printf("[StreamAvail] Write error: %v", err)
		}

		log.Printf("[StreamAvail] %s %s - 200 OK", r.Method, r.URL.Path)
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[StreamAvail] Health write error: %v", err)
		}
	})

	log.Println("Mock StreamAvail running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
