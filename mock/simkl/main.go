package main

import (
	_ "embed"
	"log"
	"net/http"
	"strings"
	"time"
)

//go:embed genre_listing.json
var genreListingData []byte

//go:embed movie_detail.json
var movieDetailData []byte

//go:embed episodes.json
var episodesData []byte

func main() {
	serve := func(name string, data []byte) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// Simulate network latency (50-200ms)
			time.Sleep(time.Duration(50+time.Now().UnixNano()%150) * time.Millisecond)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write(data); err != nil {
				log.Printf("[Simkl] %s write error: %v", name, err)
			}

			log.Printf("[Simkl] %s %s - 200 OK", r.Method, r.URL.Path)
		}
	}

	http.HandleFunc("/movies/genres/", serve("genre", genreListingData))
	http.HandleFunc("/tv/episodes/", serve("episodes", episodesData))
	http.HandleFunc("/anime/episodes/", serve("episodes", episodesData))
	http.HandleFunc("/movies/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/movies/credits/") {
			serve("credits", movieDetailData)(w, r)
			return
		}
		serve("movie", movieDetailData)(w, r)
	})
	http.HandleFunc("/tv/", serve("show", movieDetailData))
	http.HandleFunc("/anime/", serve("anime", movieDetailData))

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[Simkl] Health write error: %v", err)
		}
	})

	log.Println("Mock Simkl running on :8082")
	server := &http.Server{
		Addr:         ":8082",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
