package domain

import (
	"errors"
	"testing"
)

func TestResolveID(t *testing.T) {
	tests := []struct {
		name     string
		imdbID   string
		tmdbID   string
		title    string
		expected string
	}{
		{"imdb wins", "tt0137523", "550", "Fight Club", "tt0137523"},
		{"tmdb fallback", "", "550", "Fight Club", "550"},
		{"title fallback", "", "", "Fight Club", "Fight Club"},
		{"all empty", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveID(tt.imdbID, tt.tmdbID, tt.title); got != tt.expected {
				t.Errorf("ResolveID() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGroupEpisodes(t *testing.T) {
	episodes := []Episode{
		{ID: 1, Title: "Pilot", Season: 1, Number: 1},
		{ID: 2, Title: "Second", Season: 1, Number: 2},
		{ID: 3, Title: "Opening", Season: 2, Number: 1},
	}

	seasons := GroupEpisodes(episodes)

	if len(seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(seasons))
	}
	if len(seasons[1]) != 2 {
		t.Errorf("expected 2 episodes in season 1, got %d", len(seasons[1]))
	}
	if len(seasons[2]) != 1 {
		t.Errorf("expected 1 episode in season 2, got %d", len(seasons[2]))
	}
	if seasons[1][0].Title != "Pilot" || seasons[1][1].Title != "Second" {
		t.Errorf("season 1 order not preserved: %+v", seasons[1])
	}
}

func TestGroupEpisodes_DedupLastWriteWins(t *testing.T) {
	episodes := []Episode{
		{ID: 1, Title: "Pilot", Season: 1, Number: 1},
		{ID: 2, Title: "Second", Season: 1, Number: 2},
		{ID: 9, Title: "Pilot (remastered)", Season: 1, Number: 1},
	}

	seasons := GroupEpisodes(episodes)

	if len(seasons[1]) != 2 {
		t.Fatalf("expected 2 episodes after dedup, got %d", len(seasons[1]))
	}
	if seasons[1][0].Title != "Pilot (remastered)" {
		t.Errorf("expected last write to win, got %q", seasons[1][0].Title)
	}
	if seasons[1][0].ID != 9 {
		t.Errorf("expected replacing episode's id, got %d", seasons[1][0].ID)
	}
}

func TestProviderError_Classification(t *testing.T) {
	cause := errors.New("status 429")
	err := NewProviderError("simkl", ClassRateLimited, 429, cause)

	if ClassOf(err) != ClassRateLimited {
		t.Errorf("expected rate_limited class, got %q", ClassOf(err))
	}
	if !IsRateLimited(err) {
		t.Error("expected IsRateLimited to be true")
	}
	if !errors.Is(err, cause) {
		t.Error("expected underlying cause to be reachable via errors.Is")
	}

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatal("expected errors.As to find ProviderError")
	}
	if pe.StatusCode != 429 {
		t.Errorf("expected status code to be preserved, got %d", pe.StatusCode)
	}
}

func TestClassOf_Unclassified(t *testing.T) {
	if got := ClassOf(errors.New("dial tcp: timeout")); got != ClassTransport {
		t.Errorf("expected unclassified errors to map to transport, got %q", got)
	}
	if got := ClassOf(ErrValidation); got != ClassValidationFailed {
		t.Errorf("expected validation class, got %q", got)
	}
}
