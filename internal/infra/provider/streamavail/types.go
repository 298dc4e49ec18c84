package streamavail

import (
	"fmt"

	"media-catalog-service/internal/domain"
)

// SearchResponse is the paginated envelope returned by the search endpoints.
type SearchResponse struct {
	Shows      []Show `json:"shows"`
	HasMore    bool   `json:"hasMore"`
	NextCursor string `json:"nextCursor"`
}

// Show is a single title as this provider reports it. Field names are
// camelCase throughout, unlike the snake_case detail provider.
type Show struct {
	ItemType      string          `json:"itemType"`
	ShowType      string          `json:"showType"`
	ID            string          `json:"id"`
	ImdbID        string          `json:"imdbId"`
	TmdbID        string          `json:"tmdbId"`
	Title         string          `json:"title"`
	OriginalTitle string          `json:"originalTitle"`
	Overview      string          `json:"overview"`
	ReleaseYear   int             `json:"releaseYear"`
	Genres        []ShowGenre     `json:"genres"`
	Directors     []string        `json:"directors"`
	Cast          []string        `json:"cast"`
	Rating        float64         `json:"rating"`
	Runtime       int             `json:"runtime"`
	ImageSet      *ImageSet       `json:"imageSet"`
	Streaming     StreamingByArea `json:"streamingOptions"`
}

// ShowGenre is an {id, name} genre pair.
type ShowGenre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ImageSet holds the artwork variants this provider serves per width.
type ImageSet struct {
	VerticalPoster     ImageSizes `json:"verticalPoster"`
	HorizontalPoster   ImageSizes `json:"horizontalPoster"`
	VerticalBackdrop   ImageSizes `json:"verticalBackdrop"`
	HorizontalBackdrop ImageSizes `json:"horizontalBackdrop"`
}

// ImageSizes holds one artwork variant at the widths the provider renders.
type ImageSizes struct {
	W240  string `json:"w240"`
	W360  string `json:"w360"`
	W480  string `json:"w480"`
	W600  string `json:"w600"`
	W720  string `json:"w720"`
	W1080 string `json:"w1080"`
	W1440 string `json:"w1440"`
}

// StreamingByArea maps a region code to the options available there.
type StreamingByArea map[string][]StreamingOption

// StreamingOption is one service offering a title in a region.
type StreamingOption struct {
	Service StreamingService `json:"service"`
	Type    string           `json:"type"`
	Link    string           `json:"link"`
}

// StreamingService identifies the offering service.
type StreamingService struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToMovie normalizes a raw show into the canonical Movie. It rejects the
// item (ErrValidation) when the mandatory fields are absent: a title plus at
// least one usable identifier. All optional fields fall back to documented
// defaults and never cause a rejection.
func (s *Show) ToMovie() (domain.Movie, error) {
	id := domain.ResolveID(s.ImdbID, s.TmdbID, s.Title)
	if s.Title == "" || id == "" {
		return domain.Movie{}, fmt.Errorf("%w: show %q has no title or identifier", domain.ErrValidation, s.ID)
	}

	genres := make([]domain.Genre, 0, len(s.Genres))
	for _, g := range s.Genres {
		genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
	}

	return domain.Movie{
		ID:          id,
		ImdbID:      s.ImdbID,
		TmdbID:      s.TmdbID,
		Title:       s.Title,
		Overview:    s.Overview,
		ReleaseYear: s.ReleaseYear,
		Genres:      genres,
		Rating:      s.Rating,
		Runtime:     s.Runtime,
		Images:      s.images(),
	}, nil
}

// images resolves the two artwork URLs the clients render, walking the
// width candidates in fixed order and ending on the placeholder.
func (s *Show) images() domain.ImageSet {
	var vertical, horizontal []string
	if s.ImageSet != nil {
		vertical = []string{s.ImageSet.VerticalPoster.W480, s.ImageSet.VerticalPoster.W600, s.ImageSet.VerticalPoster.W720}
		horizontal = []string{s.ImageSet.HorizontalPoster.W1080, s.ImageSet.HorizontalPoster.W720, s.ImageSet.HorizontalBackdrop.W1080}
	}

	return domain.ImageSet{
		VerticalPoster:   domain.FirstNonEmpty(append(vertical, domain.PlaceholderPoster)...),
		HorizontalPoster: domain.FirstNonEmpty(append(horizontal, domain.PlaceholderFanart)...),
	}
}

// ToStreaming normalizes the per-region streaming options, preserving the
// provider's ordering within each region.
func (s *Show) ToStreaming() map[string][]domain.StreamingOption {
	streaming := make(map[string][]domain.StreamingOption, len(s.Streaming))
	for region, options := range s.Streaming {
		list := make([]domain.StreamingOption, 0, len(options))
		for _, opt := range options {
			service := domain.FirstNonEmpty(opt.Service.Name, opt.Service.ID)
			if service == "" && opt.Link == "" {
				continue
			}
			list = append(list, domain.StreamingOption{Service: service, Link: opt.Link})
		}
		streaming[region] = list
	}

	return streaming
}
