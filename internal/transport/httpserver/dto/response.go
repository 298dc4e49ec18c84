package dto

import (
	"media-catalog-service/internal/app/service"
	"media-catalog-service/internal/domain"
)

// ImageSetResponse holds the artwork URLs for a title.
type ImageSetResponse struct {
	VerticalPoster   string `json:"vertical_poster"`
	HorizontalPoster string `json:"horizontal_poster"`
}

// GenreResponse is an {id, name} genre pair.
type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MovieResponse represents a single list-level title.
type MovieResponse struct {
	ID          string           `json:"id"`
	ImdbID      string           `json:"imdb_id,omitempty"`
	TmdbID      string           `json:"tmdb_id,omitempty"`
	Title       string           `json:"title"`
	Overview    string           `json:"overview,omitempty"`
	ReleaseYear int              `json:"release_year,omitempty"`
	Genres      []GenreResponse  `json:"genres"`
	Rating      float64          `json:"rating,omitempty"`
	Runtime     int              `json:"runtime,omitempty"`
	Images      ImageSetResponse `json:"images"`
}

// FromDomainMovie converts domain.Movie to MovieResponse.
func FromDomainMovie(m domain.Movie) MovieResponse {
	genres := make([]GenreResponse, len(m.Genres))
	for i, g := range m.Genres {
		genres[i] = GenreResponse{ID: g.ID, Name: g.Name}
	}

	return MovieResponse{
		ID:          m.ID,
		ImdbID:      m.ImdbID,
		TmdbID:      m.TmdbID,
		Title:       m.Title,
		Overview:    m.Overview,
		ReleaseYear: m.ReleaseYear,
		Genres:      genres,
		Rating:      m.Rating,
		Runtime:     m.Runtime,
		Images: ImageSetResponse{
			VerticalPoster:   m.Images.VerticalPoster,
			HorizontalPoster: m.Images.HorizontalPoster,
		},
	}
}

// MoviesResponse represents a movie listing.
type MoviesResponse struct {
	Movies []MovieResponse `json:"movies"`
	Count  int             `json:"count"`
}

// FromDomainMovies converts a movie slice to MoviesResponse.
func FromDomainMovies(movies []domain.Movie) MoviesResponse {
	out := make([]MovieResponse, len(movies))
	for i, m := range movies {
		out[i] = FromDomainMovie(m)
	}

	return MoviesResponse{Movies: out, Count: len(out)}
}

// ContentRowsResponse represents the fixed home screen rows.
type ContentRowsResponse struct {
	TopRated    []MovieResponse `json:"top_rated"`
	NewReleases []MovieResponse `json:"new_releases"`
}

// FromContentRows converts service.ContentRows to ContentRowsResponse.
func FromContentRows(rows service.ContentRows) ContentRowsResponse {
	return ContentRowsResponse{
		TopRated:    FromDomainMovies(rows.TopRated).Movies,
		NewReleases: FromDomainMovies(rows.NewReleases).Movies,
	}
}

// StreamingOptionResponse is one way to watch a title in a region.
type StreamingOptionResponse struct {
	Service string `json:"service"`
	Link    string `json:"link"`
}

// RecommendationResponse is a related title on a movie detail page.
type RecommendationResponse struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Poster string  `json:"poster"`
	Year   string  `json:"year,omitempty"`
	Rating float64 `json:"rating,omitempty"`
}

// MovieDetailsResponse represents the full movie detail view.
type MovieDetailsResponse struct {
	MovieResponse
	Tagline          string                               `json:"tagline,omitempty"`
	Director         string                               `json:"director,omitempty"`
	Directors        []string                             `json:"directors"`
	Cast             []string                             `json:"cast"`
	RuntimeFormatted string                               `json:"runtime_formatted"`
	Budget           string                               `json:"budget"`
	Revenue          string                               `json:"revenue"`
	TrailerURL       string                               `json:"trailer_url,omitempty"`
	Streaming        map[string][]StreamingOptionResponse `json:"streaming"`
	Recommendations  []RecommendationResponse             `json:"recommendations"`
}

// FromDomainMovieDetails converts domain.MovieDetails to MovieDetailsResponse.
func FromDomainMovieDetails(d *domain.MovieDetails) MovieDetailsResponse {
	streaming := make(map[string][]StreamingOptionResponse, len(d.Streaming))
	for region, options := range d.Streaming {
		out := make([]StreamingOptionResponse, len(options))
		for i, o := range options {
			out[i] = StreamingOptionResponse{Service: o.Service, Link: o.Link}
		}
		streaming[region] = out
	}

	recs := make([]RecommendationResponse, len(d.Recommendations))
	for i, r := range d.Recommendations {
		recs[i] = RecommendationResponse{
			ID:     r.ID,
			Title:  r.Title,
			Poster: r.Poster,
			Year:   r.Year,
			Rating: r.Rating,
		}
	}

	return MovieDetailsResponse{
		MovieResponse:    FromDomainMovie(d.Movie),
		Tagline:          d.Tagline,
		Director:         d.Director,
		Directors:        d.Directors,
		Cast:             d.Cast,
		RuntimeFormatted: d.RuntimeFormatted,
		Budget:           d.Budget,
		Revenue:          d.Revenue,
		TrailerURL:       d.TrailerURL,
		Streaming:        streaming,
		Recommendations:  recs,
	}
}

// EpisodeResponse represents a single episode.
type EpisodeResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Season      int    `json:"season"`
	Number      int    `json:"number"`
	Type        string `json:"type,omitempty"`
	Aired       string `json:"aired,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// FromDomainEpisode converts domain.Episode to EpisodeResponse.
func FromDomainEpisode(e domain.Episode) EpisodeResponse {
	return EpisodeResponse{
		ID:          e.ID,
		Title:       e.Title,
		Season:      e.Season,
		Number:      e.Number,
		Type:        e.Type,
		Aired:       e.Aired,
		Image:       e.Image,
		Description: e.Description,
	}
}

// ActorResponse represents a cast member or person lookup.
type ActorResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Image string `json:"image"`
}

// FromDomainActor converts domain.Actor to ActorResponse.
func FromDomainActor(a *domain.Actor) ActorResponse {
	return ActorResponse{ID: a.ID, Name: a.Name, Role: a.Role, Image: a.Image}
}

// SeriesDetailResponse represents the series/anime detail view with
// episodes grouped by season number.
type SeriesDetailResponse struct {
	ID            int                       `json:"id"`
	Title         string                    `json:"title"`
	Year          string                    `json:"year"`
	Poster        string                    `json:"poster"`
	Fanart        string                    `json:"fanart"`
	Overview      string                    `json:"overview,omitempty"`
	Rating        float64                   `json:"rating,omitempty"`
	Runtime       int                       `json:"runtime,omitempty"`
	TotalEpisodes int                       `json:"total_episodes,omitempty"`
	Network       string                    `json:"network,omitempty"`
	Country       string                    `json:"country,omitempty"`
	Status        string                    `json:"status,omitempty"`
	Genres        []string                  `json:"genres"`
	Cast          []ActorResponse           `json:"cast"`
	Seasons       map[int][]EpisodeResponse `json:"seasons"`
	TrailerURL    string                    `json:"trailer_url,omitempty"`
}

// FromDomainSeriesDetail converts domain.SeriesDetail to SeriesDetailResponse.
func FromDomainSeriesDetail(d *domain.SeriesDetail) SeriesDetailResponse {
	cast := make([]ActorResponse, len(d.Cast))
	for i := range d.Cast {
		cast[i] = FromDomainActor(&d.Cast[i])
	}

	seasons := make(map[int][]EpisodeResponse, len(d.Seasons))
	for season, episodes := range d.Seasons {
		out := make([]EpisodeResponse, len(episodes))
		for i, e := range episodes {
			out[i] = FromDomainEpisode(e)
		}
		seasons[season] = out
	}

	return SeriesDetailResponse{
		ID:            d.ID,
		Title:         d.Title,
		Year:          d.Year,
		Poster:        d.Poster,
		Fanart:        d.Fanart,
		Overview:      d.Overview,
		Rating:        d.Rating,
		Runtime:       d.Runtime,
		TotalEpisodes: d.TotalEpisodes,
		Network:       d.Network,
		Country:       d.Country,
		Status:        d.Status,
		Genres:        d.Genres,
		Cast:          cast,
		Seasons:       seasons,
		TrailerURL:    d.TrailerURL,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
