// Package domain contains the canonical catalog entities and the core
// business rules shared by all providers. This package has no external
// dependencies (only stdlib).
package domain

// ContentType selects which upstream catalog an item belongs to.
type ContentType string

const (
	ContentTypeMovie ContentType = "movie"
	ContentTypeShow  ContentType = "show"
	ContentTypeAnime ContentType = "anime"
)

// Valid reports whether the content type is one of the known kinds.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeMovie, ContentTypeShow, ContentTypeAnime:
		return true
	}
	return false
}

// MaxCastSize caps the cast list on detail entities.
const MaxCastSize = 10

// MaxRecommendations caps the related-title list on movie detail.
const MaxRecommendations = 10

// Placeholder image URLs substituted when a provider returns no artwork.
const (
	PlaceholderPoster = "https://via.placeholder.com/300x450?text=No+Poster"
	PlaceholderFanart = "https://via.placeholder.com/1080x600?text=No+Image"
	PlaceholderActor  = "https://via.placeholder.com/100x100?text=Actor"
)

// Genre is an {id, name} pair as reported by a provider.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ImageSet holds resolved artwork URLs at the widths the clients render.
// Absent artwork is resolved to a placeholder by the normalizers, so both
// fields are always non-empty on a normalized entity.
type ImageSet struct {
	VerticalPoster   string `json:"vertical_poster"`
	HorizontalPoster string `json:"horizontal_poster"`
}

// Movie is the canonical list-level entity produced by the normalizers.
//
// ID is resolved in fixed priority order: IMDB id, then TMDB id, then title.
// Title and ID are never empty; a raw item missing both mandatory fields is
// rejected during normalization rather than constructed half-empty.
type Movie struct {
	ID          string   `json:"id"`
	ImdbID      string   `json:"imdb_id,omitempty"`
	TmdbID      string   `json:"tmdb_id,omitempty"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview,omitempty"`
	ReleaseYear int      `json:"release_year,omitempty"`
	Genres      []Genre  `json:"genres"`
	Rating      float64  `json:"rating,omitempty"` // 0-10 scale
	Runtime     int      `json:"runtime,omitempty"` // minutes; 0 means unknown
	Images      ImageSet `json:"images"`
}

// ResolveID returns the first non-empty identifier in priority order.
// An empty result means the item fails mandatory-field validation.
func ResolveID(imdbID, tmdbID, title string) string {
	return FirstNonEmpty(imdbID, tmdbID, title)
}

// StreamingOption is one way to watch a title in a given region.
type StreamingOption struct {
	Service string `json:"service"`
	Link    string `json:"link"`
}

// Recommendation is a related title suggested on a movie detail page. It
// is a lighter shape than Movie: suggestions with patchy metadata are
// shown with defaults rather than dropped.
type Recommendation struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Poster string  `json:"poster"`
	Year   string  `json:"year,omitempty"`
	Rating float64 `json:"rating,omitempty"`
}

// MovieDetails extends Movie with everything the detail view needs.
// Streaming maps a region code to the ordered options available there.
type MovieDetails struct {
	Movie
	Tagline          string                       `json:"tagline,omitempty"`
	Director         string                       `json:"director,omitempty"`
	Directors        []string                     `json:"directors"`
	Cast             []string                     `json:"cast"`
	RuntimeFormatted string                       `json:"runtime_formatted"`
	Budget           string                       `json:"budget"`
	Revenue          string                       `json:"revenue"`
	TrailerURL       string                       `json:"trailer_url,omitempty"`
	Streaming        map[string][]StreamingOption `json:"streaming"`
	Recommendations  []Recommendation             `json:"recommendations"`
}

// Episode belongs to a series. Its identity within the series is the
// (Season, Number) pair; batches are deduplicated on that pair with
// last-write-wins.
type Episode struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Season      int    `json:"season"`
	Number      int    `json:"episode"`
	Type        string `json:"type"` // "episode" or "special"
	Aired       string `json:"aired,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// Actor is a cast member on a series or a standalone person lookup.
type Actor struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Image string `json:"image"`
}

// SeriesDetail is the canonical detail entity for shows and anime.
// Seasons maps a season number to its ordered episode list.
type SeriesDetail struct {
	ID            int               `json:"id"`
	Title         string            `json:"title"`
	Year          string            `json:"year"`
	Poster        string            `json:"poster"`
	Fanart        string            `json:"fanart"`
	Overview      string            `json:"overview,omitempty"`
	Rating        float64           `json:"rating,omitempty"`
	Runtime       int               `json:"runtime,omitempty"`
	TotalEpisodes int               `json:"total_episodes,omitempty"`
	Network       string            `json:"network,omitempty"`
	Country       string            `json:"country,omitempty"`
	Status        string            `json:"status,omitempty"`
	Genres        []string          `json:"genres"`
	Cast          []Actor           `json:"cast"`
	Seasons       map[int][]Episode `json:"seasons"`
	TrailerURL    string            `json:"trailer_url,omitempty"`
}

// GroupEpisodes buckets episodes into a seasons map, deduplicating by
// (season, episode number) with last write winning. Order within a season
// follows the input order of the surviving episodes.
func GroupEpisodes(episodes []Episode) map[int][]Episode {
	seasons := make(map[int][]Episode)
	for _, ep := range episodes {
		list := seasons[ep.Season]
		replaced := false
		for i, existing := range list {
			if existing.Number == ep.Number {
				list[i] = ep
				replaced = true
				break
			}
		}
		if !replaced {
			list = append(list, ep)
		}
		seasons[ep.Season] = list
	}
	return seasons
}
