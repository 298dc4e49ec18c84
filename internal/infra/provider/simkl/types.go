package simkl

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"media-catalog-service/internal/domain"
)

// IDs is the identifier envelope this provider nests under every item.
// Trending items carry simkl_id, detail responses carry simkl; both are
// accepted, simkl_id first.
type IDs struct {
	Simkl   int    `json:"simkl"`
	SimklID int    `json:"simkl_id"`
	Slug    string `json:"slug"`
	IMDB    string `json:"imdb"`
	TMDB    string `json:"tmdb"`
}

// Resolve returns the numeric provider id, preferring simkl_id.
func (ids IDs) Resolve() int {
	if ids.SimklID != 0 {
		return ids.SimklID
	}
	return ids.Simkl
}

// Ratings is the nested rating envelope.
type Ratings struct {
	Simkl RatingValue `json:"simkl"`
}

// RatingValue holds one rating source's value.
type RatingValue struct {
	Rating float64 `json:"rating"`
	Votes  int     `json:"votes"`
}

// DirectorField accepts the two shapes this provider uses for directors: a
// bare string or an object with a name.
type DirectorField struct {
	Name string
}

// UnmarshalJSON implements the string-or-object decoding.
func (d *DirectorField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.Name = s
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	d.Name = obj.Name

	return nil
}

// ListItem is one entry of a genre or trending listing.
type ListItem struct {
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	IDs         IDs      `json:"ids"`
	Poster      string   `json:"poster"`
	Fanart      string   `json:"fanart"`
	Overview    string   `json:"overview"`
	Ratings     *Ratings `json:"ratings"`
	Runtime     int      `json:"runtime"`
	MovieLength int      `json:"movie_length"` // legacy runtime alias, minutes
	Genres      []string `json:"genres"`
}

// MovieItem is the full movie detail response.
type MovieItem struct {
	Title       string         `json:"title"`
	Tagline     string         `json:"tagline"`
	Year        int            `json:"year"`
	IDs         IDs            `json:"ids"`
	Poster      string         `json:"poster"`
	Fanart      string         `json:"fanart"`
	Overview    string         `json:"overview"`
	Ratings     *Ratings       `json:"ratings"`
	Runtime     int            `json:"runtime"`
	MovieLength int            `json:"movie_length"`
	Genres      []string       `json:"genres"`
	Director    *DirectorField `json:"director"`
	Budget      int64          `json:"budget"`
	Revenue     int64          `json:"revenue"`
	Trailer     string         `json:"trailer"`
	Trailers    []Trailer      `json:"trailers"`

	// Related titles arrive under users_recommendations on current
	// responses, recommendations on older ones.
	UsersRecommendations []ListItem `json:"users_recommendations"`
	Recommendations      []ListItem `json:"recommendations"`
}

// Trailer is one trailer reference.
type Trailer struct {
	Youtube string `json:"youtube"`
}

// ShowItem is the full series/anime detail response.
type ShowItem struct {
	Title         string       `json:"title"`
	Year          int          `json:"year"`
	IDs           IDs          `json:"ids"`
	Poster        string       `json:"poster"`
	Fanart        string       `json:"fanart"`
	Overview      string       `json:"overview"`
	Ratings       *Ratings     `json:"ratings"`
	Runtime       int          `json:"runtime"`
	TotalEpisodes int          `json:"total_episodes"`
	Network       string       `json:"network"`
	Country       string       `json:"country"`
	Status        string       `json:"status"`
	Genres        []string     `json:"genres"`
	Cast          []CastMember `json:"cast"`
	Trailer       string       `json:"trailer"`
}

// CastMember is one cast entry on a detail or credits response.
type CastMember struct {
	ID       int    `json:"id"`
	IDs      IDs    `json:"ids"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Headshot string `json:"headshot"`
}

// CreditsResponse is the envelope of the credits endpoint.
type CreditsResponse struct {
	Cast []CastMember `json:"cast"`
}

// EpisodeItem is one episode, from either the per-series listing or the
// single-episode endpoint.
type EpisodeItem struct {
	IDs         IDs    `json:"ids"`
	Title       string `json:"title"`
	Season      *int   `json:"season"`
	Episode     int    `json:"episode"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Img         string `json:"img"`
	Description string `json:"description"`
}

// EpisodesEnvelope is the alternative wrapped shape of the episode listing.
// The provider returns either a bare array or this object.
type EpisodesEnvelope struct {
	Episodes []EpisodeItem `json:"episodes"`
}

// PersonItem is the person lookup response.
type PersonItem struct {
	ID     int    `json:"id"`
	IDs    IDs    `json:"ids"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Poster string `json:"poster"`
}

// rating picks the nested rating value, zero when absent.
func rating(r *Ratings) float64 {
	if r == nil {
		return 0
	}
	return r.Simkl.Rating
}

// runtimeOf applies the fixed runtime resolution order: the current field
// first, then the legacy movie_length alias.
func runtimeOf(runtime, movieLength int) int {
	if runtime > 0 {
		return runtime
	}
	if movieLength > 0 {
		return movieLength
	}
	return 0
}

// genrePairs converts the provider's bare genre names into {id, name} pairs
// with a slug id.
func genrePairs(names []string) []domain.Genre {
	genres := make([]domain.Genre, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		genres = append(genres, domain.Genre{ID: slug, Name: name})
	}
	return genres
}

// ToMovie normalizes a listing item into the canonical Movie. Items with no
// title or no usable identifier are rejected; everything else defaults.
func (li *ListItem) ToMovie(images *ImageURLs) (domain.Movie, error) {
	simklID := li.IDs.Resolve()
	tmdbFallback := domain.FirstNonEmpty(li.IDs.TMDB, numericID(simklID))
	id := domain.ResolveID(li.IDs.IMDB, tmdbFallback, li.Title)
	if li.Title == "" || id == "" {
		return domain.Movie{}, fmt.Errorf("%w: listing item has no title or identifier", domain.ErrValidation)
	}

	return domain.Movie{
		ID:          id,
		ImdbID:      li.IDs.IMDB,
		TmdbID:      li.IDs.TMDB,
		Title:       li.Title,
		Overview:    li.Overview,
		ReleaseYear: li.Year,
		Genres:      genrePairs(li.Genres),
		Rating:      rating(li.Ratings),
		Runtime:     runtimeOf(li.Runtime, li.MovieLength),
		Images: domain.ImageSet{
			VerticalPoster:   images.Poster(li.Poster),
			HorizontalPoster: images.Fanart(li.Fanart),
		},
	}, nil
}

// ToMovieDetails normalizes the full movie response. Cast is left empty;
// it comes from the credits endpoint.
func (mi *MovieItem) ToMovieDetails(images *ImageURLs) (*domain.MovieDetails, error) {
	simklID := mi.IDs.Resolve()
	tmdbFallback := domain.FirstNonEmpty(mi.IDs.TMDB, numericID(simklID))
	id := domain.ResolveID(mi.IDs.IMDB, tmdbFallback, mi.Title)
	if mi.Title == "" || id == "" {
		return nil, fmt.Errorf("%w: movie detail has no title or identifier", domain.ErrValidation)
	}

	runtime := runtimeOf(mi.Runtime, mi.MovieLength)
	director := ""
	if mi.Director != nil {
		director = mi.Director.Name
	}

	directors := []string{}
	if director != "" {
		directors = append(directors, director)
	}

	return &domain.MovieDetails{
		Movie: domain.Movie{
			ID:          id,
			ImdbID:      mi.IDs.IMDB,
			TmdbID:      mi.IDs.TMDB,
			Title:       mi.Title,
			Overview:    mi.Overview,
			ReleaseYear: mi.Year,
			Genres:      genrePairs(mi.Genres),
			Rating:      rating(mi.Ratings),
			Runtime:     runtime,
			Images: domain.ImageSet{
				VerticalPoster:   images.Poster(mi.Poster),
				HorizontalPoster: images.Fanart(mi.Fanart),
			},
		},
		Tagline:          mi.Tagline,
		Director:         director,
		Directors:        directors,
		Cast:             []string{},
		RuntimeFormatted: domain.FormatRuntime(runtime),
		Budget:           domain.FormatCurrency(mi.Budget),
		Revenue:          domain.FormatCurrency(mi.Revenue),
		TrailerURL:       mi.trailerURL(),
		Streaming:        map[string][]domain.StreamingOption{},
		Recommendations:  mi.recommendations(images),
	}, nil
}

// recommendations maps the related-title list, capped at the canonical
// maximum. Unlike listings, entries with missing metadata are kept with
// defaults instead of rejected.
func (mi *MovieItem) recommendations(images *ImageURLs) []domain.Recommendation {
	items := mi.UsersRecommendations
	if len(items) == 0 {
		items = mi.Recommendations
	}
	if len(items) > domain.MaxRecommendations {
		items = items[:domain.MaxRecommendations]
	}

	recs := make([]domain.Recommendation, 0, len(items))
	for i := range items {
		li := &items[i]

		title := li.Title
		if title == "" {
			title = "Untitled"
		}

		year := ""
		if li.Year > 0 {
			year = strconv.Itoa(li.Year)
		}

		recs = append(recs, domain.Recommendation{
			ID:     li.IDs.Resolve(),
			Title:  title,
			Poster: images.Poster(li.Poster),
			Year:   year,
			Rating: rating(li.Ratings),
		})
	}

	return recs
}

// trailerURL applies the fixed trailer resolution order: the trailers list
// first, then the bare trailer field.
func (mi *MovieItem) trailerURL() string {
	key := mi.Trailer
	if len(mi.Trailers) > 0 && mi.Trailers[0].Youtube != "" {
		key = mi.Trailers[0].Youtube
	}
	if key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + key
}

// ToSeriesDetail normalizes the series/anime detail response. Seasons are
// filled in by the caller once the episode listing arrives.
func (si *ShowItem) ToSeriesDetail(images *ImageURLs) (*domain.SeriesDetail, error) {
	id := si.IDs.Resolve()
	if si.Title == "" || id == 0 {
		return nil, fmt.Errorf("%w: series detail has no title or identifier", domain.ErrValidation)
	}

	year := ""
	if si.Year > 0 {
		year = strconv.Itoa(si.Year)
	}

	cast := make([]domain.Actor, 0, domain.MaxCastSize)
	for _, member := range si.Cast {
		if len(cast) == domain.MaxCastSize {
			break
		}
		actor, err := member.ToActor(images)
		if err != nil {
			continue
		}
		cast = append(cast, actor)
	}

	trailer := ""
	if si.Trailer != "" {
		trailer = "https://www.youtube.com/watch?v=" + si.Trailer
	}

	return &domain.SeriesDetail{
		ID:            id,
		Title:         si.Title,
		Year:          year,
		Poster:        images.Poster(si.Poster),
		Fanart:        images.Fanart(si.Fanart),
		Overview:      si.Overview,
		Rating:        rating(si.Ratings),
		Runtime:       si.Runtime,
		TotalEpisodes: si.TotalEpisodes,
		Network:       si.Network,
		Country:       si.Country,
		Status:        si.Status,
		Genres:        append([]string{}, si.Genres...),
		Cast:          cast,
		Seasons:       map[int][]domain.Episode{},
		TrailerURL:    trailer,
	}, nil
}

// ToActor normalizes a cast member. Members with no name are rejected.
func (cm *CastMember) ToActor(images *ImageURLs) (domain.Actor, error) {
	if cm.Name == "" {
		return domain.Actor{}, fmt.Errorf("%w: cast member has no name", domain.ErrValidation)
	}

	id := cm.ID
	if id == 0 {
		id = cm.IDs.Resolve()
	}

	return domain.Actor{
		ID:    id,
		Name:  cm.Name,
		Role:  cm.Role,
		Image: images.Headshot(cm.Headshot),
	}, nil
}

// ToEpisode normalizes one episode. The title defaults to "Episode N", the
// season to 1 and the type to "episode", matching what the provider omits
// for specials and early listings.
func (ei *EpisodeItem) ToEpisode(images *ImageURLs) domain.Episode {
	season := 1
	if ei.Season != nil {
		season = *ei.Season
	}

	title := ei.Title
	if title == "" {
		title = fmt.Sprintf("Episode %d", ei.Episode)
	}

	epType := ei.Type
	if epType == "" {
		epType = "episode"
	}

	return domain.Episode{
		ID:          ei.IDs.Resolve(),
		Title:       title,
		Season:      season,
		Number:      ei.Episode,
		Type:        epType,
		Aired:       ei.Date,
		Image:       images.EpisodeThumb(ei.Img),
		Description: ei.Description,
	}
}

// ToActor normalizes the person lookup response.
func (pi *PersonItem) ToActor(images *ImageURLs) (*domain.Actor, error) {
	if pi.Name == "" {
		return nil, fmt.Errorf("%w: person has no name", domain.ErrValidation)
	}

	id := pi.ID
	if id == 0 {
		id = pi.IDs.Resolve()
	}

	return &domain.Actor{
		ID:    id,
		Name:  pi.Name,
		Role:  pi.Role,
		Image: images.Headshot(pi.Poster),
	}, nil
}

func numericID(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}
