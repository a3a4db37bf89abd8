package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"picshare/internal/config"
)

// DiscoverService proxies third-party media search APIs (movies/series,
// videogames, books, music) so clients never see the upstream keys.
type DiscoverService struct {
	client *http.Client
	config *config.Config
}

func NewDiscoverService(cfg *config.Config) *DiscoverService {
	return &DiscoverService{
		client: &http.Client{Timeout: 10 * time.Second},
		config: cfg,
	}
}

// MediaResult is the normalized shape for movie/series search hits.
type MediaResult struct {
	Type        string  `json:"type"`
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"releaseDate"`
	Image       string  `json:"image"`
	Popularity  float64 `json:"-"`
}

// GameResult is the normalized shape for videogame search hits.
type GameResult struct {
	Name        string  `json:"name"`
	ReleaseDate *string `json:"releaseDate"`
	Image       *string `json:"image"`
}

type tmdbResponse struct {
	Results []struct {
		ID           int64   `json:"id"`
		Title        string  `json:"title"`
		Name         string  `json:"name"`
		ReleaseDate  string  `json:"release_date"`
		FirstAirDate string  `json:"first_air_date"`
		PosterPath   string  `json:"poster_path"`
		Popularity   float64 `json:"popularity"`
	} `json:"results"`
}

// SearchMovies queries TMDB for movies and tv shows and merges the results,
// most popular first.
func (s *DiscoverService) SearchMovies(ctx context.Context, query string) ([]MediaResult, error) {
	var movies, series tmdbResponse

	if err := s.getJSON(ctx, "https://api.themoviedb.org/3/search/movie", url.Values{
		"api_key": {s.config.TMDBAPIKey},
		"query":   {query},
	}, &movies); err != nil {
		return nil, err
	}
	if err := s.getJSON(ctx, "https://api.themoviedb.org/3/search/tv", url.Values{
		"api_key": {s.config.TMDBAPIKey},
		"query":   {query},
	}, &series); err != nil {
		return nil, err
	}

	results := make([]MediaResult, 0, len(movies.Results)+len(series.Results))
	for _, m := range movies.Results {
		if m.PosterPath == "" {
			continue
		}
		results = append(results, MediaResult{
			Type:        "movie",
			ID:          m.ID,
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate,
			Image:       "https://image.tmdb.org/t/p/w500" + m.PosterPath,
			Popularity:  m.Popularity,
		})
	}
	for _, t := range series.Results {
		if t.PosterPath == "" {
			continue
		}
		results = append(results, MediaResult{
			Type:        "series",
			ID:          t.ID,
			Title:       t.Name,
			ReleaseDate: t.FirstAirDate,
			Image:       "https://image.tmdb.org/t/p/w500" + t.PosterPath,
			Popularity:  t.Popularity,
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Popularity > results[j].Popularity })
	return results, nil
}

// SearchGames queries IGDB, which authenticates with a Twitch
// client-credentials token fetched per request.
func (s *DiscoverService) SearchGames(ctx context.Context, query string) ([]GameResult, error) {
	token, err := s.twitchToken(ctx)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf(`search %q; fields name,cover.url,first_release_date;`, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.igdb.com/v4/games", strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build igdb request: %w", err)
	}
	req.Header.Set("Client-ID", s.config.IGDBClientID)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query igdb: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("igdb returned status %d", resp.StatusCode)
	}

	var games []struct {
		Name  string `json:"name"`
		Cover *struct {
			URL string `json:"url"`
		} `json:"cover"`
		FirstReleaseDate int64 `json:"first_release_date"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("decode igdb response: %w", err)
	}

	results := make([]GameResult, len(games))
	for i, g := range games {
		r := GameResult{Name: g.Name}
		if g.FirstReleaseDate > 0 {
			date := time.Unix(g.FirstReleaseDate, 0).UTC().Format("2006-01-02")
			r.ReleaseDate = &date
		}
		if g.Cover != nil {
			img := strings.Replace(g.Cover.URL,
				"//images.igdb.com/igdb/image/upload/t_thumb",
				"https://images.igdb.com/igdb/image/upload/t_cover_big", 1)
			r.Image = &img
		}
		results[i] = r
	}
	return results, nil
}

// SearchBooks proxies Google Books, passing the upstream payload through.
func (s *DiscoverService) SearchBooks(ctx context.Context, query string) (json.RawMessage, error) {
	return s.getRaw(ctx, "https://www.googleapis.com/books/v1/volumes", url.Values{
		"q":   {query},
		"key": {s.config.GoogleBooksAPIKey},
	})
}

// SearchMusic proxies the Deezer search API, passing the payload through.
func (s *DiscoverService) SearchMusic(ctx context.Context, query string) (json.RawMessage, error) {
	return s.getRaw(ctx, "https://api.deezer.com/search", url.Values{"q": {query}})
}

func (s *DiscoverService) twitchToken(ctx context.Context) (string, error) {
	params := url.Values{
		"client_id":     {s.config.IGDBClientID},
		"client_secret": {s.config.IGDBClientSecret},
		"grant_type":    {"client_credentials"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://id.twitch.tv/oauth2/token?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch twitch token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("twitch token endpoint returned status %d", resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode twitch token: %w", err)
	}
	return token.AccessToken, nil
}

func (s *DiscoverService) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	raw, err := s.getRaw(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func (s *DiscoverService) getRaw(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return json.RawMessage(data), nil
}
