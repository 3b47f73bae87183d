// services/catalog_client.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pokemon-game-server/models"
	"pokemon-game-server/utils"
)

const (
	MinCatalogID     = 1
	DefaultMaxID     = 151 // first generation
	catalogPokemonEP = "pokemon"
)

// RandomSource is the randomness the game depends on. *utils.LockedRand
// satisfies it; tests substitute scripted values.
type RandomSource interface {
	IntN(n int) int
	Float64() float64
}

// EntityFetcher retrieves normalized entities from the catalog.
type EntityFetcher interface {
	Fetch(ctx context.Context, id int) (models.Entity, error)
	FetchRandom(ctx context.Context) (models.Entity, error)
}

// CatalogClient talks to a PokeAPI-compatible catalog over HTTP.
// Every call is a fresh round-trip: no caching, no retries.
type CatalogClient struct {
	BaseURL string
	MaxID   int
	Client  *http.Client
	Rand    RandomSource
}

func NewCatalogClient(baseURL string, timeout time.Duration, maxID int, rng RandomSource) *CatalogClient {
	if maxID < MinCatalogID {
		maxID = DefaultMaxID
	}
	return &CatalogClient{
		BaseURL: baseURL,
		MaxID:   maxID,
		Client:  utils.NewHTTPClient(timeout),
		Rand:    rng,
	}
}

// Fetch loads entity id. A 404 from the catalog yields ErrEntityNotFound;
// transport failures, timeouts, other statuses and bad bodies yield
// ErrUpstreamUnavailable.
func (c *CatalogClient) Fetch(ctx context.Context, id int) (models.Entity, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return models.Entity{}, fmt.Errorf("invalid catalog base URL '%s': %w", c.BaseURL, err)
	}
	endpoint := base.JoinPath(catalogPokemonEP, strconv.Itoa(id)).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Entity{}, fmt.Errorf("failed to create request to %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		log.Printf("[CATALOG] ❌ Request to %s failed: %v", endpoint, err)
		return models.Entity{}, fmt.Errorf("fetch pokemon %d: %w", id, ErrUpstreamUnavailable)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.Entity{}, fmt.Errorf("pokemon with ID %d: %w", id, ErrEntityNotFound)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[CATALOG] ❌ Catalog returned %d for %s: %s", resp.StatusCode, endpoint, string(body))
		return models.Entity{}, fmt.Errorf("fetch pokemon %d: status %d: %w", id, resp.StatusCode, ErrUpstreamUnavailable)
	}

	var entity models.Entity
	if err := json.NewDecoder(resp.Body).Decode(&entity); err != nil {
		log.Printf("[CATALOG] ❌ Failed to decode pokemon %d from %s: %v", id, endpoint, err)
		return models.Entity{}, fmt.Errorf("decode pokemon %d: %w", id, ErrUpstreamUnavailable)
	}
	return entity, nil
}

// FetchRandom picks an id uniformly from [1, MaxID] and fetches it.
func (c *CatalogClient) FetchRandom(ctx context.Context) (models.Entity, error) {
	id := MinCatalogID + c.Rand.IntN(c.MaxID-MinCatalogID+1)
	return c.Fetch(ctx, id)
}
