// Package assets resolves display metadata for promoted assets. Each asset
// type has its own resolver against the media API; the registry keys them by
// type tag so callers never branch on the tag themselves. Resolution is
// cosmetic only: a missing thumbnail must never block checkout or reporting.
package assets

import (
	"boost-server/internal/observability"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Preview is the display metadata for one asset.
type Preview struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Resolver resolves a preview for a single asset type.
type Resolver interface {
	Resolve(ctx context.Context, assetID uuid.UUID) (Preview, error)
}

// httpResolver fetches previews from one media API collection.
type httpResolver struct {
	baseURL    string
	collection string
	httpClient *http.Client
}

func (r *httpResolver) Resolve(ctx context.Context, assetID uuid.UUID) (Preview, error) {
	url := fmt.Sprintf("%s/api/%s/%s/preview", r.baseURL, r.collection, assetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Preview{}, fmt.Errorf("failed to build preview request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Preview{}, fmt.Errorf("failed to fetch asset preview: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Preview{}, fmt.Errorf("media api returned status %d", resp.StatusCode)
	}

	var preview Preview
	if err := json.NewDecoder(resp.Body).Decode(&preview); err != nil {
		return Preview{}, fmt.Errorf("failed to decode asset preview: %w", err)
	}
	return preview, nil
}

// Registry maps asset type tags to their resolvers.
type Registry struct {
	resolvers map[string]Resolver
	logger    *observability.Logger
}

// NewRegistry builds resolvers for every supported asset type against the
// media API.
func NewRegistry(mediaAPIURI string, logger *observability.Logger) *Registry {
	httpClient := &http.Client{Timeout: 5 * time.Second}
	return &Registry{
		logger: logger,
		resolvers: map[string]Resolver{
			"clip": &httpResolver{baseURL: mediaAPIURI, collection: "clips", httpClient: httpClient},
			"meme": &httpResolver{baseURL: mediaAPIURI, collection: "memes", httpClient: httpClient},
			"gif":  &httpResolver{baseURL: mediaAPIURI, collection: "gifs", httpClient: httpClient},
		},
	}
}

// Preview resolves display metadata for an asset, best effort. The second
// return value reports whether a preview was available.
func (r *Registry) Preview(ctx context.Context, assetType string, assetID uuid.UUID) (Preview, bool) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "asset_type", Value: assetType},
		observability.Field{Key: "asset_id", Value: assetID.String()},
	)

	resolver, ok := r.resolvers[assetType]
	if !ok {
		r.logger.Warn(ctx, "no resolver registered for asset type")
		return Preview{}, false
	}

	preview, err := resolver.Resolve(ctx, assetID)
	if err != nil {
		r.logger.InfoWithError(ctx, "asset preview unavailable", err)
		return Preview{}, false
	}
	return preview, true
}
