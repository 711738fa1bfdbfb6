// Package images fetches the pictures shown in the card header. Failures
// are logged and reported as a nil image so the card renders without them.
package images

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/pitchcard/internal/adapters/provider"
	"github.com/okian/pitchcard/internal/domain/catalog"
	"github.com/okian/pitchcard/internal/domain/types"
	"github.com/okian/pitchcard/pkg/logger"
)

// ProviderName labels image requests in metrics and logs.
const ProviderName = "images"

// Fetcher downloads headshots and team logos.
type Fetcher struct {
	http            *provider.Client
	headshotPattern string
}

// New creates a fetcher. headshotPattern is a URL containing one %d for
// the player id.
func New(headshotPattern string, opts ...provider.Option) *Fetcher {
	return &Fetcher{http: provider.NewClient(ProviderName, opts...), headshotPattern: headshotPattern}
}

// HeadshotURL returns the headshot address of a player.
func (f *Fetcher) HeadshotURL(playerID int) string {
	return fmt.Sprintf(f.headshotPattern, playerID)
}

// Headshot returns the player's photo or nil.
func (f *Fetcher) Headshot(ctx context.Context, playerID int) *types.Image {
	return f.fetch(ctx, f.HeadshotURL(playerID), logger.Int("player_id", playerID))
}

// Logo returns the logo of the team abbreviation or nil when the team has
// no known logo or the download fails.
func (f *Fetcher) Logo(ctx context.Context, abbreviation string) *types.Image {
	u, ok := catalog.LogoURL(abbreviation)
	if !ok {
		f.http.Logger().Warn(ctx, "no logo for team", logger.String("team", abbreviation))
		return nil
	}
	return f.fetch(ctx, u, logger.String("team", abbreviation))
}

func (f *Fetcher) fetch(ctx context.Context, url string, field logger.Field) *types.Image {
	body, ctype, err := f.http.Get(ctx, url)
	if err != nil {
		f.http.Logger().Warn(ctx, "image unavailable", field, logger.Error(err))
		return nil
	}
	if ctype == "" || strings.HasPrefix(ctype, "application/octet-stream") {
		ctype = http.DetectContentType(body)
	}
	if i := strings.Index(ctype, ";"); i >= 0 {
		ctype = strings.TrimSpace(ctype[:i])
	}
	if !strings.HasPrefix(ctype, "image/") {
		f.http.Logger().Warn(ctx, "not an image", field, logger.String("content_type", ctype))
		return nil
	}
	return &types.Image{ContentType: ctype, Data: body}
}
