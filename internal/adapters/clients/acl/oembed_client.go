package acl

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/clients"
	"github.com/jsamuelsen/dedication-wall/internal/domain"
	"github.com/jsamuelsen/dedication-wall/internal/platform/logging"
)

// OEmbedClient reads song metadata from an oEmbed provider.
// It implements ports.SongSource and ports.HealthChecker.
type OEmbedClient struct {
	BaseAdapter
	logger *slog.Logger
}

// NewOEmbedClient creates an oEmbed adapter. The client's BaseURL is the
// provider root, e.g. https://open.spotify.com.
func NewOEmbedClient(client *clients.Client, logger *slog.Logger) *OEmbedClient {
	if logger == nil {
		logger = slog.Default()
	}

	return &OEmbedClient{BaseAdapter: NewBaseAdapter(client), logger: logger}
}

// oembedResponse is the provider's wire format. Spotify leaves artist_name
// out for most tracks and sets author_name to "Spotify".
type oembedResponse struct {
	Title      string `json:"title"`
	ArtistName string `json:"artist_name"`
	AuthorName string `json:"author_name"`
	HTML       string `json:"html"`
	Provider   string `json:"provider_name"`
}

// Fetch implements ports.SongSource.
func (c *OEmbedClient) Fetch(ctx context.Context, link string) (domain.OEmbed, error) {
	path := "/oembed?url=" + url.QueryEscape(link)

	c.logger.Log(ctx, logging.LevelTrace, "fetching oembed", slog.String("url", link))

	body, err := c.Get(ctx, path, "fetch song metadata", link)
	if err != nil {
		return domain.OEmbed{}, err
	}

	ext, err := DecodeResponseForService[oembedResponse](body, c.ServiceName())
	if err != nil {
		return domain.OEmbed{}, err
	}

	return domain.OEmbed{
		Title:      ext.Title,
		ArtistName: ext.ArtistName,
		AuthorName: ext.AuthorName,
		HTML:       ext.HTML,
	}, nil
}

// Name implements ports.HealthChecker.
func (c *OEmbedClient) Name() string {
	return c.ServiceName()
}

// Check implements ports.HealthChecker. Only the circuit state is inspected;
// a probe request per readiness check would spend the provider's rate limit.
func (c *OEmbedClient) Check(context.Context) error {
	if c.client.CircuitState() == clients.StateOpen {
		return domain.NewUnavailableError(c.ServiceName(), "circuit breaker open")
	}

	return nil
}
