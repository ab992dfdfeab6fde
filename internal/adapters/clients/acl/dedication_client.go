package acl

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/clients"
	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

const dedicationsPath = "/api/dedications"

// DedicationClient stores dedications through another dedication wall's
// REST API. It implements ports.DedicationStore and ports.HealthChecker.
//
// The remote list is already newest first, so store order and display
// order agree.
type DedicationClient struct {
	BaseAdapter
}

// NewDedicationClient creates the adapter. The client's BaseURL is the
// remote wall's root.
func NewDedicationClient(client *clients.Client) *DedicationClient {
	return &DedicationClient{BaseAdapter: NewBaseAdapter(client)}
}

// remoteDedication mirrors the wall's JSON shape. Songs fields are pointers
// because older servers send null for them.
type remoteDedication struct {
	ID             string    `json:"id,omitempty"`
	SenderName     string    `json:"senderName"`
	SenderClass    string    `json:"senderClass"`
	RecipientName  string    `json:"recipientName"`
	RecipientClass string    `json:"recipientClass"`
	Message        string    `json:"message"`
	SpotifyURL     *string   `json:"spotifyUrl,omitempty"`
	SongTitle      *string   `json:"songTitle,omitempty"`
	SongArtist     *string   `json:"songArtist,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

func toRemote(d domain.Dedication) remoteDedication {
	r := remoteDedication{
		ID:             d.ID,
		SenderName:     d.SenderName,
		SenderClass:    d.SenderClass,
		RecipientName:  d.RecipientName,
		RecipientClass: d.RecipientClass,
		Message:        d.Message,
		Timestamp:      d.Timestamp,
	}

	if d.HasSong() {
		r.SpotifyURL = &d.SpotifyURL
		r.SongTitle = &d.SongTitle
		r.SongArtist = &d.SongArtist
	}

	return r
}

func fromRemote(r *remoteDedication) (domain.Dedication, error) {
	return domain.Dedication{
		ID:             r.ID,
		SenderName:     r.SenderName,
		SenderClass:    r.SenderClass,
		RecipientName:  r.RecipientName,
		RecipientClass: r.RecipientClass,
		Message:        r.Message,
		SpotifyURL:     deref(r.SpotifyURL),
		SongTitle:      deref(r.SongTitle),
		SongArtist:     deref(r.SongArtist),
		Timestamp:      r.Timestamp,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// List implements ports.DedicationStore.
func (c *DedicationClient) List(ctx context.Context) ([]domain.Dedication, error) {
	body, err := c.Get(ctx, dedicationsPath, "list dedications", "")
	if err != nil {
		return nil, err
	}

	remote, err := DecodeResponseForService[[]remoteDedication](body, c.ServiceName())
	if err != nil {
		return nil, err
	}

	return TranslateSlice[remoteDedication, domain.Dedication](*remote, fromRemote)
}

// Insert implements ports.DedicationStore. The remote wall assigns the ID
// and timestamp when they are missing.
func (c *DedicationClient) Insert(ctx context.Context, d domain.Dedication) (domain.Dedication, error) {
	body, err := c.Post(ctx, dedicationsPath, toRemote(d), "submit dedication")
	if err != nil {
		return domain.Dedication{}, err
	}

	stored, err := DecodeResponseForService[remoteDedication](body, c.ServiceName())
	if err != nil {
		return domain.Dedication{}, err
	}

	return fromRemote(stored)
}

// DeleteAt implements ports.DedicationStore.
func (c *DedicationClient) DeleteAt(ctx context.Context, position int) error {
	ref := strconv.Itoa(position)
	if position < 0 {
		return domain.NewNotFoundError(domain.EntityDedication, ref)
	}

	return c.Delete(ctx, dedicationsPath+"/"+ref, "delete dedication", ref)
}

// DeleteByID implements ports.DedicationStore. by=id keeps numeric IDs from
// being read as positions.
func (c *DedicationClient) DeleteByID(ctx context.Context, id string) error {
	return c.Delete(ctx, dedicationsPath+"/"+url.PathEscape(id)+"?by=id", "delete dedication", id)
}

// Name implements ports.HealthChecker.
func (c *DedicationClient) Name() string {
	return "storage:remote"
}

// Check implements ports.HealthChecker.
func (c *DedicationClient) Check(ctx context.Context) error {
	body, err := c.Get(ctx, "/api/health", "health check", "")
	if err != nil {
		return err
	}

	return body.Close()
}
