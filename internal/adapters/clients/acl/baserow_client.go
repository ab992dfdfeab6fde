package acl

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/clients"
	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

const (
	baserowPageSize = 200
	// baserowMaxPages bounds a listing at 20k rows.
	baserowMaxPages = 100
)

// BaserowClient stores dedications as rows of a Baserow table. It
// implements ports.DedicationStore and ports.HealthChecker.
//
// Rows are listed by descending row id, so store order is insert order,
// newest first. The table has no song title or artist columns; only the
// link survives a round trip.
type BaserowClient struct {
	BaseAdapter
	tableID int
	now     func() time.Time
}

// BaserowAuth returns a clients.Config AuthFunc that sends a database token.
func BaserowAuth(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Token "+token)
	}
}

// NewBaserowClient creates the adapter. The client's BaseURL is the Baserow
// root (https://api.baserow.io) and its AuthFunc should be BaserowAuth.
func NewBaserowClient(client *clients.Client, tableID int) *BaserowClient {
	return &BaserowClient{BaseAdapter: NewBaseAdapter(client), tableID: tableID, now: time.Now}
}

// baserowRow uses the table's user field names, spelling included.
type baserowRow struct {
	ID             int    `json:"id,omitempty"`
	SenderName     string `json:"Sendername"`
	SenderClass    string `json:"Senderclass"`
	RecipientName  string `json:"Receipientsname"`
	RecipientClass string `json:"Receipientclass"`
	Message        string `json:"Message"`
	Song           string `json:"Song"`
	CreatedOn      string `json:"created_on,omitempty"`
}

type baserowPage struct {
	Count   int          `json:"count"`
	Next    *string      `json:"next"`
	Results []baserowRow `json:"results"`
}

func (c *BaserowClient) rowsPath() string {
	return fmt.Sprintf("/api/database/rows/table/%d/", c.tableID)
}

func (c *BaserowClient) rowPath(rowID int) string {
	return fmt.Sprintf("/api/database/rows/table/%d/%d/", c.tableID, rowID)
}

func translateRow(r *baserowRow) (domain.Dedication, error) {
	d := domain.Dedication{
		ID:             strconv.Itoa(r.ID),
		SenderName:     r.SenderName,
		SenderClass:    r.SenderClass,
		RecipientName:  r.RecipientName,
		RecipientClass: r.RecipientClass,
		Message:        r.Message,
		SpotifyURL:     r.Song,
	}

	if r.CreatedOn != "" {
		ts, err := time.Parse(time.RFC3339Nano, r.CreatedOn)
		if err != nil {
			return domain.Dedication{}, fmt.Errorf("row %d: parsing created_on %q: %w", r.ID, r.CreatedOn, err)
		}

		d.Timestamp = ts
	}

	return d, nil
}

// List implements ports.DedicationStore. Every page is read.
func (c *BaserowClient) List(ctx context.Context) ([]domain.Dedication, error) {
	var rows []baserowRow

	for page := 1; page <= baserowMaxPages; page++ {
		path := fmt.Sprintf("%s?user_field_names=true&order_by=-id&size=%d&page=%d",
			c.rowsPath(), baserowPageSize, page)

		body, err := c.Get(ctx, path, "list dedications", "")
		if err != nil {
			return nil, err
		}

		result, err := DecodeResponseForService[baserowPage](body, c.ServiceName())
		if err != nil {
			return nil, err
		}

		rows = append(rows, result.Results...)

		if result.Next == nil || len(result.Results) == 0 {
			break
		}
	}

	list, err := TranslateSlice[baserowRow, domain.Dedication](rows, translateRow)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.NewUnavailableError(c.ServiceName(), "malformed row"), err)
	}

	return list, nil
}

// Insert implements ports.DedicationStore. Baserow assigns the row id; the
// timestamp comes from created_on when the table exposes it.
func (c *BaserowClient) Insert(ctx context.Context, d domain.Dedication) (domain.Dedication, error) {
	row := baserowRow{
		SenderName:     d.SenderName,
		SenderClass:    d.SenderClass,
		RecipientName:  d.RecipientName,
		RecipientClass: d.RecipientClass,
		Message:        d.Message,
		Song:           d.SpotifyURL,
	}

	body, err := c.Post(ctx, c.rowsPath()+"?user_field_names=true", row, "submit dedication")
	if err != nil {
		return domain.Dedication{}, err
	}

	created, err := DecodeResponseForService[baserowRow](body, c.ServiceName())
	if err != nil {
		return domain.Dedication{}, err
	}

	stored := d
	stored.ID = strconv.Itoa(created.ID)

	if created.CreatedOn != "" {
		if ts, parseErr := time.Parse(time.RFC3339Nano, created.CreatedOn); parseErr == nil {
			stored.Timestamp = ts
		}
	}

	if stored.Timestamp.IsZero() {
		stored.Timestamp = c.now().UTC()
	}

	return stored, nil
}

// DeleteAt implements ports.DedicationStore.
func (c *BaserowClient) DeleteAt(ctx context.Context, position int) error {
	list, err := c.List(ctx)
	if err != nil {
		return err
	}

	if position < 0 || position >= len(list) {
		return domain.NewNotFoundError(domain.EntityDedication, strconv.Itoa(position))
	}

	return c.DeleteByID(ctx, list[position].ID)
}

// DeleteByID implements ports.DedicationStore. IDs are Baserow row ids.
func (c *BaserowClient) DeleteByID(ctx context.Context, id string) error {
	rowID, err := strconv.Atoi(id)
	if err != nil || rowID <= 0 {
		return domain.NewNotFoundError(domain.EntityDedication, id)
	}

	return c.Delete(ctx, c.rowPath(rowID), "delete dedication", id)
}

// Name implements ports.HealthChecker.
func (c *BaserowClient) Name() string {
	return "storage:baserow"
}

// Check implements ports.HealthChecker by reading one row.
func (c *BaserowClient) Check(ctx context.Context) error {
	body, err := c.Get(ctx, c.rowsPath()+"?user_field_names=true&size=1", "health check", "")
	if err != nil {
		return err
	}

	return body.Close()
}
