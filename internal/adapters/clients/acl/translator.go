package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/clients"
	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

// BaseAdapter holds the client and service name shared by adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter creates a base adapter. It panics when client is nil.
func NewBaseAdapter(client *clients.Client) BaseAdapter {
	if client == nil {
		panic("acl: client is required")
	}

	return BaseAdapter{client: client, serviceName: client.ServiceName()}
}

// ServiceName returns the downstream name.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get performs a GET and returns the body of a 2xx response (caller closes).
// Any other outcome is a domain error.
func (a *BaseAdapter) Get(ctx context.Context, path, operation, entityRef string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path)

	return a.body(resp, err, operation, entityRef)
}

// Post performs a POST with v encoded as JSON.
func (a *BaseAdapter) Post(ctx context.Context, path string, v any, operation string) (io.ReadCloser, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", operation, err)
	}

	resp, err := a.client.Post(ctx, path, bytes.NewReader(payload))

	return a.body(resp, err, operation, "")
}

// Delete performs a DELETE and discards the body.
func (a *BaseAdapter) Delete(ctx context.Context, path, operation, entityRef string) error {
	resp, err := a.client.Delete(ctx, path)

	body, err := a.body(resp, err, operation, entityRef)
	if err != nil {
		return err
	}

	_, _ = io.Copy(io.Discard, body)

	return body.Close()
}

func (a *BaseAdapter) body(resp *http.Response, err error, operation, entityRef string) (io.ReadCloser, error) {
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation, entityRef)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.serviceName, operation, entityRef)
	}

	return resp.Body, nil
}

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// DecodeResponseForService is DecodeResponse with decode failures reported
// as the downstream being unavailable.
func DecodeResponseForService[T any](body io.ReadCloser, serviceName string) (*T, error) {
	result, err := DecodeResponse[T](body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.NewUnavailableError(serviceName, "malformed response"), err)
	}

	return result, nil
}

// Translator converts one external DTO into a domain value.
type Translator[External any, Domain any] func(ext *External) (Domain, error)

// TranslateSlice applies translate to every item, stopping at the first error.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}
