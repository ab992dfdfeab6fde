//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/storage"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/storage/blob"
	"github.com/jsamuelsen/dedication-wall/internal/domain"
	"github.com/jsamuelsen/dedication-wall/internal/platform/config"
)

func localBackends(t *testing.T) map[string]config.StorageConfig {
	t.Helper()

	dir := t.TempDir()

	return map[string]config.StorageConfig{
		config.BackendMemory: {Backend: config.BackendMemory},
		config.BackendFile:   {Backend: config.BackendFile, File: config.FileStorageConfig{Path: filepath.Join(dir, "wall.json")}},
		config.BackendSQLite: {Backend: config.BackendSQLite, SQLite: config.SQLiteStorageConfig{Path: filepath.Join(dir, "wall.db")}},
		config.BackendBadger: {Backend: config.BackendBadger, Badger: config.BadgerStorageConfig{Key: "dedications"}},
	}
}

func openBackend(t *testing.T, cfg config.StorageConfig) *storage.Backend {
	t.Helper()

	backend, err := storage.Open(context.Background(), cfg, testSharedClientConfig(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	return backend
}

func postDedication(client *http.Client, baseURL string, i int) error {
	body, err := json.Marshal(map[string]string{
		"senderName":     fmt.Sprintf("sender-%d", i),
		"senderClass":    "12A",
		"recipientName":  "everyone",
		"recipientClass": "12B",
		"message":        fmt.Sprintf("message number %d", i),
	})
	if err != nil {
		return err
	}

	resp, err := client.Post(baseURL+"/api/dedications", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("submission %d: status %d", i, resp.StatusCode)
	}

	return nil
}

func listDedications(t *testing.T, baseURL string) []domain.Dedication {
	t.Helper()

	resp, err := http.Get(baseURL + "/api/dedications")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []domain.Dedication
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))

	return list
}

// TestConcurrent_Submissions verifies no submission is lost when many
// arrive at once, for every local backend.
func TestConcurrent_Submissions(t *testing.T) {
	const submissions = 20

	for name, cfg := range localBackends(t) {
		t.Run(name, func(t *testing.T) {
			w := startWall(wallOptions{store: openBackend(t, cfg), backend: name})
			defer w.Close()

			var g errgroup.Group

			for i := range submissions {
				g.Go(func() error {
					return postDedication(http.DefaultClient, w.URL(), i)
				})
			}

			require.NoError(t, g.Wait())

			list := listDedications(t, w.URL())
			require.Len(t, list, submissions)

			ids := make(map[string]struct{}, len(list))
			for _, d := range list {
				ids[d.ID] = struct{}{}
			}

			assert.Len(t, ids, submissions, "every record has its own ID")
		})
	}
}

// TestConcurrent_DeleteHead verifies concurrent deletes of position 0 each
// remove exactly one card.
func TestConcurrent_DeleteHead(t *testing.T) {
	const total = 10

	for name, cfg := range localBackends(t) {
		t.Run(name, func(t *testing.T) {
			w := startWall(wallOptions{store: openBackend(t, cfg), backend: name})
			defer w.Close()

			for i := range total {
				require.NoError(t, postDedication(http.DefaultClient, w.URL(), i))
			}

			var (
				wg     sync.WaitGroup
				mu     sync.Mutex
				status = map[int]int{}
			)

			for range total + 2 {
				wg.Add(1)

				go func() {
					defer wg.Done()

					req, err := http.NewRequest(http.MethodDelete, w.URL()+"/api/dedications/0", nil)
					if !assert.NoError(t, err) {
						return
					}

					resp, err := http.DefaultClient.Do(req)
					if !assert.NoError(t, err) {
						return
					}

					resp.Body.Close()

					mu.Lock()
					status[resp.StatusCode]++
					mu.Unlock()
				}()
			}

			wg.Wait()

			assert.Equal(t, total, status[http.StatusOK])
			assert.Equal(t, 2, status[http.StatusNotFound])
			assert.Empty(t, listDedications(t, w.URL()))
		})
	}
}

// TestConcurrent_SharedFile verifies two stores on one file, standing in
// for two processes, never overwrite each other.
func TestConcurrent_SharedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.json")

	newStore := func() *blob.Store {
		slot, err := blob.NewFileSlot(path)
		require.NoError(t, err)

		store := blob.New(slot, blob.WithLogger(discardLogger()))
		t.Cleanup(func() { _ = store.Close() })

		return store
	}

	stores := []*blob.Store{newStore(), newStore()}

	const perStore = 15

	g, ctx := errgroup.WithContext(context.Background())

	for s, store := range stores {
		for i := range perStore {
			g.Go(func() error {
				_, err := store.Insert(ctx, domain.Dedication{
					SenderName: fmt.Sprintf("store-%d", s),
					Message:    fmt.Sprintf("message %d", i),
				})

				return err
			})
		}
	}

	require.NoError(t, g.Wait())

	list, err := stores[0].List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2*perStore)
}

// TestConcurrent_ReadsDuringWrites verifies readers always see a complete
// list while writers append.
func TestConcurrent_ReadsDuringWrites(t *testing.T) {
	cfg := localBackends(t)[config.BackendFile]
	w := startWall(wallOptions{store: openBackend(t, cfg), backend: config.BackendFile})
	defer w.Close()

	const writes = 10

	var g errgroup.Group

	for i := range writes {
		g.Go(func() error {
			return postDedication(http.DefaultClient, w.URL(), i)
		})

		g.Go(func() error {
			resp, err := http.Get(w.URL() + "/api/dedications")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			var list []domain.Dedication
			if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
				return fmt.Errorf("decoding list: %w", err)
			}

			if list == nil {
				return fmt.Errorf("list is null")
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Len(t, listDedications(t, w.URL()), writes)
}
