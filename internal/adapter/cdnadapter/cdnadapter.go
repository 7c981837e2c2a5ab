package cdnadapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/jgivc/groupgallery/internal/config"
	"github.com/jgivc/groupgallery/internal/entity"
)

var (
	filenameRegexp  = regexp.MustCompile(`filename="([^"]+)"`)
	extensionRegexp = regexp.MustCompile(`\.([A-Za-z0-9]+)$`)
)

type cdnAdapter struct {
	client *http.Client
	cfg    *config.FetcherConfig
	log    *slog.Logger
}

func NewCDNAdapter(cfg *config.FetcherConfig, log *slog.Logger) *cdnAdapter {
	return NewCDNAdapterWithClient(&http.Client{Timeout: cfg.Timeout()}, cfg, log)
}

func NewCDNAdapterWithClient(client *http.Client, cfg *config.FetcherConfig, log *slog.Logger) *cdnAdapter {
	return &cdnAdapter{
		client: client,
		cfg:    cfg,
		log:    log.With(slog.String("item", "CDNAdapter")),
	}
}

// FetchAll resolves display metadata for every file of the group. The fan-out
// is bounded by cfg.Workers, so at most that many lookups are in flight at
// any instant. Per-file failures degrade to a placeholder entry and never
// abort the batch, the whole call is total. Entries come back in index order
// regardless of completion order.
func (a *cdnAdapter) FetchAll(ctx context.Context, desc *entity.GroupDescriptor) []*entity.FileEntry {
	in := make(chan int, desc.Count)
	out := make(chan *entity.FileEntry, desc.Count)

	for index := 0; index < desc.Count; index++ {
		in <- index
	}
	close(in)

	workers := a.cfg.Workers
	if workers > desc.Count {
		workers = desc.Count
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for n := 0; n < workers; n++ {
		go a.worker(ctx, n, desc, in, out, &wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	entries := make([]*entity.FileEntry, 0, desc.Count)
	for entry := range out {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Index < entries[j].Index
	})

	return entries
}

func (a *cdnAdapter) worker(ctx context.Context, n int, desc *entity.GroupDescriptor, in chan int, out chan *entity.FileEntry, wg *sync.WaitGroup) {
	defer wg.Done()

	log := a.log.With(slog.Int("worker_id", n))

	for index := range in {
		entry := a.fetchOne(ctx, desc, index, log)

		select {
		case <-ctx.Done():
			log.Info("Interrupted")

			return
		case out <- entry:
		}
	}
}

func (a *cdnAdapter) fetchOne(ctx context.Context, desc *entity.GroupDescriptor, index int, log *slog.Logger) *entity.FileEntry {
	entry := &entity.FileEntry{
		Index: index,
		URL:   desc.FileURL(index),
	}

	name, err := a.headFilename(ctx, entry.URL)
	if err != nil {
		log.Debug("Cannot get file metadata", slog.String("url", entry.URL), slog.Any("error", err))

		entry.Name = placeholderName(index)
		entry.Placeholder = true

		return entry
	}

	entry.Name = name
	entry.Ext = extractExt(name)

	return entry
}

func (a *cdnAdapter) headFilename(ctx context.Context, fileURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("cannot create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot head file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	m := filenameRegexp.FindStringSubmatch(resp.Header.Get("Content-Disposition"))
	if m == nil {
		return "", fmt.Errorf("no filename in disposition header")
	}

	return m[1], nil
}

func placeholderName(index int) string {
	return fmt.Sprintf("File %d", index+1)
}

func extractExt(name string) string {
	m := extensionRegexp.FindStringSubmatch(name)
	if m == nil {
		return ""
	}

	return strings.ToLower(m[1])
}
