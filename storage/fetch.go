package storage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fetcher turns an image reference into something durable: remote
// URLs are downloaded once and handed to the Store, anything else is
// assumed to already be a local path and passes through unchanged
type Fetcher struct {
	HTTP  *http.Client
	Store Store
}

func NewFetcher(s Store) *Fetcher {
	return &Fetcher{
		HTTP:  http.DefaultClient,
		Store: s,
	}
}

func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func extFromContentType(ct string) string {
	switch {
	case strings.Contains(ct, "png"):
		return "png"
	case strings.Contains(ct, "webp"):
		return "webp"
	case strings.Contains(ct, "gif"):
		return "gif"
	default:
		return "jpg"
	}
}

func (f *Fetcher) Resolve(ctx context.Context, ref string) (string, error) {
	if !IsRemote(ref) {
		return ref, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	name := fmt.Sprintf("dream_%d.%s", time.Now().UnixMilli(), extFromContentType(ct))

	stored, err := f.Store.Save(ctx, name, resp.Body, ct)
	if err != nil {
		return "", err
	}

	zap.L().Debug("Stored dream image", zap.String("name", name), zap.String("source", ref))
	return stored, nil
}
