package thumb

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	// Decoders for the formats pet images are commonly served in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	defaultWorkers = 4
	defaultTimeout = 20 * time.Second
	defaultWidth   = 24
	defaultHeight  = 8
	maxImageBytes  = 10 << 20
)

// ErrNoImage is returned for an empty image URL.
var ErrNoImage = errors.New("no image url")

// Options configure a Loader.
type Options struct {
	// Context stops the worker pool and aborts running downloads when
	// cancelled.
	Context context.Context
	// HTTPClient defaults to a client with a 20 second timeout.
	HTTPClient *http.Client
	Logger     *zap.Logger
	MaxWorkers int
	// Width and Height bound the rendered thumbnail in terminal cells.
	Width  int
	Height int
}

// Loader downloads pet images on a bounded worker pool and renders them as
// terminal thumbnails.
type Loader struct {
	ctx    context.Context
	http   *http.Client
	pool   pond.Pool
	logger *zap.Logger
	width  uint
	height uint
}

// NewLoader builds a Loader with its own worker pool. Call Close to release it.
func NewLoader(opts Options) *Loader {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = defaultWorkers
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return &Loader{
		ctx:    ctx,
		http:   client,
		pool:   pond.NewPool(workers, pond.WithContext(ctx)),
		logger: logger,
		width:  uint(width),
		height: uint(height),
	}
}

// Load fetches url and renders it. It blocks until a worker has finished, so
// callers run it from a tea.Cmd.
func (l *Loader) Load(ctx context.Context, url string) (Thumbnail, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Thumbnail{}, ErrNoImage
	}

	var (
		thumb Thumbnail
		err   error
	)
	task := l.pool.Submit(func() {
		thumb, err = l.fetch(ctx, url)
	})
	if waitErr := task.Wait(); waitErr != nil {
		return Thumbnail{}, fmt.Errorf("load image %s: %w", url, waitErr)
	}
	if err != nil {
		l.logger.Debug("image load failed", zap.String("url", url), zap.Error(err))
		return Thumbnail{}, err
	}
	return thumb, nil
}

// Close stops accepting work and waits for running downloads. Cancel the
// loader's context first to abort downloads that are still in flight.
func (l *Loader) Close() {
	l.pool.StopAndWait()
}

func (l *Loader) fetch(ctx context.Context, url string) (Thumbnail, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(l.ctx, cancel)
	defer stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Thumbnail{}, fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := l.http.Do(req)
	if err != nil {
		return Thumbnail{}, fmt.Errorf("download image %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Thumbnail{}, fmt.Errorf("download image %s: status %s", url, resp.Status)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return Thumbnail{}, fmt.Errorf("decode image %s: %w", url, err)
	}
	return l.render(url, img), nil
}

// render scales img so each terminal cell holds two vertically stacked pixels.
func (l *Loader) render(url string, img image.Image) Thumbnail {
	scaled := resize.Thumbnail(l.width, l.height*2, img, resize.Lanczos3)
	return Render(url, scaled)
}
