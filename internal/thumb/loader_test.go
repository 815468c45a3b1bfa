package thumb

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 5), G: uint8(y * 5), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestLoader_LoadScalesToFit(t *testing.T) {
	body := pngBytes(t, 40, 20)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	l := NewLoader(Options{MaxWorkers: 2, Width: 10, Height: 5})
	defer l.Close()

	thumb, err := l.Load(context.Background(), srv.URL+"/rex.png")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if thumb.Width != 10 {
		t.Fatalf("Width = %d, want 10", thumb.Width)
	}
	// 40x20 scales to 10x5 pixels, which is three half-block rows.
	if thumb.Height != 3 || len(thumb.Rows) != 3 {
		t.Fatalf("Height = %d rows = %d, want 3", thumb.Height, len(thumb.Rows))
	}
	for i, row := range thumb.Rows {
		if w := lipgloss.Width(row); w != 10 {
			t.Fatalf("row %d width = %d, want 10", i, w)
		}
	}
	if thumb.URL != srv.URL+"/rex.png" {
		t.Fatalf("URL = %q", thumb.URL)
	}
}

func TestLoader_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.png":
			http.NotFound(w, r)
		default:
			_, _ = w.Write([]byte("not an image"))
		}
	}))
	defer srv.Close()

	l := NewLoader(Options{})
	defer l.Close()

	if _, err := l.Load(context.Background(), "  "); !errors.Is(err, ErrNoImage) {
		t.Fatalf("empty url error = %v, want ErrNoImage", err)
	}
	if _, err := l.Load(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatal("expected error for 404")
	}
	if _, err := l.Load(context.Background(), srv.URL+"/garbage"); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := l.Load(context.Background(), "http://127.0.0.1:0/none.png"); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestLoader_BoundsConcurrency(t *testing.T) {
	body := pngBytes(t, 4, 4)
	var inFlight, peak int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	l := NewLoader(Options{MaxWorkers: 2})
	defer l.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Load(context.Background(), srv.URL+"/img.png"); err != nil {
				t.Errorf("Load returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&peak); got > 2 {
		t.Fatalf("peak concurrent downloads = %d, want <= 2", got)
	}
}

func TestLoader_CloseAbortsStalledDownload(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoader(Options{Context: ctx, MaxWorkers: 1})

	loadErr := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background(), srv.URL+"/slow.png")
		loadErr <- err
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("download never started")
	}

	cancel()
	closed := make(chan struct{})
	go func() {
		l.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked on a stalled download after cancel")
	}
	select {
	case err := <-loadErr:
		if err == nil {
			t.Fatal("expected Load to fail after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Load did not return after cancel")
	}
}

func TestNewLoader_DefaultClientHasTimeout(t *testing.T) {
	l := NewLoader(Options{})
	defer l.Close()
	if l.http.Timeout <= 0 {
		t.Fatalf("default client timeout = %v, want > 0", l.http.Timeout)
	}
}

func TestRender_OddHeight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	thumb := Render("x", img)
	if thumb.Height != 2 || thumb.Width != 3 {
		t.Fatalf("Render = %dx%d, want 3x2", thumb.Width, thumb.Height)
	}
	if thumb.Empty() {
		t.Fatal("thumbnail should not be empty")
	}
	if Render("x", image.NewRGBA(image.Rect(0, 0, 0, 0))).Empty() == false {
		t.Fatal("zero image should render empty")
	}
}
