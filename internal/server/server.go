package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// FeedSource renders the current birthday feed.
type FeedSource func(ctx context.Context) ([]byte, error)

// snapshot is a rendered feed plus its HTTP cache validators.
type snapshot struct {
	data         []byte
	etag         string
	lastModified string // RFC1123, as HTTP headers require
}

// FeedServer serves the latest rendered iCalendar feed. Readers never block:
// the feed is swapped as a whole through an atomic pointer.
type FeedServer struct {
	feed atomic.Pointer[snapshot]

	Port            string
	Source          FeedSource
	RefreshInterval time.Duration
}

// NewFeedServer creates a server that re-renders source every interval.
// A zero interval renders once at startup only.
func NewFeedServer(port string, source FeedSource, interval time.Duration) *FeedServer {
	return &FeedServer{
		Port:            port,
		Source:          source,
		RefreshInterval: interval,
	}
}

// Start listens on localhost, keeps the feed fresh and blocks until ctx is
// cancelled or the listener fails.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleFeedRequest)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
			config.LogKeyInterval, s.RefreshInterval.String(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	go s.refreshLoop(ctx)

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Refresh renders the feed once and publishes it. On failure the previous
// feed stays in place.
func (s *FeedServer) Refresh(ctx context.Context) error {
	if s.Source == nil {
		return nil
	}
	data, err := s.Source(ctx)
	if err != nil {
		slog.Warn(config.MsgFeedRefresh,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
		return err
	}
	s.Update(data)
	return nil
}

func (s *FeedServer) refreshLoop(ctx context.Context) {
	_ = s.Refresh(ctx)
	if s.RefreshInterval <= 0 {
		return
	}

	ticker := time.NewTicker(s.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Refresh(ctx)
		}
	}
}

// Update atomically replaces the served feed.
func (s *FeedServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	// Keep Last-Modified when the content did not change, so conditional
	// requests keep hitting 304 across refreshes.
	lastMod := time.Now().UTC().Format(http.TimeFormat)
	if prev := s.feed.Load(); prev != nil && prev.etag == etag {
		lastMod = prev.lastModified
	}

	s.feed.Store(&snapshot{data: data, etag: etag, lastModified: lastMod})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleFeedRequest serves the feed with ETag and Last-Modified validators.
func (s *FeedServer) handleFeedRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	item := s.feed.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeTextCalendar)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, item.etag)
	h.Set(config.HeaderLastModified, item.lastModified)

	if notModified(r, item) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

func notModified(r *http.Request, item *snapshot) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == item.etag
	}
	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, item.lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}
