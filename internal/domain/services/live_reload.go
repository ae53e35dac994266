package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/deckfold/deckfold/internal/domain/ports"
)

// LiveReloadService coordinates file watching with WebSocket notifications
type LiveReloadService struct {
	watcher          ports.FileWatcher
	notifier         ports.ClientNotifier
	presenter        ports.PresentationService
	logger           *slog.Logger
	mu               sync.Mutex
	watching         bool
	watchCancel      context.CancelFunc
	presentationPath string
}

// NewLiveReloadService creates a new live reload service
func NewLiveReloadService(
	watcher ports.FileWatcher,
	notifier ports.ClientNotifier,
	presenter ports.PresentationService,
	logger *slog.Logger,
) *LiveReloadService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LiveReloadService{
		watcher:   watcher,
		notifier:  notifier,
		presenter: presenter,
		logger:    logger.With("service", "live_reload"),
	}
}

// Start starts watching the presentation file for changes
func (s *LiveReloadService) Start(ctx context.Context, filePath string) error {
	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return errors.New("already watching")
	}
	s.watching = true
	s.presentationPath = filePath
	s.mu.Unlock()

	watchCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.watchCancel = cancel
	s.mu.Unlock()

	events, err := s.watcher.Watch(watchCtx, filePath)
	if err != nil {
		s.mu.Lock()
		s.watching = false
		s.watchCancel = nil
		s.mu.Unlock()
		cancel()
		return fmt.Errorf("starting watcher: %w", err)
	}

	go s.handleEvents(watchCtx, events)

	return nil
}

// Stop stops the live reload service
func (s *LiveReloadService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.watching {
		return nil
	}

	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}

	s.watching = false
	return nil
}

// IsWatching returns whether the service is currently watching
func (s *LiveReloadService) IsWatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watching
}

// handleEvents reloads the presentation and notifies clients on each change
func (s *LiveReloadService) handleEvents(ctx context.Context, events <-chan ports.FileChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}

			s.logger.Info("file change detected",
				slog.String("path", event.Path),
				slog.String("type", event.Type.String()),
			)

			if err := s.reloadPresentation(ctx); err != nil {
				s.logger.Error("failed to reload presentation",
					slog.String("error", err.Error()),
					slog.String("path", event.Path),
				)
				continue
			}

			updateEvent := ports.UpdateEvent{
				Type:      ports.EventTypeReload,
				Timestamp: event.Timestamp,
				Data: map[string]interface{}{
					"file": event.Path,
					"type": event.Type.String(),
				},
			}

			if err := s.notifier.NotifyClients(updateEvent); err != nil {
				s.logger.Warn("failed to notify clients",
					slog.String("error", err.Error()),
					slog.String("file", event.Path),
				)
			}
		}
	}
}

// reloadPresentation re-reads and re-segments the watched file
func (s *LiveReloadService) reloadPresentation(ctx context.Context) error {
	s.mu.Lock()
	path := s.presentationPath
	s.mu.Unlock()

	if path == "" {
		return errors.New("no presentation path set")
	}

	presentation, err := s.presenter.LoadPresentation(ctx, path)
	if err != nil {
		return fmt.Errorf("loading presentation: %w", err)
	}

	s.logger.Info("presentation reloaded",
		slog.Int("slides", presentation.SlideCount()),
		slog.String("path", path),
	)

	return nil
}
