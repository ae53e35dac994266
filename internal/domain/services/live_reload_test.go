package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckfold/deckfold/internal/domain/entities"
	"github.com/deckfold/deckfold/internal/domain/ports"
)

type fakeWatcher struct {
	events  chan ports.FileChangeEvent
	watched string
	err     error
}

func (w *fakeWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.watched = path
	return w.events, nil
}

func (w *fakeWatcher) Stop() error { return nil }

type fakeNotifier struct {
	mu     sync.Mutex
	events []ports.UpdateEvent
}

func (n *fakeNotifier) NotifyClients(event ports.UpdateEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *fakeNotifier) received() []ports.UpdateEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.UpdateEvent(nil), n.events...)
}

type fakePresenter struct {
	mu      sync.Mutex
	loads   int
	loadErr error
}

func (p *fakePresenter) LoadPresentation(ctx context.Context, path string) (*entities.Presentation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loads++
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return &entities.Presentation{Format: entities.FormatHeader}, nil
}

func (p *fakePresenter) ParsePresentation(ctx context.Context, content string, format entities.PresentationFormat) (*entities.Presentation, error) {
	return nil, nil
}

func (p *fakePresenter) UpdateSlide(ctx context.Context, index int, content string) (*entities.Presentation, error) {
	return nil, nil
}

func (p *fakePresenter) ExportMarkdown(ctx context.Context) (string, error) { return "", nil }

func (p *fakePresenter) CurrentPresentation() *entities.Presentation { return nil }

func (p *fakePresenter) RenderSlides(ctx context.Context, pr *entities.Presentation) ([]ports.RenderedSlide, error) {
	return nil, nil
}

func (p *fakePresenter) loadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loads
}

func TestLiveReloadService_StartStop(t *testing.T) {
	watcher := &fakeWatcher{events: make(chan ports.FileChangeEvent)}
	svc := NewLiveReloadService(watcher, &fakeNotifier{}, &fakePresenter{}, nil)

	require.NoError(t, svc.Start(context.Background(), "deck.md"))
	assert.True(t, svc.IsWatching())
	assert.Equal(t, "deck.md", watcher.watched)

	assert.ErrorContains(t, svc.Start(context.Background(), "deck.md"), "already watching")

	require.NoError(t, svc.Stop())
	assert.False(t, svc.IsWatching())

	// Stopping when stopped is a no-op.
	assert.NoError(t, svc.Stop())
}

func TestLiveReloadService_WatchFailure(t *testing.T) {
	watcher := &fakeWatcher{err: assert.AnError}
	svc := NewLiveReloadService(watcher, &fakeNotifier{}, &fakePresenter{}, nil)

	err := svc.Start(context.Background(), "deck.md")
	assert.ErrorContains(t, err, "starting watcher")
	assert.False(t, svc.IsWatching(), "failed start must leave the service stopped")

	// A failed start does not poison later attempts.
	watcher.err = nil
	watcher.events = make(chan ports.FileChangeEvent)
	require.NoError(t, svc.Start(context.Background(), "deck.md"))
	t.Cleanup(func() { _ = svc.Stop() })
}

func TestLiveReloadService_ReloadsAndNotifies(t *testing.T) {
	watcher := &fakeWatcher{events: make(chan ports.FileChangeEvent, 1)}
	notifier := &fakeNotifier{}
	presenter := &fakePresenter{}
	svc := NewLiveReloadService(watcher, notifier, presenter, nil)

	require.NoError(t, svc.Start(context.Background(), "deck.md"))
	t.Cleanup(func() { _ = svc.Stop() })

	watcher.events <- ports.FileChangeEvent{
		Path:      "deck.md",
		Type:      ports.Modified,
		Timestamp: time.Now(),
	}

	require.Eventually(t, func() bool {
		return len(notifier.received()) == 1
	}, time.Second, 10*time.Millisecond)

	event := notifier.received()[0]
	assert.Equal(t, ports.EventTypeReload, event.Type)
	assert.Equal(t, 1, presenter.loadCount())
}

func TestLiveReloadService_ReloadFailureSkipsNotification(t *testing.T) {
	watcher := &fakeWatcher{events: make(chan ports.FileChangeEvent, 1)}
	notifier := &fakeNotifier{}
	presenter := &fakePresenter{loadErr: assert.AnError}
	svc := NewLiveReloadService(watcher, notifier, presenter, nil)

	require.NoError(t, svc.Start(context.Background(), "deck.md"))
	t.Cleanup(func() { _ = svc.Stop() })

	watcher.events <- ports.FileChangeEvent{Path: "deck.md", Type: ports.Modified, Timestamp: time.Now()}

	require.Eventually(t, func() bool {
		return presenter.loadCount() == 1
	}, time.Second, 10*time.Millisecond)

	assert.Empty(t, notifier.received(), "clients must not be told to reload a broken file")
}
