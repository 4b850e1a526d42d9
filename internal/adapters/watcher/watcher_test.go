package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lazy/internal/adapters/watcher"
	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/lazy/internal/core/ports"
	"go.trai.ch/lazy/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newWatcher(t *testing.T) *watcher.Watcher {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func TestWatcher_ReportsModuleChanges(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "widgets")
	require.NoError(t, os.Mkdir(nested, 0o750))
	card := filepath.Join(nested, "card.json")
	require.NoError(t, os.WriteFile(card, []byte(`{}`), 0o600))

	w := newWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, root))

	events := make(chan ports.WatchEvent, 10)
	go func() {
		for ev := range w.Events() {
			events <- ev
		}
		close(events)
	}()

	require.NoError(t, os.WriteFile(filepath.Join(nested, "notes.txt"), []byte("ignored"), 0o600))
	require.NoError(t, os.WriteFile(card, []byte(`{"default": 1}`), 0o600))

	select {
	case ev := <-events:
		assert.Equal(t, card, ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for module change")
	}

	cancel()
	for range events {
	}
}

func TestWatcher_StartRejectsMissingRoot(t *testing.T) {
	w := newWatcher(t)

	err := w.Start(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.ErrorContains(t, err, domain.ErrWatcherStartFailed.Error())
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := newWatcher(t)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
