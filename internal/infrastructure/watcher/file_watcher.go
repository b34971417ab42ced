package watcher

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/supportbrain/backend/internal/infrastructure/log"
)

// DefaultDebounceDelay editors write a file in several events; they are folded into one callback
const DefaultDebounceDelay = 500 * time.Millisecond

// FileWatcher calls onChange after a file settles
// The parent directory is watched so atomic rename-on-save is seen too.
type FileWatcher struct {
	path     string
	delay    time.Duration
	onChange func(path string)
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	debounceTimer *time.Timer
	debounceMu    sync.Mutex

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewFileWatcher creates a watcher for path; delay <= 0 uses DefaultDebounceDelay
func NewFileWatcher(path string, delay time.Duration, onChange func(path string)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return &FileWatcher{
		path:     absPath,
		delay:    delay,
		onChange: onChange,
		watcher:  watcher,
		logger:   log.NewModuleLogger("watcher", "file_watcher"),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching
func (fw *FileWatcher) Start() error {
	fw.logger.Info("Starting file watcher", "path", fw.path)

	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return err
	}

	fw.wg.Add(1)
	go fw.watchLoop()
	return nil
}

// Stop ends watching and cancels a pending callback
func (fw *FileWatcher) Stop() {
	fw.stopOnce.Do(func() {
		close(fw.stopCh)
		_ = fw.watcher.Close()
		fw.wg.Wait()

		fw.debounceMu.Lock()
		if fw.debounceTimer != nil {
			fw.debounceTimer.Stop()
		}
		fw.debounceMu.Unlock()

		fw.logger.Info("File watcher stopped", "path", fw.path)
	})
}

func (fw *FileWatcher) watchLoop() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.stopCh:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleFsEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("Watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) handleFsEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != fw.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.debounceTimer = time.AfterFunc(fw.delay, func() {
		select {
		case <-fw.stopCh:
			return
		default:
		}
		fw.logger.Debug("File changed", "path", fw.path, "op", event.Op.String())
		fw.onChange(fw.path)
	})
}
