package preferences

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"noto/internal/noto/ports/storage"
	"noto/pkg/logger"
)

const (
	fileFormatVersion = 1
	filePerm          = 0o600
	reloadDebounce    = 50 * time.Millisecond
)

const (
	LogFileStoreOpened   = "file preference store opened"
	LogFileStoreReloaded = "preferences reloaded from disk"
	LogFileWatchError    = "preferences file watcher error"
	LogFileReloadFailed  = "failed to reload preferences file"

	ErrReadFile   = "failed to read preferences file"
	ErrParseFile  = "failed to parse preferences file"
	ErrWriteFile  = "failed to write preferences file"
	ErrCreateDir  = "failed to create preferences directory"
	ErrWatchFile  = "failed to watch preferences file"
	ErrEncodeFile = "failed to encode preferences"
)

type fileDocument struct {
	Version  int               `yaml:"version"`
	Settings map[string]string `yaml:"settings"`
}

// FileStore хранит настройки в YAML-файле.
// Запись атомарная, внешние изменения файла подхватываются через fsnotify.
type FileStore struct {
	*base
	path    string
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewFileStore читает файл (отсутствующий файл означает пустые настройки)
// и, если watch включен, следит за его изменениями.
func NewFileStore(ctx context.Context, path string, watch bool) (*FileStore, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateDir, err)
	}

	initial, err := readFile(path)
	if err != nil {
		return nil, err
	}

	s := &FileStore{base: newBase(initial), path: path}

	if watch {
		if err := s.startWatch(ctx); err != nil {
			return nil, err
		}
	}

	logger.Log(ctx).Info(ctx, LogFileStoreOpened,
		zap.String("path", path),
		zap.Int("keys", initial.Len()),
		zap.Bool("watch", watch))
	return s, nil
}

func readFile(path string) (storage.Preferences, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return storage.NewPreferences(nil), nil
	}
	if err != nil {
		return storage.Preferences{}, fmt.Errorf("%s: %w", ErrReadFile, err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return storage.Preferences{}, fmt.Errorf("%s: %w", ErrParseFile, err)
	}
	return storage.NewPreferences(doc.Settings), nil
}

func (s *FileStore) Edit(ctx context.Context, fn func(*storage.MutablePreferences)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.editMu.Lock()
	defer s.editMu.Unlock()

	m := storage.NewMutablePreferences(s.state.Value())
	fn(m)
	next := m.Snapshot()

	data, err := yaml.Marshal(fileDocument{Version: fileFormatVersion, Settings: next.AsMap()})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrEncodeFile, err)
	}
	if err := writeFileAtomic(s.path, data, filePerm); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}

	s.publish(next)
	return nil
}

func (s *FileStore) startWatch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrWatchFile, err)
	}
	// Следим за каталогом: атомарная запись заменяет файл через rename.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("%s: %w", ErrWatchFile, err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.watcher = watcher
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.watchLoop(runCtx)
	}()
	return nil
}

func (s *FileStore) watchLoop(ctx context.Context) {
	log := logger.Log(ctx).With(zap.String("path", s.path))

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.path || (event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write)) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			timerC = timer.C
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Warn(ctx, LogFileWatchError, zap.Error(err))
		case <-timerC:
			timerC = nil
			if err := s.reload(ctx); err != nil {
				log.Warn(ctx, LogFileReloadFailed, zap.Error(err))
			}
		}
	}
}

// reload перечитывает файл и рассылает снимок, если содержимое изменилось.
func (s *FileStore) reload(ctx context.Context) error {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	next, err := readFile(s.path)
	if err != nil {
		return err
	}
	if s.publish(next) {
		logger.Log(ctx).Debug(ctx, LogFileStoreReloaded, zap.Int("keys", next.Len()))
	}
	return nil
}

// Path возвращает путь к файлу настроек.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Close() error {
	var err error
	if s.cancel != nil {
		s.cancel()
		err = s.watcher.Close()
		s.wg.Wait()
	}
	s.close()
	return err
}
