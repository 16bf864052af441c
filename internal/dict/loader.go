package dict

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// fileDictionary is the on-disk shape shared by all supported formats.
type fileDictionary struct {
	Spellings map[string][]string `toml:"spellings" yaml:"spellings" json:"spellings"`
}

// Load reads a dictionary file, picking the format from the extension
// (.toml, .yaml/.yml, or .json). The decoded entries are schema-checked
// and validated before a Dictionary is built.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dict: read %s: %w", path, err)
	}

	var fd fileDictionary
	switch ext := filepath.Ext(path); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &fd); err != nil {
			return nil, fmt.Errorf("dict: decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fd); err != nil {
			return nil, fmt.Errorf("dict: decode YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &fd); err != nil {
			return nil, fmt.Errorf("dict: decode JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}

	if err := validateEntries(fd.Spellings); err != nil {
		return nil, err
	}
	return New(fd.Spellings)
}

// Loader loads a dictionary file and optionally watches it for changes,
// reloading and notifying listeners when the file is rewritten.
type Loader struct {
	path     string
	dict     *Dictionary
	mu       sync.RWMutex
	watcher  *fsnotify.Watcher
	onChange []func(*Dictionary)
	ctx      context.Context
	cancel   context.CancelFunc
	errChan  chan error
}

// NewLoader creates a loader for the dictionary file at path.
func NewLoader(path string) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		path:    path,
		errChan: make(chan error, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Load reads and parses the dictionary file.
func (l *Loader) Load() (*Dictionary, error) {
	d, err := Load(l.path)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.dict = d
	l.mu.Unlock()
	return d, nil
}

// Dictionary returns the most recently loaded dictionary.
func (l *Loader) Dictionary() *Dictionary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dict
}

// OnChange registers a callback invoked after a successful reload.
// Callbacks must be registered before Watch is called.
func (l *Loader) OnChange(cb func(*Dictionary)) {
	l.onChange = append(l.onChange, cb)
}

// Watch starts watching the dictionary file for changes.
func (l *Loader) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("dict: create watcher: %w", err)
	}
	l.watcher = watcher

	// Watch the directory so editors that replace the file are caught.
	dir := filepath.Dir(l.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("dict: watch directory: %w", err)
	}

	go l.watchLoop()
	return nil
}

func (l *Loader) watchLoop() {
	var debounceTimer *time.Timer
	debounceDelay := 100 * time.Millisecond

	for {
		select {
		case <-l.ctx.Done():
			return

		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(l.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				l.reload()
			})

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			select {
			case l.errChan <- err:
			default:
			}
		}
	}
}

func (l *Loader) reload() {
	d, err := Load(l.path)
	if err != nil {
		select {
		case l.errChan <- fmt.Errorf("dict: reload: %w", err):
		default:
		}
		return
	}

	l.mu.Lock()
	l.dict = d
	l.mu.Unlock()

	for _, cb := range l.onChange {
		cb(d)
	}
}

// Errors returns a channel for errors that occur while watching.
func (l *Loader) Errors() <-chan error {
	return l.errChan
}

// Close stops the watcher and releases resources.
func (l *Loader) Close() error {
	l.cancel()
	if l.watcher != nil {
		return l.watcher.Close()
	}
	return nil
}
