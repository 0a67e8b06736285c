package monsoon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileProvider serves scenario metrics from a JSON file keyed by year
// ("2019", "2022", ...). It can optionally watch the file and hot-reload it
// on change, debounced so editors that write in bursts trigger one reload.
type FileProvider struct {
	path   string
	logger *slog.Logger

	mu   sync.RWMutex
	data map[int]*Metrics

	watcher   *fsnotify.Watcher
	debounce  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
	watchOnce sync.Once
	stopOnce  sync.Once
}

// FileProviderConfig configures a FileProvider.
type FileProviderConfig struct {
	// Path is the scenario JSON file.
	Path string

	// DebounceInterval is the quiet period before a reload after file
	// change events. Default 100ms.
	DebounceInterval time.Duration
}

// NewFileProvider loads the scenario file. The initial load must succeed;
// later reload failures keep the previous data.
func NewFileProvider(cfg FileProviderConfig, logger *slog.Logger) (*FileProvider, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("scenario path cannot be empty")
	}
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = 100 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &FileProvider{
		path:     cfg.Path,
		logger:   logger,
		debounce: cfg.DebounceInterval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	if err := p.reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Name implements Provider.
func (p *FileProvider) Name() string { return "scenario_file" }

// Scan implements Provider.
func (p *FileProvider) Scan(_ context.Context, year int) (*Metrics, error) {
	p.mu.RLock()
	m, ok := p.data[year]
	p.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrYearUnavailable, year)
	}
	cp := *m
	cp.Regional = append([]RegionalRainfall(nil), m.Regional...)
	return &cp, nil
}

// HealthCheck implements Provider. The provider is healthy while it holds
// at least one scenario year.
func (p *FileProvider) HealthCheck(_ context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.data) == 0 {
		return fmt.Errorf("no scenario years loaded from %s", p.path)
	}
	return nil
}

// Years returns the loaded scenario years in unspecified order.
func (p *FileProvider) Years() []int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	years := make([]int, 0, len(p.data))
	for y := range p.data {
		years = append(years, y)
	}
	return years
}

// Snapshot returns a copy of every loaded metrics packet, used to seed the
// historical archive at startup.
func (p *FileProvider) Snapshot() []*Metrics {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*Metrics, 0, len(p.data))
	for _, m := range p.data {
		cp := *m
		cp.Regional = append([]RegionalRainfall(nil), m.Regional...)
		out = append(out, &cp)
	}
	return out
}

// reload reads and parses the scenario file, replacing the data map
// wholesale on success.
func (p *FileProvider) reload() error {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("failed to read scenario file: %w", err)
	}

	var byYear map[string]*Metrics
	if err := json.Unmarshal(raw, &byYear); err != nil {
		return fmt.Errorf("failed to parse scenario file %s: %w", p.path, err)
	}

	data := make(map[int]*Metrics, len(byYear))
	for key, m := range byYear {
		year, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("invalid year key %q in %s", key, p.path)
		}
		if m == nil {
			return fmt.Errorf("empty packet for year %q in %s", key, p.path)
		}
		if m.Year == 0 {
			m.Year = year
		}
		data[year] = m
	}

	p.mu.Lock()
	p.data = data
	p.mu.Unlock()

	p.logger.Info("monsoon scenario data loaded",
		"path", p.path,
		"years", len(data),
	)
	return nil
}

// Watch starts watching the scenario file for changes. It returns
// immediately; reloads run on a background goroutine until Stop is called.
func (p *FileProvider) Watch() error {
	var err error
	p.watchOnce.Do(func() {
		var w *fsnotify.Watcher
		w, err = fsnotify.NewWatcher()
		if err != nil {
			err = fmt.Errorf("failed to create fsnotify watcher: %w", err)
			return
		}
		// Watch the directory so replace-by-rename saves are observed.
		if addErr := w.Add(filepath.Dir(p.path)); addErr != nil {
			w.Close()
			err = fmt.Errorf("failed to watch %s: %w", p.path, addErr)
			return
		}
		p.watcher = w
		go p.watchLoop()
	})
	return err
}

func (p *FileProvider) watchLoop() {
	defer close(p.doneCh)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	base := filepath.Base(p.path)
	for {
		select {
		case <-p.stopCh:
			return

		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(p.debounce, func() {
				if err := p.reload(); err != nil {
					p.logger.Error("monsoon scenario reload failed, keeping previous data",
						"path", p.path,
						"error", err,
					)
				}
			})

		case watchErr, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("monsoon scenario watcher error", "error", watchErr)
		}
	}
}

// Stop stops the watcher, if one was started. It is idempotent.
func (p *FileProvider) Stop() {
	p.stopOnce.Do(func() {
		if p.watcher == nil {
			close(p.doneCh)
			return
		}
		close(p.stopCh)
		<-p.doneCh
		p.watcher.Close()
	})
}
