// Package importer bulk-creates clients and cases from JSON files dropped
// into a directory. Each file is a single object with optional "clients"
// and "cases" arrays; records are created through the REST backend one by
// one, so every record either exists server-side or is reported as failed.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/recoverydesk/recovery-console/internal/api"
	"github.com/recoverydesk/recovery-console/internal/model"
)

// Options controls import behavior.
type Options struct {
	Dir      string
	Watch    bool
	Patterns []string // e.g. []string{"*.json"}
	Logger   *log.Logger

	// settleDelay gives writers a moment to finish after a change event
	// before the file is read. Overridden in tests.
	settleDelay time.Duration
}

// payload is the drop-file schema.
type payload struct {
	Clients []model.ClientCreate `json:"clients"`
	Cases   []model.CaseCreate   `json:"cases"`
}

// Importer scans a directory (one-shot or watch mode) and posts its
// contents to the backend.
type Importer struct {
	api  *api.Client
	opts Options

	mu        sync.Mutex
	processed map[string]bool
	created   int
	failed    int
}

// New constructs a folder importer.
func New(apiClient *api.Client, opts Options) *Importer {
	if opts.Logger == nil {
		opts.Logger = log.New(log.Writer(), "[import] ", log.LstdFlags)
	}
	if len(opts.Patterns) == 0 {
		opts.Patterns = []string{"*.json"}
	}
	if opts.settleDelay == 0 {
		opts.settleDelay = 250 * time.Millisecond
	}
	return &Importer{
		api:       apiClient,
		opts:      opts,
		processed: make(map[string]bool),
	}
}

// Stats returns the running created/failed record counts.
func (im *Importer) Stats() (created, failed int) {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.created, im.failed
}

// Run executes the import per options. In watch mode it blocks until the
// context is cancelled.
func (im *Importer) Run(ctx context.Context) error {
	if err := im.scanOnce(ctx); err != nil {
		return err
	}
	if !im.opts.Watch {
		created, failed := im.Stats()
		im.opts.Logger.Printf("import finished: %d created, %d failed", created, failed)
		return nil
	}
	return im.watch(ctx)
}

// scanOnce imports every matching file currently in the directory.
func (im *Importer) scanOnce(ctx context.Context) error {
	entries, err := os.ReadDir(im.opts.Dir)
	if err != nil {
		return fmt.Errorf("read import dir %s: %w", im.opts.Dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !im.matches(name) {
			continue
		}
		path := filepath.Join(im.opts.Dir, name)
		if err := im.importFile(ctx, path); err != nil {
			im.opts.Logger.Printf("import %s: %v", name, err)
		}
	}
	return nil
}

func (im *Importer) matches(name string) bool {
	for _, pat := range im.opts.Patterns {
		if ok, _ := filepath.Match(pat, name); ok {
			return true
		}
	}
	return false
}

// watch blocks on fsnotify events, importing files as they appear.
func (im *Importer) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(im.opts.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", im.opts.Dir, err)
	}
	im.opts.Logger.Printf("watching %s for drop files", im.opts.Dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !im.matches(filepath.Base(event.Name)) {
				continue
			}
			// Give the writer a moment to finish before reading.
			time.Sleep(im.opts.settleDelay)
			if err := im.importFile(ctx, event.Name); err != nil {
				im.opts.Logger.Printf("import %s: %v", filepath.Base(event.Name), err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			im.opts.Logger.Printf("watch error: %v", err)
		}
	}
}

// importFile parses a drop file and posts its records. A file is processed
// at most once per run even if the watcher reports it multiple times.
func (im *Importer) importFile(ctx context.Context, path string) error {
	im.mu.Lock()
	if im.processed[path] {
		im.mu.Unlock()
		return nil
	}
	im.processed[path] = true
	im.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	name := filepath.Base(path)
	var created, failed int

	for _, c := range p.Clients {
		if _, err := im.api.CreateClient(ctx, c); err != nil {
			failed++
			im.opts.Logger.Printf("%s: client %q: %s", name, c.ClientName, api.ErrorMessage(err, "create failed"))
			continue
		}
		created++
	}
	for _, c := range p.Cases {
		if _, err := im.api.CreateCase(ctx, c); err != nil {
			failed++
			im.opts.Logger.Printf("%s: case %q: %s", name, c.InvoiceNumber, api.ErrorMessage(err, "create failed"))
			continue
		}
		created++
	}

	im.mu.Lock()
	im.created += created
	im.failed += failed
	im.mu.Unlock()

	im.opts.Logger.Printf("%s: %d created, %d failed", name, created, failed)
	return nil
}
