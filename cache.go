package jsongen

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// StaticCache is the default "no network, local only" Cache: every URL
// must be pre-seeded, or Resolve fails UnresolvableRef.
type StaticCache struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewStaticCache builds a StaticCache pre-seeded with the given documents.
func NewStaticCache(docs map[string][]byte) *StaticCache {
	seeded := make(map[string][]byte, len(docs))
	for k, v := range docs {
		seeded[k] = v
	}
	return &StaticCache{docs: seeded}
}

// Put adds or replaces a cached document, for tests and incremental catalog
// construction.
func (c *StaticCache) Put(url string, doc []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[url] = doc
}

func (c *StaticCache) Resolve(url string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.docs[url]
	if !ok {
		return nil, newErr(UnresolvableRef, "", "no local document registered for %q", url)
	}
	return doc, nil
}

// HTTPCache fetches schema documents over HTTP(S), caching the raw bytes
// in an in-memory TTL cache (github.com/patrickmn/go-cache) so a catalog
// generating many instances against the same remote schema doesn't
// refetch it every time, in the style of leslieo2-go-spec-mock's response
// cache.
type HTTPCache struct {
	client *http.Client
	cache  *gocache.Cache
	log    *zap.Logger
}

// NewHTTPCache builds an HTTPCache with the given TTL for cached bytes.
func NewHTTPCache(ttl time.Duration, log *zap.Logger) *HTTPCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPCache{
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  gocache.New(ttl, ttl*2),
		log:    log,
	}
}

func (c *HTTPCache) Resolve(url string) ([]byte, error) {
	if cached, ok := c.cache.Get(url); ok {
		c.log.Debug("schema cache hit", zap.String("url", url))
		return cached.([]byte), nil
	}

	resp, err := c.client.Get(url)
	if err != nil {
		return nil, wrapErr(UnresolvableRef, "", err, "fetching %q", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newErr(UnresolvableRef, "", "fetching %q: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapErr(UnresolvableRef, "", err, "reading body of %q", url)
	}

	c.cache.SetDefault(url, body)
	c.log.Info("fetched schema", zap.String("url", url), zap.Int("bytes", len(body)))
	return body, nil
}

// DirCache serves schema documents from a local directory, keyed by
// "file://<dir>/<name>" URLs, and hot-reloads its in-memory copies when the
// underlying files change on disk (github.com/fsnotify/fsnotify), in the
// style of leslieo2-go-spec-mock's spec-file watcher.
type DirCache struct {
	dir     string
	mu      sync.RWMutex
	docs    map[string][]byte
	watcher *fsnotify.Watcher
	log     *zap.Logger
}

// NewDirCache loads every file in dir and starts watching it for changes.
// Call Close to stop watching.
func NewDirCache(dir string, log *zap.Logger) (*DirCache, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dc := &DirCache{dir: dir, docs: map[string][]byte{}, log: log}
	if err := dc.loadAll(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, wrapErr(ConfigError, "", err, "starting directory watcher for %q", dir)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, wrapErr(ConfigError, "", err, "watching directory %q", dir)
	}
	dc.watcher = watcher

	go dc.watch()
	return dc, nil
}

func (dc *DirCache) loadAll() error {
	entries, err := os.ReadDir(dc.dir)
	if err != nil {
		return wrapErr(ConfigError, "", err, "reading directory %q", dc.dir)
	}
	dc.mu.Lock()
	defer dc.mu.Unlock()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dc.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		dc.docs[dc.urlFor(entry.Name())] = data
	}
	return nil
}

func (dc *DirCache) urlFor(name string) string {
	return fmt.Sprintf("file://%s", filepath.Join(dc.dir, name))
}

func (dc *DirCache) watch() {
	for {
		select {
		case event, ok := <-dc.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			data, err := os.ReadFile(event.Name)
			if err != nil {
				continue
			}
			url := dc.urlFor(filepath.Base(event.Name))
			dc.mu.Lock()
			dc.docs[url] = data
			dc.mu.Unlock()
			dc.log.Info("reloaded schema file", zap.String("path", event.Name))
		case err, ok := <-dc.watcher.Errors:
			if !ok {
				return
			}
			dc.log.Warn("schema directory watch error", zap.Error(err))
		}
	}
}

func (dc *DirCache) Resolve(url string) ([]byte, error) {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	doc, ok := dc.docs[url]
	if !ok {
		return nil, newErr(UnresolvableRef, "", "no file cached for %q", url)
	}
	return doc, nil
}

// Close stops the directory watcher.
func (dc *DirCache) Close() error {
	if dc.watcher == nil {
		return nil
	}
	return dc.watcher.Close()
}
