package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/walkthedog/engine/assets/loaders"
	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/renderer/metadata"
)

type AssetInfo struct {
	Name       string
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

type cacheKey struct {
	name string
	typ  metadata.ResourceType
}

// AssetManager indexes the files under an assets directory and loads them
// on request. The index follows the directory through fsnotify so files
// added or rewritten while running are picked up and stale decoded
// resources are dropped.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader
	cache   map[cacheKey]*metadata.Resource

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	started  bool
	isClosed bool
}

var ErrClosed = errors.New("asset manager already closed")

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		cache:    make(map[cacheKey]*metadata.Resource),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = root

	// Register loaders
	am.registerLoader(metadata.ResourceTypeBinary, &loaders.BinaryLoader{})
	am.registerLoader(metadata.ResourceTypeJSON, &loaders.BinaryLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})

	if err := am.addRecursive(root); err != nil {
		return err
	}
	am.started = true
	go am.start()

	core.LogInfo("asset manager watching %q (%d assets)", root, am.Len())
	return nil
}

// Close stops watching the assets directory.
func (am *AssetManager) Close() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	started := am.started
	am.mutex.Unlock()

	if !started {
		return am.fsnotify.Close()
	}
	close(am.done)
	<-am.stopped
	return nil
}

// Len returns the number of indexed assets.
func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Lookup returns the index entry for name.
func (am *AssetManager) Lookup(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	a, ok := am.assets[filepath.ToSlash(filepath.Clean(name))]
	return a, ok
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return ErrClosed
	}
	return am.watchRecursive(name)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Cached returns the resource previously loaded for name as the given type,
// if its file has not changed since.
func (am *AssetManager) Cached(name string, resourceType metadata.ResourceType) (*metadata.Resource, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	r, ok := am.cache[cacheKey{filepath.ToSlash(filepath.Clean(name)), resourceType}]
	return r, ok
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType) (*metadata.Resource, error) {
	name = filepath.ToSlash(filepath.Clean(name))
	if r, ok := am.Cached(name, resourceType); ok {
		return r, nil
	}

	am.mutex.RLock()
	asset, exists := am.assets[name]
	loader, loaderExists := am.loaders[resourceType]
	am.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("asset not found: %s: %w", name, fs.ErrNotExist)
	}
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", resourceType)
	}

	r, err := loader.Load(name, asset.Path)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	asset.LastLoaded = time.Now()
	am.assets[name] = asset
	am.cache[cacheKey{name, resourceType}] = r
	am.mutex.Unlock()
	return r, nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch %q: %v", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			// Can't stat a deleted entry, so just pretend that it's a file and
			// try to remove it from the index and the watch list.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %v", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files found. A file created before its directory's watch
// is in place is still caught by the walk.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

func (am *AssetManager) name(path string) (string, bool) {
	rel, err := filepath.Rel(am.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	name, ok := am.name(path)
	if !ok {
		return
	}
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[name] = AssetInfo{
		Name: name,
		Path: path,
		Type: assetType,
	}
	am.evict(name)
	core.LogDebug("asset indexed: %s (%s)", name, assetType)
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	name, ok := am.name(path)
	if !ok {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, name)
	am.evict(name)
}

// evict drops cached resources for name. The caller holds the lock.
func (am *AssetManager) evict(name string) {
	for k, r := range am.cache {
		if k.name != name {
			continue
		}
		if l, ok := am.loaders[k.typ]; ok {
			if err := l.Unload(r); err != nil {
				core.LogWarn("failed to unload %q: %v", name, err)
			}
		}
		delete(am.cache, k)
	}
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp":
		return metadata.ResourceTypeImage
	case ".json":
		return metadata.ResourceTypeJSON
	case ".txt", ".toml", ".bin", ".atlas":
		return metadata.ResourceTypeBinary
	default:
		return metadata.ResourceTypeNone
	}
}
