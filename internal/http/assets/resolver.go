// Package assets maps logical static asset names to their fingerprinted paths.
package assets

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sync"
)

// StaticPrefix is the URL prefix static files are served under.
const StaticPrefix = "/static/"

// AssetResolver resolves logical asset names using a manifest.json produced by the asset build.
type AssetResolver struct {
	mu           sync.RWMutex
	manifest     map[string]string
	fsys         fs.FS
	manifestPath string
	logger       *slog.Logger
}

// NewAssetResolverFromFS reads manifestPath from fsys. A missing manifest is not an error.
func NewAssetResolverFromFS(fsys fs.FS, manifestPath string) (*AssetResolver, error) {
	r := &AssetResolver{fsys: fsys, manifestPath: manifestPath, logger: slog.Default()}
	return r, r.Reload()
}

// NewAssetResolverFromDisk reads the manifest from the local filesystem.
func NewAssetResolverFromDisk(manifestPath string) (*AssetResolver, error) {
	return NewAssetResolverFromFS(os.DirFS(path.Dir(manifestPath)), path.Base(manifestPath))
}

// SetLogger updates the resolver's logger. If logger is nil, slog.Default() is used.
func (ar *AssetResolver) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	ar.mu.Lock()
	ar.logger = logger
	ar.mu.Unlock()
}

// Reload re-reads the manifest.
func (ar *AssetResolver) Reload() error {
	if ar.fsys == nil {
		return nil
	}
	manifest := map[string]string{}
	data, err := fs.ReadFile(ar.fsys, ar.manifestPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	case len(data) > 0:
		if err := json.Unmarshal(data, &manifest); err != nil {
			return err
		}
	}
	ar.mu.Lock()
	ar.manifest = manifest
	ar.mu.Unlock()
	return nil
}

// Resolve returns the served path for logicalName, falling back to the logical name.
func (ar *AssetResolver) Resolve(logicalName string) string {
	ar.mu.RLock()
	defer ar.mu.RUnlock()
	if hashed, ok := ar.manifest[logicalName]; ok {
		return StaticPrefix + hashed
	}
	return StaticPrefix + logicalName
}

// ResolveAsset resolves logicalName with resolver, reloading the manifest first in dev mode.
func ResolveAsset(resolver *AssetResolver, logicalName string, devMode bool) string {
	if resolver == nil {
		return StaticPrefix + logicalName
	}
	if devMode {
		if err := resolver.Reload(); err != nil {
			resolver.mu.RLock()
			logger := resolver.logger
			resolver.mu.RUnlock()
			logger.Error("failed to reload asset manifest",
				slog.String("manifest", resolver.manifestPath),
				slog.Any("error", err),
			)
		}
	}
	return resolver.Resolve(logicalName)
}
