/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package datasources

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"sync"
)

// Source declares a named data source.
type Source struct {
	Name   string
	Type   string            // loader type, e.g. "csv"
	Config map[string]string // loader specific settings
}

// Manager handles loading and caching of data sources.
// Sources are registered eagerly; data is loaded lazily on demand.
type Manager struct {
	mu sync.RWMutex

	// Source metadata indexed by name
	sources map[string]*Source

	// Cached datasets indexed by source name - populated lazily
	datasets map[string]*Dataset

	// Registered loaders indexed by source type
	loaders map[string]Loader

	// File system for source files; nil reads the local file system
	fsys fs.FS

	// Base directory for resolving relative paths
	baseDir string
}

// NewManager creates a new data source manager with the CSV and JSON
// loaders registered.
func NewManager() *Manager {
	m := &Manager{
		sources:  make(map[string]*Source),
		datasets: make(map[string]*Dataset),
		loaders:  make(map[string]Loader),
	}
	m.RegisterLoader(NewCsvLoader())
	m.RegisterLoader(NewJSONLoader())
	return m
}

// RegisterLoader registers a data source loader for a specific source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader Loader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// SetFS makes loaders read source files from fsys.
func (m *Manager) SetFS(fsys fs.FS) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fsys = fsys
}

// SetBaseDir sets the base directory for resolving relative paths in config.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// AddSource registers a source, replacing any source of the same name and
// dropping its cached data.
func (m *Manager) AddSource(source *Source) error {
	if source == nil || source.Name == "" {
		return fmt.Errorf("source must have a name")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[source.Name] = source
	delete(m.datasets, source.Name)
	return nil
}

// GetSourceNames returns all registered source names in sorted order.
func (m *Manager) GetSourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetSource returns the source metadata for a given name.
// Returns nil if the source is not found.
func (m *Manager) GetSource(name string) *Source {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sources[name]
}

// IsLoaded reports whether the data of a source is cached.
func (m *Manager) IsLoaded(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.datasets[name]
	return ok
}

// LoadData loads data for a source by name.
// Returns cached data if already loaded; otherwise loads from the source.
func (m *Manager) LoadData(sourceName string) (*Dataset, error) {
	// Check cache first (with read lock)
	m.mu.RLock()
	if ds, ok := m.datasets[sourceName]; ok {
		m.mu.RUnlock()
		return ds, nil
	}
	source, ok := m.sources[sourceName]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("source %q not found", sourceName)
	}
	loader, hasLoader := m.loaders[source.Type]
	fsys, baseDir := m.fsys, m.baseDir
	m.mu.RUnlock()

	if !hasLoader {
		return nil, fmt.Errorf("no loader registered for source type %q", source.Type)
	}

	config := resolveConfigPaths(source.Config, baseDir, fsys != nil)
	ds, err := loader.Load(fsys, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load source %q: %w", sourceName, err)
	}
	slog.Debug("loaded data source", "source", sourceName, "type", source.Type, "records", len(ds.Records))

	m.mu.Lock()
	m.datasets[sourceName] = ds
	m.mu.Unlock()
	return ds, nil
}

// resolveConfigPaths resolves relative file paths in config against baseDir.
// Paths inside an fs.FS are always slash separated.
func resolveConfigPaths(config map[string]string, baseDir string, slashed bool) map[string]string {
	if baseDir == "" {
		return config
	}
	join, isAbs := filepath.Join, filepath.IsAbs
	if slashed {
		join, isAbs = path.Join, path.IsAbs
	}

	resolved := make(map[string]string, len(config))
	for k, v := range config {
		if k == "file_path" && v != "" && !isAbs(v) {
			resolved[k] = join(baseDir, v)
		} else {
			resolved[k] = v
		}
	}
	return resolved
}

// InvalidateCache removes a source from the cache, forcing reload on next access.
func (m *Manager) InvalidateCache(sourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.datasets, sourceName)
}

// InvalidateAllCaches removes all sources from the cache.
func (m *Manager) InvalidateAllCaches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets = make(map[string]*Dataset)
}
