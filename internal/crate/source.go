package crate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/osse101/LootCrates_Go/internal/logger"
)

// Source is one crate configuration document
type Source struct {
	Name string
	Data []byte
}

// BytesSource wraps an in-memory document
func BytesSource(name string, data []byte) Source {
	return Source{Name: name, Data: data}
}

// FileSource reads a single definition file
func FileSource(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("%s %s: %w", ErrMsgReadSourceFailed, path, err)
	}
	return Source{Name: path, Data: data}, nil
}

// DirSources reads every *.yml, *.yaml and *.json file in dir, sorted by name.
// A missing directory yields no sources; an unreadable file is logged and skipped.
func DirSources(ctx context.Context, dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s %s: %w", ErrMsgReadDirFailed, dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(definitionExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	sources := make([]Source, 0, len(names))
	for _, name := range names {
		src, err := FileSource(filepath.Join(dir, name))
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgSourceUnreadable, LogFieldSource, name, LogFieldError, err)
			continue
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// CollectSources gathers the main config file (if set) followed by the crates directory (if set).
// Failure to read the main file is an error so a reload never silently empties the registry.
func CollectSources(ctx context.Context, mainPath, dir string) ([]Source, error) {
	var sources []Source
	if mainPath != "" {
		src, err := FileSource(mainPath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if dir != "" {
		more, err := DirSources(ctx, dir)
		if err != nil {
			return nil, err
		}
		sources = append(sources, more...)
	}
	return sources, nil
}
