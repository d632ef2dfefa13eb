// util/cache.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

func fullCachePath(baseDir, path string) (string, error) {
	if baseDir == "" {
		cd, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(cd, "dispatchd")
	}
	return filepath.Join(baseDir, path), nil
}

// CacheStoreObject msgpack-encodes obj, zstd-compresses it, and
// writes it to baseDir/path (under the user cache dir if baseDir is
// empty). Used by ilp.CachingClient to persist an ILP snapshot.
func CacheStoreObject(baseDir, path string, obj any) error {
	path, err := fullCachePath(baseDir, path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return err
	}

	if err := msgpack.NewEncoder(zw).Encode(obj); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// CacheRetrieveObject reads and decodes an object previously stored
// with CacheStoreObject, also returning its modification time so
// callers can apply a max-age policy.
func CacheRetrieveObject(baseDir, path string, obj any) (time.Time, error) {
	path, err := fullCachePath(baseDir, path)
	if err != nil {
		return time.Time{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return time.Time{}, err
	}

	zr, err := zstd.NewReader(f)
	if err != nil {
		return time.Time{}, err
	}
	defer zr.Close()

	return fi.ModTime(), msgpack.NewDecoder(zr).Decode(obj)
}

// CacheCullObjects removes the oldest files under baseDir until the
// total size is under maxBytes.
func CacheCullObjects(baseDir string, maxBytes int64) error {
	cacheDir, err := fullCachePath(baseDir, "")
	if err != nil {
		return err
	}

	if _, err := os.Stat(cacheDir); os.IsNotExist(err) {
		return nil // Nothing to cull
	}

	type fileInfo struct {
		path    string
		size    int64
		modTime time.Time
	}
	var files []fileInfo
	var totalSize int64

	err = filepath.Walk(cacheDir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, fileInfo{
				path:    path,
				size:    info.Size(),
				modTime: info.ModTime(),
			})
			totalSize += info.Size()
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Sort files by modification time, oldest first
	slices.SortFunc(files, func(a, b fileInfo) int {
		return a.modTime.Compare(b.modTime)
	})

	// Remove files oldest to newest until we're under the limit
	for len(files) > 0 && totalSize > maxBytes {
		f := files[0]
		if err := os.Remove(f.path); err == nil {
			totalSize -= f.size
		}
		files = files[1:]
	}

	return nil
}
