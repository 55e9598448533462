// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store maintains the in-memory set of loaded papers. A folder
// load extracts every PDF directly inside the folder and then replaces the
// store contents in one step: readers either see the previous set or the
// new one, never a partial load.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-agent/internal/pdftext"
	"github.com/pdiddy/research-agent/pkg/types"
)

const defaultParallelism = 4

// ErrNotDirectory reports a load path that exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// FileFailure records one PDF that could not be extracted during a load.
type FileFailure struct {
	// Path is the file that failed.
	Path string `json:"path" yaml:"path"`

	// Reason is the extraction error message.
	Reason string `json:"reason" yaml:"reason"`
}

// LoadResult summarizes a folder load.
type LoadResult struct {
	// Loaded is the number of papers now in the store.
	Loaded int `json:"loaded" yaml:"loaded"`

	// Failures lists files skipped because extraction failed. Failures do
	// not abort the load; the remaining files are still processed.
	Failures []FileFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Store holds the loaded papers. It has a single writer (LoadFolder) and
// many readers; the mutex guards the replace step so a read never spans it.
type Store struct {
	mu        sync.RWMutex
	papers    map[string]types.Paper
	order     []string // IDs in load order
	dir       string
	extractor pdftext.Extractor
	parallel  int
}

// New creates an empty store that extracts with x. Parallelism bounds
// concurrent extraction during a load; values below 1 use the default.
func New(x pdftext.Extractor, parallelism int) *Store {
	if parallelism < 1 {
		parallelism = defaultParallelism
	}
	return &Store{
		papers:    make(map[string]types.Paper),
		extractor: x,
		parallel:  parallelism,
	}
}

// LoadFolder scans dir (non-recursive) for PDF files, extracts each, and
// replaces the store contents with the successfully extracted papers. On
// error the previous contents are left untouched. An empty folder loads
// zero papers and is not an error.
func (s *Store) LoadFolder(ctx context.Context, dir string) (LoadResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return LoadResult{}, fmt.Errorf("papers folder %s: %w", dir, err)
	}
	if !info.IsDir() {
		return LoadResult{}, fmt.Errorf("papers folder %s: %w", dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return LoadResult{}, fmt.Errorf("reading papers folder %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	// Extract in parallel, keyed by position so the load order stays
	// deterministic regardless of completion order.
	docs := make([]pdftext.Document, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs[i], errs[i] = s.extractor.Extract(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return LoadResult{}, err
	}

	papers := make(map[string]types.Paper, len(paths))
	var order []string
	var failures []FileFailure

	for i, path := range paths {
		if errs[i] != nil {
			failures = append(failures, FileFailure{Path: path, Reason: errs[i].Error()})
			continue
		}
		id := uniqueID(papers, paperID(path))
		papers[id] = types.Paper{
			ID:        id,
			Path:      path,
			Title:     docs[i].Title,
			Author:    docs[i].Author,
			Pages:     docs[i].Pages,
			PageCount: docs[i].PageCount,
		}
		order = append(order, id)
	}

	s.mu.Lock()
	s.papers = papers
	s.order = order
	s.dir = dir
	s.mu.Unlock()

	return LoadResult{Loaded: len(order), Failures: failures}, nil
}

// List returns the loaded papers' listing info in load order.
func (s *Store) List() []types.PaperInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]types.PaperInfo, 0, len(s.order))
	for _, id := range s.order {
		p := s.papers[id]
		infos = append(infos, types.PaperInfo{ID: p.ID, Title: p.Title, PageCount: p.PageCount})
	}
	return infos
}

// Papers returns a snapshot of the loaded papers in load order.
func (s *Store) Papers() []types.Paper {
	s.mu.RLock()
	defer s.mu.RUnlock()

	papers := make([]types.Paper, 0, len(s.order))
	for _, id := range s.order {
		papers = append(papers, s.papers[id])
	}
	return papers
}

// Len returns the number of loaded papers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Dir returns the folder the current contents were loaded from.
func (s *Store) Dir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dir
}

// paperID derives a paper identifier from the filename without extension.
func paperID(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// uniqueID disambiguates duplicate identifiers with a numeric suffix.
func uniqueID(existing map[string]types.Paper, id string) string {
	if _, ok := existing[id]; !ok {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if _, ok := existing[candidate]; !ok {
			return candidate
		}
	}
}
