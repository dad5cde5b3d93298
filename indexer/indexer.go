// Package indexer builds repository indexes from directories of bundles.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"

	"github.com/lyraproj/osgi-index/bundle"
	"github.com/lyraproj/osgi-index/index"
	"github.com/lyraproj/osgi-index/internal/logger"
)

// Indexer analyzes files concurrently and assembles them into a Repository.
type Indexer struct {
	cfg      Config
	analyzer *bundle.Analyzer
	log      *logger.Logger
	now      func() time.Time
}

// SkippedFile records a file that was left out of the index.
type SkippedFile struct {
	Path string
	Err  error
}

// Report is the outcome of an index build.
type Report struct {
	Repository *index.Repository
	Skipped    []SkippedFile
}

type file struct {
	path string
	url  string
}

func New(cfg Config, log *logger.Logger) (*Indexer, error) {
	cfg.Default()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	analyzer, err := bundle.NewAnalyzer(cfg.RangeCacheSize,
		bundle.WithMavenCoordinates(*cfg.MavenCoordinates),
		bundle.WithLogger(log.Component(`analyzer`)))
	if err != nil {
		return nil, err
	}
	return &Indexer{cfg: cfg, analyzer: analyzer, log: log.Component(`indexer`), now: time.Now}, nil
}

// Index walks the given roots and analyzes every matching file. Files that are not bundles
// are always skipped. Other errors skip the file unless FailFast is set, in which case the
// first error aborts the build.
func (x *Indexer) Index(ctx context.Context, roots ...string) (*Report, error) {
	start := x.now()
	files, err := x.collect(roots)
	if err != nil {
		return nil, err
	}

	resources := make([]*index.Resource, len(files))
	failures := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(x.cfg.Concurrency)
	for i, f := range files {
		g.Go(func() error {
			res, err := x.analyzer.Analyze(gctx, f.path, f.url)
			if err == nil {
				resources[i] = res
				return nil
			}
			if x.cfg.FailFast && !errors.Is(err, bundle.ErrNotBundle) {
				return err
			}
			failures[i] = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		x.log.Error().Err(err).Msg(`Index build aborted`)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Repository: &index.Repository{Name: x.cfg.Name, Increment: x.cfg.Increment}}
	if report.Repository.Increment == 0 {
		report.Repository.Increment = start.UnixMilli()
	}
	for i, f := range files {
		if failures[i] != nil {
			report.Skipped = append(report.Skipped, SkippedFile{Path: f.path, Err: failures[i]})
			if errors.Is(failures[i], bundle.ErrNotBundle) {
				x.log.Debug().Str(`path`, f.path).Msg(`Not a bundle`)
			} else {
				x.log.LogResourceSkipped(f.path, failures[i])
			}
			continue
		}
		report.Repository.Resources = append(report.Repository.Resources, resources[i])
	}
	report.Repository.Sort()
	x.log.LogIndexComplete(x.cfg.Name, len(report.Repository.Resources), len(report.Skipped), x.now().Sub(start))
	return report, nil
}

func (x *Indexer) collect(roots []string) ([]file, error) {
	seen := map[string]bool{}
	var files []file
	add := func(base, p string) {
		if seen[p] {
			return
		}
		seen[p] = true
		files = append(files, file{path: p, url: x.url(base, p)})
	}
	for _, root := range roots {
		st, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			add(filepath.Dir(root), root)
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && x.included(d.Name()) {
				add(root, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf(`walking %s: %w`, root, err)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })
	return files, nil
}

func (x *Indexer) included(name string) bool {
	for _, p := range x.cfg.Includes {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}

// url returns the slash separated path of p relative to the configured root, or to base
// when no root is configured.
func (x *Indexer) url(base, p string) string {
	if x.cfg.RootDir != `` {
		base = x.cfg.RootDir
	}
	if rel, err := filepath.Rel(base, p); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(p)
}

// Write serializes the repository, gzip compressed when configured.
func (x *Indexer) Write(w io.Writer, repo *index.Repository) error {
	if !x.cfg.Compress {
		return repo.WriteXML(w, x.cfg.Pretty)
	}
	gz := gzip.NewWriter(w)
	if err := repo.WriteXML(gz, x.cfg.Pretty); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// WriteFile writes the repository to a temporary file next to target and renames it into
// place.
func (x *Indexer) WriteFile(target string, repo *index.Repository) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), `.`+filepath.Base(target)+`-*`)
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := x.Write(tmp, repo); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
