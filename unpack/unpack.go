// Package unpack exports many sprite archives at once.
package unpack

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-bnsa/bnsa"
	"badc0de.net/pkg/go-bnsa/export"
)

// Ext is the file extension Find looks for, compared case-insensitively.
const Ext = ".bnsa"

// Find returns every archive under root, sorted.
func Find(root string) ([]string, error) {
	var found []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsRegular() && strings.EqualFold(filepath.Ext(path), Ext) {
				found = append(found, path)
			}
			return nil
		},
		Unsorted: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %q", root)
	}
	sort.Strings(found)
	return found, nil
}

// OutputDir names the directory an archive is exported into: its path
// relative to root, without extension, under outRoot.
func OutputDir(root, outRoot, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	return filepath.Join(outRoot, strings.TrimSuffix(rel, filepath.Ext(rel)))
}

// Result reports what happened to one archive.
type Result struct {
	Path string
	Dir  string
	// Rejected is set for files that are not sprite archives; they are
	// skipped, not failed.
	Rejected bool
	Err      error
}

// One decodes the archive at path and exports it into dir.
func One(path, dir string) Result {
	r := Result{Path: path, Dir: dir}
	a, err := bnsa.DecodeFile(path)
	if err != nil {
		r.Err = err
		return r
	}
	if !a.Valid() {
		glog.Warningf("skipping %s: %s", path, a.Rejection)
		r.Rejected = true
		return r
	}
	if !a.Consistent {
		glog.Warningf("%s: reading stopped at an 0xFF filler before the end", path)
	}
	r.Err = export.Dir(a, dir)
	return r
}

// All exports every archive in paths concurrently, running at most jobs at a
// time. Each archive is decoded independently. Results are in the order of
// paths; the error is the first failure, after which remaining archives are
// not started.
func All(ctx context.Context, root, outRoot string, paths []string, jobs int) ([]Result, error) {
	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = One(path, OutputDir(root, outRoot, path))
			if results[i].Err != nil {
				return errors.Wrapf(results[i].Err, "unpacking %s", path)
			}
			glog.V(1).Infof("unpacked %s into %s", path, results[i].Dir)
			return nil
		})
	}
	return results, g.Wait()
}
