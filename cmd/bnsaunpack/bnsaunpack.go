// Command bnsaunpack exports sprite archives into directories of raw
// records, frame PNGs and a JSON manifest.
package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"runtime"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-bnsa/paths"
	"badc0de.net/pkg/go-bnsa/unpack"
)

var (
	dir    = flag.String("dir", "", "directory to search for archives; overrides -bnsa")
	outDir = flag.String("out", "unpacked", "directory to export into")
	jobs   = flag.Int("jobs", runtime.NumCPU(), "how many archives to unpack at once")

	bnsaPath string
)

func setupFilePathFlags() {
	paths.SetupFilePathFlag("default.bnsa", "bnsa", &bnsaPath)
}

func main() {
	setupFilePathFlags()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	root := *dir
	var files []string
	switch {
	case root != "":
		var err error
		if files, err = unpack.Find(root); err != nil {
			glog.Exitf("%v", err)
		}
		glog.Infof("found %d archives under %s", len(files), root)
	case bnsaPath != "":
		root = filepath.Dir(bnsaPath)
		files = []string{bnsaPath}
	default:
		glog.Exitf("pass -bnsa or -dir")
	}

	results, err := unpack.All(context.Background(), root, *outDir, files, *jobs)
	for _, r := range results {
		switch {
		case r.Path == "":
			// not started
		case r.Rejected:
			fmt.Printf("skipped   %s\n", r.Path)
		case r.Err != nil:
			fmt.Printf("failed    %s: %v\n", r.Path, r.Err)
		default:
			fmt.Printf("unpacked  %s -> %s\n", r.Path, r.Dir)
		}
	}
	if err != nil {
		glog.Exitf("%v", err)
	}
}
