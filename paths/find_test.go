package paths

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestFindInDataDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sample.bnsa"), []byte{0x05, 0x00, 0x01, 0x00}, 0644); err != nil {
		t.Fatalf("writing sample: %v", err)
	}
	t.Setenv(DataEnv, dir)

	if got, want := Find("sample.bnsa"), filepath.Join(dir, "sample.bnsa"); got != want {
		t.Errorf("got %q; want %q", got, want)
	}
	if got := Dirs()[0]; got != dir {
		t.Errorf("got first dir %q; want %q", got, dir)
	}

	f, err := Open("sample.bnsa")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if len(b) != 4 {
		t.Errorf("got %d bytes; want 4", len(b))
	}

	var path string
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	setupFilePathFlag(fs, "sample.bnsa", "bnsa", &path)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	if path != filepath.Join(dir, "sample.bnsa") {
		t.Errorf("got flag default %q; want the found file", path)
	}
}

func TestOpenMissing(t *testing.T) {
	t.Setenv(DataEnv, t.TempDir())
	if got := Find("missing.bnsa"); got != "" {
		t.Errorf("got %q; want no path", got)
	}
	if _, err := Open("missing.bnsa"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v; want an os.ErrNotExist error", err)
	}
}
