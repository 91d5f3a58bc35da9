package paths

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

func getPossiblePathDirsImp() []string {
	var dirs []string
	if d := os.Getenv(DataEnv); d != "" {
		dirs = append(dirs, d)
	}
	dirs = append(dirs, ".", "datafiles")
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs,
			filepath.Join(exe+".runfiles", "go_bnsa", "datafiles"),
			filepath.Join(filepath.Dir(exe), "datafiles"))
	}
	return dirs
}

// getPossiblePathsImp lists every place fileName might be at. Absolute paths
// are only looked up as they are.
func getPossiblePathsImp(fileName string) []string {
	if filepath.IsAbs(fileName) {
		return []string{fileName}
	}
	var paths []string
	for _, d := range getPossiblePathDirsImp() {
		paths = append(paths, filepath.Join(d, fileName))
	}
	return paths
}

func openImp(fileName string) (interface {
	io.ReadCloser
	io.Seeker
}, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in %v", fileName, getPossiblePathDirsImp())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.Open(%q)", fileName)
	}
	return f, nil
}
