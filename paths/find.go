// Package paths locates sprite archives and other data files.
package paths

import (
	"io"
	"os"

	"github.com/golang/glog"
)

// DataEnv names the environment variable holding an extra data directory.
const DataEnv = "BNSA_DATA"

// Find locates the passed datafile shortname and returns an absolute or
// relative path to find the datafile at, or an empty string.
//
// For example, for "player.bnsa" it may return
// "mybinary.runfiles/go_bnsa/datafiles/player.bnsa".
func Find(fileName string) string {
	for _, path := range getPossiblePathsImp(fileName) {
		if f, err := os.Open(path); err == nil {
			f.Close()
			glog.Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same locations that Find would look, and
// opens it. If Find returns an empty string, an error is returned.
func Open(fileName string) (interface {
	io.ReadCloser
	io.Seeker
}, error) {
	return openImp(fileName)
}

// Dirs returns the directories Find searches, in order.
func Dirs() []string {
	return getPossiblePathDirsImp()
}
