package fsops

import (
	"errors"
	"io/fs"
	"os"
)

// StatInfo classifies a target path for the verb handlers.
type StatInfo struct {
	Exists bool
	IsDir  bool
	Size   int64
}

// Stat classifies a path. A missing path is not an error; only genuine
// filesystem failures (permissions, bad descriptors) are reported.
func Stat(path string) (StatInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return StatInfo{}, nil
		}
		return StatInfo{}, err
	}
	si := StatInfo{Exists: true, IsDir: fi.IsDir()}
	if !si.IsDir {
		si.Size = fi.Size()
	}
	return si, nil
}

// OpenWrite opens path for writing, creating it when missing. appendMode
// selects append (POST) vs truncate (PUT). created reports whether the
// file did not exist before the open.
func OpenWrite(path string, appendMode bool) (f *os.File, created bool, err error) {
	st, err := Stat(path)
	if err != nil {
		return nil, false, err
	}
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err = os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, false, err
	}
	return f, !st.Exists, nil
}
