package results

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FollowOptions configures a Follower.
type FollowOptions struct {
	// FromStart emits the lines already in the log before following it.
	// Otherwise only lines appended after NewFollower returns are emitted.
	FromStart bool
}

// Follower streams lines appended to a results log, including rows written by
// other processes. It watches the parent directory so the log may be created
// after following starts.
type Follower struct {
	path    string
	watcher *fsnotify.Watcher
	offset  int64
	partial []byte
}

// NewFollower starts watching path. The starting offset is fixed before it
// returns, so rows appended afterwards are never missed.
func NewFollower(path string, opts FollowOptions) (*Follower, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(absPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	f := &Follower{path: absPath, watcher: watcher}
	if !opts.FromStart {
		if info, err := os.Stat(absPath); err == nil {
			f.offset = info.Size()
		}
	}
	return f, nil
}

// Close stops watching. It is safe to call after Run returns.
func (f *Follower) Close() error {
	return f.watcher.Close()
}

// Run emits every complete line appended to the log until ctx is cancelled,
// emit returns an error or the watcher fails. A cancelled context is not an
// error.
func (f *Follower) Run(ctx context.Context, emit func(line string) error) error {
	// Lines already present (FromStart) or written before the loop began.
	if err := f.drain(emit); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-f.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != f.path {
				continue
			}

			switch {
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				// The log was replaced; the next create starts from zero.
				f.reset()
			case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
				if err := f.drain(emit); err != nil {
					return err
				}
			}

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", f.path, err)
		}
	}
}

func (f *Follower) reset() {
	f.offset = 0
	f.partial = nil
}

// drain reads everything after the current offset and emits complete lines.
// A trailing partial line is kept until its newline arrives.
func (f *Follower) drain(emit func(line string) error) error {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", f.path, err)
	}
	if info.Size() < f.offset {
		// Truncated in place.
		f.reset()
	}

	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek %s: %w", f.path, err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.path, err)
	}
	f.offset += int64(len(data))

	buf := append(f.partial, data...)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimSuffix(buf[:i], []byte{'\r'}))
		buf = buf[i+1:]
		if err := emit(line); err != nil {
			f.partial = bytes.Clone(buf)
			return err
		}
	}
	f.partial = bytes.Clone(buf)
	return nil
}
