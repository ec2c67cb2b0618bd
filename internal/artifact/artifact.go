package artifact

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Info describes one stored artifact.
type Info struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	Created time.Time `json:"created"`
}

// Store is the narrow artifact-storage contract for diagnostic
// bundles. Implementations are external collaborators; the local
// filesystem Dir below exists so the tooling works without one.
type Store interface {
	// Upload stores content under the given ID and name.
	Upload(ctx context.Context, id, name string, content io.Reader) (*Info, error)

	// List returns stored artifacts, newest first.
	List(ctx context.Context) ([]Info, error)

	// Extract streams an artifact's content by ID.
	Extract(ctx context.Context, id string) (io.ReadCloser, error)

	// Delete removes an artifact by ID.
	Delete(ctx context.Context, id string) error
}

// Dir is a filesystem-backed Store rooted at a directory. Artifacts are
// stored as "<id>_<name>" files.
type Dir struct {
	root string
}

// NewDir creates the root directory if needed and returns a Store over it.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Upload(ctx context.Context, id, name string, content io.Reader) (*Info, error) {
	path := filepath.Join(d.root, id+"_"+filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create artifact %s: %w", id, err)
	}
	size, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write artifact %s: %w", id, err)
	}
	return &Info{ID: id, Name: filepath.Base(name), Size: size, Created: time.Now()}, nil
}

func (d *Dir) List(ctx context.Context) ([]Info, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, name, found := strings.Cut(entry.Name(), "_")
		if !found {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{ID: id, Name: name, Size: fi.Size(), Created: fi.ModTime()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Created.After(infos[j].Created) })
	return infos, nil
}

func (d *Dir) Extract(ctx context.Context, id string) (io.ReadCloser, error) {
	path, err := d.find(id)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (d *Dir) Delete(ctx context.Context, id string) error {
	path, err := d.find(id)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (d *Dir) find(id string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(d.root, id+"_*"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("artifact %s not found", id)
	}
	return matches[0], nil
}
