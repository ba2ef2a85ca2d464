// Package index reads and writes tree snapshots as files on behalf of
// the host surfaces. The core tree itself never touches paths or file
// descriptors; it only sees the byte streams opened here.
package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nvandessel/kdindex/internal/kdtree"
)

// LoadFile reads the serialized tree at path. A missing file is not an
// error: it yields a fresh empty tree with the given dimensionality
// (0 lets the first insertion decide).
func LoadFile(path string, dims int) (*kdtree.Tree, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return kdtree.NewEmpty(dims), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	defer f.Close()

	tree, err := kdtree.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading index %s: %w", path, err)
	}
	return tree, nil
}

// SaveFile snapshots the tree to path via a temp file and rename, so a
// crash mid-write never leaves a truncated index behind.
func SaveFile(ctx context.Context, tree *kdtree.Tree, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kdx-save-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tree.Save(ctx, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("saving index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
