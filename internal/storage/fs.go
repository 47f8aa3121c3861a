package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
)

// FSStore serves page blobs from a root directory. References are paths
// relative to the root; traversal outside the root is rejected.
type FSStore struct {
	root string
}

func NewFSStore(root string) *FSStore {
	return &FSStore{root: root}
}

func (s *FSStore) Fetch(ctx context.Context, ref string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	clean := filepath.Clean(ref)
	if strings.Contains(clean, "..") {
		return nil, "", fmt.Errorf("invalid reference %q", ref)
	}
	path := clean
	if !filepath.IsAbs(clean) {
		path = filepath.Join(s.root, clean)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return nil, "", fmt.Errorf("read %s: %w", ref, err)
	}
	if len(data) > constants.MaxImageBytes {
		return nil, "", fmt.Errorf("object %s exceeds size limit (%d bytes)", ref, len(data))
	}

	return data, constants.MIMEForExt(filepath.Ext(path)), nil
}
