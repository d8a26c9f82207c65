package imagestore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ughe/tigerpaint/util"
)

// LocalStore reads and writes files on disk
type LocalStore struct{}

func (LocalStore) Get(ctx context.Context, name string) ([]byte, error) {
	_, _, p, err := split(name)
	if err != nil {
		return nil, err
	}
	return util.Read(p)
}

// Put creates missing parent directories
func (LocalStore) Put(ctx context.Context, name string, data []byte) error {
	_, _, p, err := split(name)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return util.Write(data, p)
}
