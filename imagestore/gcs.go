package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore reads and writes gs://bucket/object objects. CredentialsPath is
// the directory holding gcp.json; empty uses application default
// credentials.
type GCSStore struct {
	CredentialsPath string
}

func (c GCSStore) client(ctx context.Context) (*storage.Client, error) {
	const keyName = "gcp.json"
	var opts []option.ClientOption
	if c.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(path.Join(c.CredentialsPath, keyName)))
	}
	return storage.NewClient(ctx, opts...)
}

func (c GCSStore) Get(ctx context.Context, name string) ([]byte, error) {
	_, bucket, object, err := split(name)
	if err != nil {
		return nil, err
	}
	client, err := c.client(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("%s:NewReader:%w", name, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (c GCSStore) Put(ctx context.Context, name string, data []byte) error {
	_, bucket, object, err := split(name)
	if err != nil {
		return err
	}
	client, err := c.client(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType(object)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("%s:Write:%w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s:Close:%w", name, err)
	}
	return nil
}
