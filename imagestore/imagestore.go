// Package imagestore reads and writes image files on local disk, Amazon S3
// (s3://bucket/key) and Google Cloud Storage (gs://bucket/object).
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"mime"
	"net/url"
	"os"
	"path"
	"strings"
)

// ErrNotFound is returned when the named object does not exist. It is
// os.ErrNotExist so errors.Is works for local files too.
var ErrNotFound = os.ErrNotExist

type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
}

// Router sends each name to the store for its URL scheme. Names without a
// scheme are local paths.
type Router struct {
	Local Store
	S3    Store
	GCS   Store
}

// NewRouter returns a Router whose cloud stores read credentials from
// credentialsPath, laid out as ~/.aws (credentials, config) plus gcp.json
func NewRouter(credentialsPath string) *Router {
	return &Router{
		Local: LocalStore{},
		S3:    S3Store{CredentialsPath: credentialsPath},
		GCS:   GCSStore{CredentialsPath: credentialsPath},
	}
}

func (r *Router) route(name string) (Store, error) {
	scheme, _, _, err := split(name)
	if err != nil {
		return nil, err
	}
	var s Store
	switch scheme {
	case "", "file":
		s = r.Local
	case "s3":
		s = r.S3
	case "gs":
		s = r.GCS
	default:
		return nil, fmt.Errorf("Unsupported scheme %q in %s", scheme, name)
	}
	if s == nil {
		return nil, fmt.Errorf("No store configured for %q", scheme)
	}
	return s, nil
}

func (r *Router) Get(ctx context.Context, name string) ([]byte, error) {
	s, err := r.route(name)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, name)
}

func (r *Router) Put(ctx context.Context, name string, data []byte) error {
	s, err := r.route(name)
	if err != nil {
		return err
	}
	return s.Put(ctx, name, data)
}

// split breaks name into scheme, bucket and key. Local names come back with
// an empty scheme and bucket and the path as key.
func split(name string) (scheme, bucket, key string, err error) {
	if !strings.Contains(name, "://") {
		return "", "", name, nil
	}
	u, err := url.Parse(name)
	if err != nil {
		return "", "", "", err
	}
	if u.Scheme == "file" {
		return "file", "", u.Path, nil
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", "", fmt.Errorf("Expected %s://bucket/key. Found: %s", u.Scheme, name)
	}
	return u.Scheme, u.Host, key, nil
}

func contentType(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// Decode decodes a png, jpeg or gif image
func Decode(buf []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(buf))
	return img, err
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
