package imagestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Store reads and writes s3://bucket/key objects. CredentialsPath holds
// the shared credentials and config files; empty uses the SDK defaults.
type S3Store struct {
	CredentialsPath string
}

func (c S3Store) session() (*session.Session, error) {
	const (
		keyName    = "credentials"
		configName = "config"
	)
	opts := session.Options{
		Config:            aws.Config{MaxRetries: aws.Int(3)},
		SharedConfigState: session.SharedConfigEnable,
	}
	if c.CredentialsPath != "" {
		opts.SharedConfigFiles = []string{
			path.Join(c.CredentialsPath, keyName),
			path.Join(c.CredentialsPath, configName),
		}
	}
	return session.NewSessionWithOptions(opts)
}

func (c S3Store) Get(ctx context.Context, name string) ([]byte, error) {
	_, bucket, key, err := split(name)
	if err != nil {
		return nil, err
	}
	s, err := c.session()
	if err != nil {
		return nil, err
	}
	buf := aws.NewWriteAtBuffer(nil)
	_, err = s3manager.NewDownloader(s).DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var ae awserr.Error
		if errors.As(err, &ae) && (ae.Code() == s3.ErrCodeNoSuchKey || ae.Code() == "NotFound") {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("%s:Download:%w", name, err)
	}
	return buf.Bytes(), nil
}

func (c S3Store) Put(ctx context.Context, name string, data []byte) error {
	_, bucket, key, err := split(name)
	if err != nil {
		return err
	}
	s, err := c.session()
	if err != nil {
		return err
	}
	_, err = s3manager.NewUploader(s).UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(key)),
	})
	if err != nil {
		return fmt.Errorf("%s:Upload:%w", name, err)
	}
	return nil
}
