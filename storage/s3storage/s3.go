package s3storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/denismitr/goenv"
	"github.com/denismitr/voodoo/internal/errs"
	"github.com/denismitr/voodoo/media"
	"github.com/denismitr/voodoo/storage"
	"github.com/pkg/errors"
)

type Config struct {
	AccessKey        string
	AccessSecret     string
	AccessToken      string
	Region           string
	Endpoint         string
	S3ForcePathStyle bool
	EnableSSL        bool
}

// ConfigFromEnv reads the S3_* variables. It panics when a required one is missing.
func ConfigFromEnv() Config {
	return Config{
		AccessKey:        goenv.MustString("S3_ACCESS_KEY_ID"),
		AccessSecret:     goenv.MustString("S3_SECRET_ACCESS_KEY"),
		Region:           goenv.MustString("S3_REGION"),
		Endpoint:         goenv.MustString("S3_ENDPOINT"),
		S3ForcePathStyle: goenv.IsTruthy("S3_FORCE_PATH_STYLE"),
		EnableSSL:        goenv.IsTruthy("S3_SSL"),
	}
}

type RemoteStorage struct {
	cfg      Config
	s3Config *aws.Config
}

var _ storage.Storage = (*RemoteStorage)(nil)

func New(cfg Config) *RemoteStorage {
	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.AccessSecret, cfg.AccessToken),
		Region:           aws.String(cfg.Region),
		DisableSSL:       aws.Bool(!cfg.EnableSSL),
		S3ForcePathStyle: aws.Bool(cfg.S3ForcePathStyle),
	}

	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
	}

	return &RemoteStorage{
		cfg:      cfg,
		s3Config: s3Config,
	}
}

// objectLocation maps a namespace such as "bucket/some/prefix" onto the
// bucket and the object key.
func objectLocation(namespace, filename string) (bucket, key string) {
	namespace = strings.Trim(namespace, "/")

	parts := strings.SplitN(namespace, "/", 2)
	bucket = parts[0]

	if len(parts) == 2 && parts[1] != "" {
		return bucket, parts[1] + "/" + filename
	}

	return bucket, filename
}

func (rs *RemoteStorage) Put(ctx context.Context, namespace, filename string, source io.Reader) (*storage.Item, error) {
	sess, err := rs.getSession()
	if err != nil {
		return nil, err
	}

	bucket, key := objectLocation(namespace, filename)
	if bucket == "" || bucket == "." {
		return nil, errors.Wrapf(errs.ErrArgument, "no bucket in namespace %q", namespace)
	}

	if err := rs.ensureBucket(ctx, sess, bucket); err != nil {
		return nil, err
	}

	uploader := s3manager.NewUploader(sess)
	uploader.Concurrency = 1

	input := &s3manager.UploadInput{
		Body:   source,
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	if mime, err := media.GuessMimeFromExtension(path.Ext(filename)); err == nil {
		input.ContentType = aws.String(mime)
	}

	result, err := uploader.UploadWithContext(ctx, input)

	if err != nil {
		return nil, errors.Wrapf(
			storage.ErrStorageFailed,
			"could not upload file %s to bucket %s: %v",
			key, bucket, err,
		)
	}

	return &storage.Item{
		Path: bucket + "/" + key,
		URL:  result.Location,
	}, nil
}

func (rs *RemoteStorage) ensureBucket(ctx context.Context, sess *session.Session, bucket string) error {
	client := s3.New(sess)

	_, err := client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}

	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case s3.ErrCodeBucketAlreadyExists, s3.ErrCodeBucketAlreadyOwnedByYou:
			return nil
		}
	}

	return errors.Wrapf(storage.ErrStorageFailed, "could not create bucket %s: %v", bucket, err)
}

// Download streams the object into dst. Missing objects and buckets are
// reported as errs.ErrNotFound.
func (rs *RemoteStorage) Download(ctx context.Context, dst io.Writer, namespace, filename string) error {
	sess, err := rs.getSession()
	if err != nil {
		return err
	}

	bucket, key := objectLocation(namespace, filename)

	downloader := s3manager.NewDownloader(sess)
	downloader.Concurrency = 1

	_, err = downloader.DownloadWithContext(ctx, sequentialWriterAt{w: dst}, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		if isNotFound(err) {
			return errors.Wrapf(errs.ErrNotFound, "file %s in bucket %s", key, bucket)
		}

		return errors.Wrapf(
			storage.ErrStorageFailed,
			"could not download file %s from bucket %s: %v",
			key, bucket, err,
		)
	}

	return nil
}

// Remove deletes the object and waits until it is gone.
func (rs *RemoteStorage) Remove(ctx context.Context, namespace, filename string) error {
	sess, err := rs.getSession()
	if err != nil {
		return err
	}

	bucket, key := objectLocation(namespace, filename)
	client := s3.New(sess)

	_, err = client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		if isNotFound(err) {
			return errors.Wrapf(errs.ErrNotFound, "file %s in bucket %s", key, bucket)
		}

		return errors.Wrapf(storage.ErrStorageFailed, "could not remove file %s from bucket %s: %v", key, bucket, err)
	}

	err = client.WaitUntilObjectNotExistsWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return errors.Wrapf(storage.ErrStorageFailed, "could not confirm removal of file %s from bucket %s: %v", key, bucket, err)
	}

	return nil
}

func (rs *RemoteStorage) getSession() (*session.Session, error) {
	newSession, err := session.NewSession(rs.s3Config)
	if err != nil {
		return nil, errors.Wrapf(storage.ErrStorageFailed, "s3 session could not be created: %v", err)
	}

	return newSession, nil
}

func isNotFound(err error) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}

	switch aerr.Code() {
	case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
		return true
	}

	if rf, ok := aerr.(awserr.RequestFailure); ok {
		return rf.StatusCode() == 404
	}

	return false
}
