package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domain "github.com/bryanwahyu/dealflow/internal/domain/deals"
)

// Folder names of the fixed project hierarchy.
const (
	preUnderwriteFolder = "PRE-UNDERWRITE"
	kiqFolder           = "KIQ SUBMISSIONS"
)

// Store implements the Organizer port on a MinIO/S3 bucket. Folders are
// object-key prefixes; provisioning writes a zero-byte keep marker under
// each prefix so the hierarchy is visible before any artifact lands.
type Store struct {
	client *minio.Client
	bucket string
	region string
}

// New connects to MinIO and ensures the bucket exists.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Store{client: cli, bucket: bucket, region: region}, nil
}

// CreateHierarchy provisions the fixed project layout under key:
//
//	<key>/
//	  PRE-UNDERWRITE/
//	  KIQ SUBMISSIONS/
func (s *Store) CreateHierarchy(ctx context.Context, key string) (*domain.FolderTree, error) {
	tree := &domain.FolderTree{
		Root:          key + "/",
		PreUnderwrite: key + "/" + preUnderwriteFolder + "/",
		KIQ:           key + "/" + kiqFolder + "/",
	}
	tree.RootURL = s.objectURL(tree.Root)

	for _, prefix := range []string{tree.Root, tree.PreUnderwrite, tree.KIQ} {
		_, err := s.client.PutObject(ctx, s.bucket, prefix+".keep",
			bytes.NewReader(nil), 0, minio.PutObjectOptions{ContentType: "application/octet-stream"})
		if err != nil {
			return nil, fmt.Errorf("create folder %s: %w", prefix, domain.ErrStorageFailure)
		}
	}
	return tree, nil
}

// Store writes one artifact into the given folder prefix.
func (s *Store) Store(ctx context.Context, folder, name string, content []byte) (domain.ArtifactRef, error) {
	key := folder + name
	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentTypeFor(name)})
	if err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("store %s: %w", key, domain.ErrStorageFailure)
	}
	return domain.ArtifactRef{Name: name, Key: key, URL: s.objectURL(key)}, nil
}

// Check reports whether the bucket is reachable, for health probes.
func (s *Store) Check(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}

// objectURL builds the public URL (private buckets need a presigned URL
// instead).
func (s *Store) objectURL(key string) string {
	return fmt.Sprintf("http://%s/%s/%s", s.client.EndpointURL().Host, s.bucket, key)
}

func contentTypeFor(name string) string {
	switch filepath.Ext(name) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".json":
		return "application/json"
	case ".html":
		return "text/html"
	default:
		return "text/plain; charset=utf-8"
	}
}
