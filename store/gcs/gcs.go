package gcs

import (
	"context"
	"io"

	gstorage "cloud.google.com/go/storage"
	"github.com/Ahmed-Sermani/bucketrank/store"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
)

var _ store.Store = (*BucketStore)(nil)

// BucketStore serves documents out of a Google Cloud Storage bucket.
type BucketStore struct {
	bucket *gstorage.BucketHandle
}

// NewBucketStore creates a store.Store backed by the specified GCS
// bucket. Credentials are resolved through Application Default
// Credentials.
func NewBucketStore(ctx context.Context, bucket string) (*BucketStore, error) {
	if bucket == "" {
		return nil, xerrors.New("bucket name must be specified")
	}
	client, err := gstorage.NewClient(ctx)
	if err != nil {
		return nil, xerrors.Errorf("create storage client: %w", err)
	}
	return &BucketStore{bucket: client.Bucket(bucket)}, nil
}

func (s *BucketStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	it := s.bucket.Objects(ctx, &gstorage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, xerrors.Errorf("list objects under %q: %w", prefix, err)
		}
		names = append(names, attrs.Name)
	}
	// The GCS API yields objects in lexicographic order already; no
	// extra sorting required.
	return names, nil
}

func (s *BucketStore) Fetch(ctx context.Context, name string) ([]byte, error) {
	r, err := s.bucket.Object(name).NewReader(ctx)
	if err != nil {
		if xerrors.Is(err, gstorage.ErrObjectNotExist) {
			return nil, xerrors.Errorf("fetch %q: %w", name, store.ErrNotFound)
		}
		return nil, xerrors.Errorf("fetch %q: %w", name, err)
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, xerrors.Errorf("fetch %q: %w", name, err)
	}
	return content, nil
}
