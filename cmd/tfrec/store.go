package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/tfrec/blobstore"
	miniostore "github.com/hupe1980/tfrec/blobstore/minio"
	s3store "github.com/hupe1980/tfrec/blobstore/s3"
)

// storeFlags selects where records are written to and read from.
type storeFlags struct {
	kind     string
	root     string
	bucket   string
	prefix   string
	endpoint string
	insecure bool
}

func (f *storeFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.kind, "store", "local", "output store: local, s3 or minio")
	fs.StringVar(&f.root, "root", ".", "root directory of the local store")
	fs.StringVar(&f.bucket, "bucket", "", "bucket name (s3, minio)")
	fs.StringVar(&f.prefix, "prefix", "", "key prefix inside the bucket (s3, minio)")
	fs.StringVar(&f.endpoint, "endpoint", "", "custom endpoint; required for minio")
	fs.BoolVar(&f.insecure, "insecure", false, "use plain HTTP for minio")
}

func (f *storeFlags) open(ctx context.Context) (blobstore.Store, error) {
	switch f.kind {
	case "local":
		return blobstore.NewLocalStore(f.root), nil

	case "s3":
		if f.bucket == "" {
			return nil, fmt.Errorf("-bucket is required for -store s3")
		}
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := s3.NewFromConfig(cfg, func(o *s3.Options) {
			if f.endpoint != "" {
				o.BaseEndpoint = aws.String(f.endpoint)
				o.UsePathStyle = true
			}
		})
		return s3store.NewStore(client, f.bucket, f.prefix), nil

	case "minio":
		if f.bucket == "" || f.endpoint == "" {
			return nil, fmt.Errorf("-bucket and -endpoint are required for -store minio")
		}
		client, err := minio.New(f.endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: !f.insecure,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return miniostore.NewStore(client, f.bucket, f.prefix), nil

	default:
		return nil, fmt.Errorf("unknown store %q", f.kind)
	}
}
