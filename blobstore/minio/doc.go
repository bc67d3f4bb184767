// Package minio provides a blobstore.Store implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible systems (Ceph, SeaweedFS,
// Garage) without pulling in the AWS SDK.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    return err
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "datasets/")
//	_, err = tfrec.WriteDataset(ctx, store, "TEST.tfrecords", ds)
//
// Create streams the TFRecord file through an io.Pipe into PutObject with
// an unknown size, which minio-go turns into a multipart upload.
package minio
