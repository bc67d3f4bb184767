// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil {
//	    return err
//	}
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "datasets/")
//	_, err = tfrec.WriteDataset(ctx, store, "TEST.tfrecords", ds)
//
// # Features
//
//   - Streaming multipart uploads: records are piped to the uploader as
//     they are written, so the file never has to fit in memory
//   - CRC32C integrity checksums on uploads
//   - Range reads for reading records back
//   - Automatic pagination for listing
package s3
