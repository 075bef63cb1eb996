// Package file provides document storage backends for the local filesystem
// and for Amazon S3 or S3-compatible services (MinIO, Wasabi, etc.).
//
// Both LocalStorage and S3Storage implement saver.Storage through their Put
// method and add Exists and Delete for housekeeping.
//
// # Local storage
//
// All keys resolve inside the base directory. Keys that escape it, such as
// "../etc/passwd", fail with ErrInvalidPath. Parent directories are created
// with 0755 and files are written with 0644 through a temporary file and a
// rename.
//
//	store, err := file.NewLocalStorage("/var/lib/htmlsaver",
//		file.WithLocalWriteTimeout(10*time.Second),
//	)
//
// # S3 storage
//
//	store, err := file.NewS3Storage(ctx, file.S3Config{
//		Bucket:         "snapshots",
//		Region:         "us-east-1",
//		Endpoint:       "http://localhost:9000",
//		ForcePathStyle: true,
//	})
//
// S3 API errors are mapped to package errors (ErrAccessDenied,
// ErrBucketNotFound, ErrServiceUnavailable and others) so callers can use
// errors.Is regardless of the SDK error type.
package file
