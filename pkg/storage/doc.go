// Package storage keeps rendered QR images (or any other small blobs) under
// slash-separated keys such as "qrcodes/<owner>/<id>.png".
//
// Two backends implement the Storage interface:
//
//   - LocalStorage writes into a base directory. Every key is resolved inside
//     that directory and keys escaping it fail with ErrInvalidPath.
//   - S3Storage talks to Amazon S3 or an S3-compatible service (MinIO, R2)
//     through github.com/aws/aws-sdk-go-v2. The client is hidden behind the
//     S3Client interface so it can be replaced in tests.
//
// # Usage
//
//	store, err := storage.NewLocalStorage("./data", "/files/")
//	obj, err := store.Put(ctx, "qrcodes/u1/abc.png", png, "image/png")
//	url := store.URL(obj.Key) // "/files/qrcodes/u1/abc.png"
//
//	s3store, err := storage.NewS3Storage(ctx, storage.S3Config{
//		Bucket: "qr-images",
//		Region: "eu-central-1",
//	})
//
// # Error Handling
//
// Backend errors are classified into package sentinels (ErrObjectNotFound,
// ErrAccessDenied, ErrBucketNotFound, ...) so callers can use errors.Is
// without knowing which backend is in use.
package storage
