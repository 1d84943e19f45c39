// Package upload validates and reads multipart file uploads.
//
//	if err := upload.ValidateSize(fh, 10<<20); err != nil {
//		return err
//	}
//	data, err := upload.ReadAll(fh, 10<<20)
//	if err != nil {
//		return err
//	}
//	if !upload.IsImageType(upload.Detect(data)) {
//		return upload.ErrNotAnImage
//	}
//
// Types are sniffed from the content, never taken from the client's
// Content-Type header or the file name.
package upload
