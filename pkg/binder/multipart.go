package binder

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
)

// DefaultMaxMemory is the part of a multipart body kept in memory; the rest
// is spooled to temporary files by net/http.
const DefaultMaxMemory int64 = 10 << 20

var fileHeaderType = reflect.TypeOf((*multipart.FileHeader)(nil))

// Multipart binds a multipart/form-data body. Fields tagged `form:"name"`
// receive form values and fields of type *multipart.FileHeader tagged
// `file:"name"` receive the first file of that part. Bodies larger than
// maxBytes fail with ErrRequestTooLarge.
//
//	type UploadRequest struct {
//		Description string                `form:"description"`
//		Image       *multipart.FileHeader `file:"image"`
//	}
func Multipart(maxBytes int64) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			return fmt.Errorf("%w: got %q, expected multipart/form-data", ErrUnsupportedMediaType, r.Header.Get("Content-Type"))
		}
		if r.ContentLength > maxBytes {
			return ErrRequestTooLarge
		}

		if r.MultipartForm == nil {
			r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
			if err := r.ParseMultipartForm(min(maxBytes, DefaultMaxMemory)); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					return ErrRequestTooLarge
				}
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
		}

		form := r.MultipartForm
		if err := bindToStruct(v, "form", func(name string) []string {
			return form.Value[name]
		}, ErrFailedToParseForm); err != nil {
			return err
		}
		return bindFiles(v, form.File)
	}
}

func bindFiles(v any, files map[string][]*multipart.FileHeader) error {
	rv := reflect.ValueOf(v).Elem()
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rt.Field(i)
		if !field.CanSet() {
			continue
		}
		name, ok := parseFieldTag(fieldType, "file")
		if !ok {
			continue
		}
		if fieldType.Type != fileHeaderType {
			return fmt.Errorf("%w: %s: file fields must be *multipart.FileHeader", ErrFailedToParseForm, name)
		}
		if headers := files[name]; len(headers) > 0 {
			field.Set(reflect.ValueOf(headers[0]))
		}
	}
	return nil
}
