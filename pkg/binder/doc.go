// Package binder fills request structs from the parts of an HTTP request.
//
// Each binder is a func(*http.Request, any) error and reads only its own
// struct tags, so several binders can be applied to the same struct:
//
//	type ListRequest struct {
//		Type   string `query:"type"`
//		Search string `query:"q"`
//		Limit  int    `query:"limit"`
//	}
//
//	type GetRequest struct {
//		ID string `path:"id"`
//	}
//
// Uploads use Multipart, which fills `form` values and `file` headers.
//
// JSON bodies are decoded as is. String values are never trimmed or
// rewritten because they end up verbatim inside QR payloads.
package binder
