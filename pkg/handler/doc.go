// Package handler provides type-safe HTTP handlers that return renderable
// responses instead of writing to the http.ResponseWriter directly.
//
// A HandlerFunc receives a Context (the request context plus access to the
// request and writer) and a request value filled by binders:
//
//	type getRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Get("/v1/qrcodes/{id}", handler.Wrap(
//		func(ctx handler.Context, req getRequest) handler.Response {
//			rec, err := svc.Get(ctx, req.ID)
//			if err != nil {
//				return handler.JSONError(err)
//			}
//			return handler.JSON(rec)
//		},
//		handler.WithBinders[getRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[getRequest](errorHandler),
//	))
//
// JSON responses share one envelope: {"data": ..., "meta": ..., "error": {...}}.
// Errors are turned into that envelope by JSONError, which understands
// *APIError and HTTPError values and hides anything else behind a generic
// 500 response.
package handler
