// Package qrcodes stores generated QR codes for their owners.
//
// A Service validates and encodes content with pkg/qrcontent, renders the
// PNG with pkg/qrcode (through a RenderCache), writes the image to a
// storage.Storage and keeps the record in a Repository. Handler exposes the
// service over HTTP with the JSON envelope from pkg/handler.
//
// Two Repository implementations exist: PostgresRepository for production
// and MemoryRepository for tests and database-less runs. Render caches come
// in the same pair: RedisCache and an in-process MemoryCache.
package qrcodes
