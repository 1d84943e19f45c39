// Package server assembles the HTTP router: chi middleware, request
// logging, health endpoints, the versioned QR code API and, for local
// storage, the static image files.
package server
