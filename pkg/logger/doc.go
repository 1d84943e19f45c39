// Package logger builds *slog.Logger instances with functional options,
// attribute helpers named after the qrkit domain, and transparent injection of
// values stored in context.Context (such as the HTTP request id).
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "qrkit"),
//		logger.WithContextExtractors(requestIDFromContext),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "qr code created",
//		logger.RecordID(rec.ID),
//		logger.OwnerID(rec.OwnerID),
//		logger.ContentType(rec.Type),
//	)
//
// Error and Errors only produce attributes for non-nil errors, so
//
//	log.Warn("image cleanup failed", logger.Error(err))
//
// needs no extra nil check.
package logger
