// Package logger builds *slog.Logger values with consistent handlers and
// attribute names.
//
// New picks a JSON or text handler, attaches static attributes and wraps
// the result in a ContextHandler that copies request-scoped values (request
// id, environment) from the context into every record:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "authgate"),
//		logger.WithConfig(cfg),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.WarnContext(ctx, "session fingerprint mismatch",
//		logger.AccountID(id),
//		logger.Score(score),
//	)
//
// The attribute helpers return an empty slog.Attr for empty input, which
// slog drops, so callers never need a nil check.
package logger
