// Package logger is a thin factory around log/slog.
//
// New builds a *slog.Logger from functional options: output format (json or
// text), minimum level, static attributes, and ContextExtractor callbacks
// that add attributes taken from the context passed to the *Context logging
// methods. Every logger extracts the operation ID stored with
// WithOperationID, so all records of one coordinator call can be correlated.
//
// Attribute helpers (Error, Operation, ProductID, Variant, ...) keep key
// names consistent across packages.
//
//	log := logger.New(
//	    logger.WithConfig(cfg.Log),
//	    logger.WithService("premiumd"),
//	    logger.WithDebugMode(cfg.Premium.DebugMode),
//	)
//	ctx = logger.WithOperationID(ctx, uuid.NewString())
//	log.InfoContext(ctx, "products fetched", logger.Variant(v))
package logger
