// Package logutil provides context-aware structured logging on top of slog.
//
// Log entries are correlated across subsystems by generating a trace ID per
// subsystem frame and propagating the accumulated path through the context:
//
//	ctx = logutil.Start(ctx, "drainer")
//	logutil.Get(ctx).Info("plan loaded")
//
//	// Add fields to the context logger.
//	ctx = logutil.WithField(ctx, "operation-id", id)
//
//	// Extract the subsystem path, e.g. for span resource names.
//	subsystem := logutil.GetSubsystem(ctx)
//
// Structs can be turned into log fields with FromStruct using the logfield
// tag.
//
// Note: functions invoked from webutil or runutil already run inside a
// subsystem frame and do not need to call Start again.
package logutil
