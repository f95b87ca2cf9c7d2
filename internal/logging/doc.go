// Package logging provides structured logging with distributed tracing support.
//
// The budget extractor uses zerolog for high-performance structured logging
// with automatic trace ID propagation through contexts.
//
// # Log Levels
//
//   - TRACE: per-line lexical decisions
//   - DEBUG: stage entry/exit, header recognition, section transitions
//   - INFO: high-level operations (command start/end, document processed)
//   - WARN: recoverable issues (fallback log destinations, dropped rows)
//   - ERROR: failures needing attention
//
// # Trace ID Management
//
// Trace IDs are automatically generated or extracted from context:
//
//	traceID := logging.GetOrGenerateTraceID(ctx)
//	ctx = logging.ContextWithTraceID(ctx, traceID)
//
// # Component Loggers
//
// Create sub-loggers for components:
//
//	logger = logging.ComponentLogger(logger, "coordinator")
//
// # Configuration
//
// Logging can be configured via:
//   - CLI flags (--debug)
//   - Environment variables (BUDGETEXTRACT_LOG_LEVEL, BUDGETEXTRACT_TRACE_ID)
//   - Config file (~/.budgetextract/config.yaml)
package logging
