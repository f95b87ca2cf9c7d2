// Package config handles configuration loading and management for the
// budget extraction pipeline.
//
// Configuration is loaded from ~/.budgetextract/config.yaml with support for:
//   - Extraction defaults (pdftotext/pdfinfo paths, output directory, target year mode)
//   - Logging configuration (level, format, destinations, audit trail)
//   - Default output format preferences
//
// # Configuration Precedence
//
//  1. CLI flags (highest priority)
//  2. Environment variables (BUDGETEXTRACT_*)
//  3. Config file (~/.budgetextract/config.yaml)
//  4. Built-in defaults (lowest priority)
package config
