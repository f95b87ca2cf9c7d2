// Package ingest wraps the pdfinfo and pdftotext subprocesses that turn a
// budget PDF into the paginated plain text the extraction pipeline consumes
// It owns no extraction logic of its own: its only job is running
// the two external tools, splitting the result on form-feed page breaks,
// and translating subprocess failure into the categorized error codes the
// coordinator and CLI expect.
package ingest
