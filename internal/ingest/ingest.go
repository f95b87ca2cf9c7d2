package ingest

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/stateledger/budgetextract/internal/logging"
)

// Options configures the subprocess paths used to load a document. The
// zero value falls back to the bare "pdfinfo"/"pdftotext" binary names
// resolved from $PATH.
type Options struct {
	PdfinfoPath   string
	PdftotextPath string
}

func (o Options) pdfinfoBin() string {
	if o.PdfinfoPath == "" {
		return "pdfinfo"
	}
	return o.PdfinfoPath
}

func (o Options) pdftotextBin() string {
	if o.PdftotextPath == "" {
		return "pdftotext"
	}
	return o.PdftotextPath
}

// Document is one PDF's ingested text, split into pages, plus the
// pdfinfo-reported page count used by the validator's page-count check.
type Document struct {
	Pages        []string
	PdfPageCount int
}

// LoadDocument runs pdfinfo then pdftotext -layout against path and returns
// the paginated document. It is the context-aware entry point so the batch
// command can cancel an in-flight load.
func LoadDocument(ctx context.Context, opts Options, path string) (Document, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "load_document").
		Str("input_path", path).
		Msg("loading budget document")

	pageCount, err := PageCount(ctx, opts, path)
	if err != nil {
		return Document{}, err
	}

	text, err := ExtractText(ctx, opts, path)
	if err != nil {
		return Document{}, err
	}

	pages := SplitPages(text)

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Int("pdf_page_count", pageCount).
		Int("extracted_page_count", len(pages)).
		Msg("budget document loaded")

	return Document{Pages: pages, PdfPageCount: pageCount}, nil
}

// PageCount runs pdfinfo against path and parses the "Pages:" field of its
// stdout. A subprocess failure or an unparseable report is wrapped as a
// PdfinfoFailedError (error code pdfinfo_failed).
func PageCount(ctx context.Context, opts Options, path string) (int, error) {
	log := logging.FromContext(ctx)

	cmd := exec.CommandContext(ctx, opts.pdfinfoBin(), path)
	out, err := cmd.Output()
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "ingest").
			Err(err).
			Str("input_path", path).
			Msg("pdfinfo subprocess failed")
		return 0, logging.PdfinfoFailedError(path, fmt.Errorf("running pdfinfo: %w", err))
	}

	for _, line := range strings.Split(string(out), "\n") {
		const prefix = "Pages:"
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line[len(prefix):]))
		if convErr != nil {
			return 0, logging.PdfinfoFailedError(path, fmt.Errorf("parsing page count %q: %w", line, convErr))
		}
		return n, nil
	}

	return 0, logging.PdfinfoFailedError(path, fmt.Errorf("no Pages: field in pdfinfo output"))
}

// ExtractText runs pdftotext -layout against path and returns the raw,
// form-feed-delimited text. A subprocess failure is wrapped as a
// PdftotextFailedError (error code pdftotext_failed).
func ExtractText(ctx context.Context, opts Options, path string) (string, error) {
	log := logging.FromContext(ctx)

	cmd := exec.CommandContext(ctx, opts.pdftotextBin(), "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "ingest").
			Err(err).
			Str("input_path", path).
			Msg("pdftotext subprocess failed")
		return "", logging.PdftotextFailedError(path, fmt.Errorf("running pdftotext: %w", err))
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Int("text_size_bytes", len(out)).
		Msg("pdftotext subprocess succeeded")

	return string(out), nil
}

// SplitPages splits text on the form-feed page separator pdftotext emits
// between pages, discarding a trailing empty page.
func SplitPages(text string) []string {
	pages := strings.Split(text, "\f")
	if len(pages) > 0 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}
