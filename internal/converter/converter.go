package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docling/internal/common"
	"github.com/ternarybob/docling/internal/markdown"
	"github.com/ternarybob/docling/internal/models"
)

// Engine converts one document into page-annotated Markdown. Engine-level
// failures (missing file, unreadable input, conversion failure) are reported
// as an error-status result; a non-nil error is reserved for cancellation and
// infrastructure faults.
type Engine interface {
	Convert(ctx context.Context, filePath string, opts models.ProcessingOptions) (*models.ProcessingResult, error)
}

// pipelineOptions mirror the conversion pipeline knobs selected per tier
type pipelineOptions struct {
	doOCR            bool
	doTableStructure bool
	imagesScale      float64
	generatePageImgs bool
}

func pipelineForTier(tier string) pipelineOptions {
	switch tier {
	case common.TierLightweight:
		return pipelineOptions{doOCR: true, doTableStructure: false, imagesScale: 1.0, generatePageImgs: false}
	case common.TierAdvanced:
		return pipelineOptions{doOCR: true, doTableStructure: true, imagesScale: 2.0, generatePageImgs: true}
	default:
		return pipelineOptions{doOCR: true, doTableStructure: true, imagesScale: 1.5, generatePageImgs: true}
	}
}

// Service is the built-in conversion engine. It reads the source document,
// builds the item stream and renders page-annotated Markdown. Pages are
// delimited by form feeds in the source.
type Service struct {
	config *common.Config
	logger arbor.ILogger
}

// NewService creates a conversion engine bound to the service configuration
func NewService(config *common.Config, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

const ocrEngine = "easyocr"

// Convert processes a document and returns page-annotated Markdown
func (s *Service) Convert(ctx context.Context, filePath string, opts models.ProcessingOptions) (*models.ProcessingResult, error) {
	start := time.Now()

	tier := opts.ProcessingTier
	if tier == "" {
		tier = s.config.Processing.Tier
	}
	pipeline := pipelineForTier(tier)

	s.logger.Debug().
		Str("file_path", filePath).
		Str("tier", tier).
		Bool("do_ocr", pipeline.doOCR).
		Bool("do_table_structure", pipeline.doTableStructure).
		Msg("converter_configured")

	if len(opts.Languages) > 0 {
		s.logger.Debug().
			Strs("languages", opts.Languages).
			Msg("ocr_languages_override")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(filePath)
	switch {
	case os.IsNotExist(err):
		return errorResult(fmt.Sprintf("File not found: %s", filePath)), nil
	case os.IsPermission(err):
		return errorResult(fmt.Sprintf("Permission denied: %s", filePath)), nil
	case err != nil:
		return errorResult(err.Error()), nil
	case info.IsDir():
		return errorResult(fmt.Sprintf("Not a file: %s", filePath)), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsPermission(err) {
			return errorResult(fmt.Sprintf("Permission denied: %s", filePath)), nil
		}
		return errorResult(err.Error()), nil
	}

	doc, err := s.buildDocument(ctx, string(data))
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	md := markdown.Render(*doc)

	metadata := &models.ProcessingMetadata{
		PageCount:        doc.PageCount,
		FilePath:         filePath,
		ProcessingTier:   tier,
		Format:           strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), "."),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		OCREngine:        ocrEngine,
	}

	s.logger.Debug().
		Str("file_path", filePath).
		Int("page_count", metadata.PageCount).
		Int64("processing_time_ms", metadata.ProcessingTimeMs).
		Msg("processing_completed")

	return &models.ProcessingResult{
		Status:   "success",
		Markdown: md,
		Metadata: metadata,
	}, nil
}

// buildDocument splits the raw content into pages and classifies each line.
// Cancellation is observed between pages so a timed-out conversion stops
// instead of running to the end of a large document.
func (s *Service) buildDocument(ctx context.Context, content string) (*markdown.Document, error) {
	pages := strings.Split(content, "\f")
	doc := &markdown.Document{PageCount: len(pages)}

	for pageIdx, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageNo := pageIdx + 1
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimRight(line, "\r")
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			doc.Items = append(doc.Items, classifyLine(trimmed, pageNo))
		}
	}

	return doc, nil
}

func classifyLine(line string, page int) markdown.Item {
	if strings.HasPrefix(line, "#") {
		level := 0
		for level < len(line) && line[level] == '#' {
			level++
		}
		text := strings.TrimSpace(line[level:])
		if level <= 6 && text != "" {
			return markdown.Item{Kind: markdown.KindHeading, Page: page, Level: level, Text: text}
		}
	}

	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return markdown.Item{
			Kind:   markdown.KindListItem,
			Page:   page,
			Marker: line[:1],
			Text:   strings.TrimSpace(line[2:]),
		}
	}

	return markdown.Item{Kind: markdown.KindText, Page: page, Text: line}
}

func errorResult(message string) *models.ProcessingResult {
	return &models.ProcessingResult{
		Status: "error",
		Error:  message,
	}
}
