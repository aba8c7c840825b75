package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/cv-warehouse/internal/models"
	"alfredoptarigan/cv-warehouse/internal/repositories"
)

var ErrExtractionFailed = errors.New("failed to extract CV data from the document")

// AnalyzerService classifies an uploaded document, extracts its profile and
// stores accepted profiles in the warehouse.
type AnalyzerService interface {
	Analyze(ctx context.Context, filename, contentType string, src io.Reader) (*models.AnalysisResponse, error)
}

type analyzerService struct {
	repo          repositories.CVRepository
	gemini        GeminiService
	pdfParser     PDFParserService
	storage       StorageService
	indexer       IndexWorker
	promptBuilder *PromptBuilder
	log           *zap.SugaredLogger
}

// NewAnalyzerService wires the analyzer. indexer may be nil when no profile
// index is configured.
func NewAnalyzerService(
	repo repositories.CVRepository,
	gemini GeminiService,
	pdfParser PDFParserService,
	storage StorageService,
	indexer IndexWorker,
) AnalyzerService {
	return &analyzerService{
		repo:          repo,
		gemini:        gemini,
		pdfParser:     pdfParser,
		storage:       storage,
		indexer:       indexer,
		promptBuilder: NewPromptBuilder(),
		log:           zap.S().Named("analyzer"),
	}
}

type analysisOutput struct {
	IsCV            bool            `json:"is_cv"`
	RejectionReason *string         `json:"rejection_reason"`
	CVData          *models.Profile `json:"cv_data"`
}

func (a *analyzerService) Analyze(ctx context.Context, filename, contentType string, src io.Reader) (*models.AnalysisResponse, error) {
	path, err := a.storage.SaveTemp(filename, src)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := a.storage.Remove(path); err != nil {
			a.log.Warnw("failed to remove temp upload", "path", path, "error", err)
		}
	}()

	mimeType := detectMIMEType(filename, contentType)
	a.log.Infow("analyzing document", "file", filename, "mime", mimeType)

	raw, err := a.generate(ctx, path, mimeType)
	if err != nil {
		return nil, err
	}

	var out analysisOutput
	if err := parseJSONResponse(raw, &out); err != nil {
		a.log.Errorw("unparseable analysis response", "file", filename, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	resp := &models.AnalysisResponse{Filename: filename, IsCV: out.IsCV}
	if !out.IsCV {
		reason := models.AnalysisResponse{RejectionReason: out.RejectionReason}.Reason()
		resp.RejectionReason = &reason
		return resp, nil
	}

	if out.CVData == nil || !out.CVData.Valid() {
		return nil, ErrExtractionFailed
	}
	out.CVData.Normalize()
	resp.CVData = out.CVData

	a.store(*out.CVData, filename)
	return resp, nil
}

// generate sends the document to the model: PDFs with a text layer and text
// files as text, everything else as an inline binary part.
func (a *analyzerService) generate(ctx context.Context, path, mimeType string) (string, error) {
	if mimeType == "application/pdf" {
		pages, err := a.pdfParser.ExtractPages(path)
		if text := documentText(pages...); err == nil && text != "" {
			return a.gemini.GenerateText(ctx, a.promptBuilder.BuildAnalysisPrompt(text), 0.1)
		}
		a.log.Debugw("no pdf text layer, sending document inline", "path", path, "error", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	if isTextMIME(mimeType) && utf8.Valid(data) {
		if text := documentText(string(data)); text != "" {
			return a.gemini.GenerateText(ctx, a.promptBuilder.BuildAnalysisPrompt(text), 0.1)
		}
	}

	return a.gemini.GenerateFromDocument(ctx, a.promptBuilder.BuildAnalysisPrompt(""), data, mimeType)
}

// store persists an accepted profile. Failures are logged only; the caller
// still receives the extracted profile.
func (a *analyzerService) store(profile models.Profile, filename string) {
	record := models.NewCVRecord(profile, filename)
	if err := a.repo.Create(record); err != nil {
		a.log.Errorw("failed to store cv", "file", filename, "error", err)
		return
	}
	a.log.Infow("cv stored", "file", filename, "cv_id", record.ID)

	if a.indexer != nil {
		a.indexer.Enqueue(record.ID.String())
	}
}

func detectMIMEType(filename, contentType string) string {
	if ct, _, err := mime.ParseMediaType(contentType); err == nil && ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		if ct, _, err := mime.ParseMediaType(byExt); err == nil {
			return ct
		}
	}
	return "text/plain"
}

// maxDocumentChars keeps the analysis prompt inside the model's input budget.
const maxDocumentChars = 60000

// documentText joins extracted pages, trims every line, collapses runs of
// spaces and drops blank lines.
func documentText(pages ...string) string {
	var b strings.Builder
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			line = strings.Join(strings.Fields(line), " ")
			if line == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(line)
		}
	}
	text := b.String()
	if len(text) > maxDocumentChars {
		text = strings.ToValidUTF8(text[:maxDocumentChars], "")
	}
	return text
}

func isTextMIME(mimeType string) bool {
	return strings.HasPrefix(mimeType, "text/") || mimeType == "application/json"
}
