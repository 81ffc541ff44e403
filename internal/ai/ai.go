// Package ai is the generation gateway: it turns workflow requests into
// Gemini prompts and parses the answers back into models. When no usable API
// key is configured it answers with fixed sample data instead.
package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
	"github.com/01moynul/taptosell-creatives/internal/models"
)

const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "gemini-3-pro-image-preview"

	// PlaceholderKey is the sentinel some environments ship instead of a real key.
	PlaceholderKey = "placeholder"

	lifestyleAspectRatio = "1:1"
)

// Operation names a gateway call in the usage log.
type Operation string

const (
	OpImport Operation = "import"
	OpVideo  Operation = "video"
	OpImage  Operation = "image"
	OpCopy   Operation = "copy"
	OpPage   Operation = "page"
)

// KeySource yields the API key to use for the next call.
type KeySource interface {
	APIKey() string
}

// StaticKey is a KeySource that always returns the same key.
type StaticKey string

func (k StaticKey) APIKey() string { return string(k) }

// UsageEvent describes one finished gateway call.
type UsageEvent struct {
	Operation Operation
	Model     string
	Mock      bool
	Outcome   string
	Latency   time.Duration
	At        time.Time
}

// UsageRecorder stores usage events. Implementations must be safe for
// concurrent use.
type UsageRecorder interface {
	RecordGeneration(ctx context.Context, ev UsageEvent) error
}

// IsUsableKey reports whether key can be sent to the live service.
func IsUsableKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != PlaceholderKey
}

// AIService implements every generation kind of the workflow.
type AIService struct {
	Keys       KeySource
	NewBackend BackendFactory
	Usage      UsageRecorder
	Delays     MockDelays
	TextModel  string
	ImageModel string
	Logger     *slog.Logger
}

// NewAIService wires a gateway that talks to Gemini through the default backend.
func NewAIService(keys KeySource, textModel, imageModel string, logger *slog.Logger) *AIService {
	if textModel == "" {
		textModel = DefaultTextModel
	}
	if imageModel == "" {
		imageModel = DefaultImageModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AIService{
		Keys:       keys,
		NewBackend: GeminiFactory(textModel, imageModel),
		Delays:     DefaultMockDelays(),
		TextModel:  textModel,
		ImageModel: imageModel,
		Logger:     logger,
	}
}

// ImportProduct extracts product data from a supplier URL, translated to language.
func (s *AIService) ImportProduct(ctx context.Context, url string, language models.Language) (product models.Product, err error) {
	const op = "importar produto"
	if strings.TrimSpace(url) == "" {
		return models.Product{}, apperr.InvalidErr("A URL do produto é obrigatória.", map[string]string{"url": "required"})
	}

	b, mock, err := s.open(ctx, op)
	if err != nil {
		return models.Product{}, err
	}
	defer s.track(ctx, OpImport, s.TextModel, mock, time.Now(), &err)

	if mock {
		if err = sleep(ctx, s.Delays.Import); err != nil {
			return models.Product{}, apperr.E(apperr.Generation, op, err)
		}
		return mockProduct.Clone(), nil
	}
	defer b.Close()

	raw, err := b.CompleteJSON(ctx, importPrompt(url, language))
	if err != nil {
		return models.Product{}, withOp(op, err)
	}

	var parsed struct {
		Title         string   `json:"title"`
		Description   string   `json:"description"`
		Variations    []string `json:"variations"`
		SupplierPrice float64  `json:"supplierPrice"`
	}
	if err = decodeJSON(raw, &parsed); err != nil {
		return models.Product{}, apperr.E(apperr.MalformedResponse, op, err)
	}
	if strings.TrimSpace(parsed.Title) == "" {
		err = apperr.E(apperr.MalformedResponse, op, errors.New("product has no title"))
		return models.Product{}, err
	}

	return models.Product{
		Title:         parsed.Title,
		Description:   parsed.Description,
		Variations:    parsed.Variations,
		SupplierPrice: parsed.SupplierPrice,
		Images:        append([]string(nil), importPlaceholderImages...),
	}, nil
}

// GenerateVideoScript writes an AIDA video ad script for platform.
func (s *AIService) GenerateVideoScript(ctx context.Context, product models.Product, platform models.Platform, language models.Language) (script string, err error) {
	const op = "gerar roteiro de vídeo"
	b, mock, err := s.open(ctx, op)
	if err != nil {
		return "", err
	}
	defer s.track(ctx, OpVideo, s.TextModel, mock, time.Now(), &err)

	if mock {
		if err = sleep(ctx, s.Delays.Video); err != nil {
			return "", apperr.E(apperr.Generation, op, err)
		}
		return mockVideoScript, nil
	}
	defer b.Close()

	script, err = b.CompleteText(ctx, videoScriptPrompt(product, platform, language))
	if err != nil {
		return "", withOp(op, err)
	}
	return script, nil
}

// GenerateLifestyleImage renders one square lifestyle image and returns it
// as a PNG data URI.
func (s *AIService) GenerateLifestyleImage(ctx context.Context, product models.Product) (image string, err error) {
	const op = "gerar imagem"
	b, mock, err := s.open(ctx, op)
	if err != nil {
		return "", err
	}
	defer s.track(ctx, OpImage, s.ImageModel, mock, time.Now(), &err)

	if mock {
		if err = sleep(ctx, s.Delays.Image); err != nil {
			return "", apperr.E(apperr.Generation, op, err)
		}
		return mockImageURL(), nil
	}
	defer b.Close()

	parts, err := b.CompleteImage(ctx, lifestyleImagePrompt(product), lifestyleAspectRatio)
	if err != nil {
		return "", withOp(op, err)
	}
	for _, p := range parts {
		if len(p.Data) > 0 {
			return "data:image/png;base64," + base64.StdEncoding.EncodeToString(p.Data), nil
		}
	}
	return "", apperr.E(apperr.NoImageGenerated, op, errors.New("no image generated"))
}

// GenerateAdCopy writes a persuasive ad text for platform.
func (s *AIService) GenerateAdCopy(ctx context.Context, product models.Product, platform models.Platform, language models.Language) (copyText string, err error) {
	const op = "gerar textos"
	b, mock, err := s.open(ctx, op)
	if err != nil {
		return "", err
	}
	defer s.track(ctx, OpCopy, s.TextModel, mock, time.Now(), &err)

	if mock {
		if err = sleep(ctx, s.Delays.Copy); err != nil {
			return "", apperr.E(apperr.Generation, op, err)
		}
		return mockAdCopy(product), nil
	}
	defer b.Close()

	copyText, err = b.CompleteText(ctx, adCopyPrompt(product, platform, language))
	if err != nil {
		return "", withOp(op, err)
	}
	return copyText, nil
}

// GenerateSalesPage writes the complete landing page bundle.
func (s *AIService) GenerateSalesPage(ctx context.Context, product models.Product, language models.Language) (page models.SalesPage, err error) {
	const op = "gerar a página de vendas"
	b, mock, err := s.open(ctx, op)
	if err != nil {
		return models.SalesPage{}, err
	}
	defer s.track(ctx, OpPage, s.TextModel, mock, time.Now(), &err)

	if mock {
		if err = sleep(ctx, s.Delays.Page); err != nil {
			return models.SalesPage{}, apperr.E(apperr.Generation, op, err)
		}
		return mockSalesPage.Clone(), nil
	}
	defer b.Close()

	raw, err := b.CompleteJSON(ctx, salesPagePrompt(product, language))
	if err != nil {
		return models.SalesPage{}, withOp(op, err)
	}
	if err = decodeJSON(raw, &page); err != nil {
		return models.SalesPage{}, apperr.E(apperr.MalformedResponse, op, err)
	}
	if strings.TrimSpace(page.Headline) == "" || strings.TrimSpace(page.CTA) == "" {
		err = apperr.E(apperr.MalformedResponse, op, errors.New("sales page lacks headline or cta"))
		return models.SalesPage{}, err
	}
	return page, nil
}

// open decides between mock mode and a live backend. The key is read on
// every call so a newly selected key is used right away.
func (s *AIService) open(ctx context.Context, op string) (Backend, bool, error) {
	var key string
	if s.Keys != nil {
		key = s.Keys.APIKey()
	}
	if !IsUsableKey(key) {
		s.logger().Warn("API key not found or is a placeholder, using mock data", "operation", op)
		return nil, true, nil
	}
	if s.NewBackend == nil {
		return nil, false, apperr.E(apperr.Internal, op, errors.New("no generation backend configured"))
	}
	b, err := s.NewBackend(ctx, key)
	if err != nil {
		return nil, false, withOp(op, err)
	}
	return b, false, nil
}

func (s *AIService) track(ctx context.Context, operation Operation, model string, mock bool, start time.Time, errp *error) {
	outcome := "ok"
	if *errp != nil {
		outcome = string(apperr.KindOf(*errp))
		s.logger().Error("generation failed", "operation", operation, "mock", mock, "error", *errp)
	}
	if s.Usage == nil {
		return
	}
	ev := UsageEvent{
		Operation: operation,
		Model:     model,
		Mock:      mock,
		Outcome:   outcome,
		Latency:   time.Since(start),
		At:        time.Now().UTC(),
	}
	if err := s.Usage.RecordGeneration(context.WithoutCancel(ctx), ev); err != nil {
		s.logger().Warn("failed to record generation usage", "operation", operation, "error", err)
	}
}

func (s *AIService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// withOp tags a backend failure with the operation being attempted.
func withOp(op string, err error) error {
	if ae, ok := apperr.As(err); ok {
		tagged := *ae
		tagged.Op = op
		return &tagged
	}
	return apperr.E(apperr.Generation, op, err)
}

// decodeJSON parses a model answer, tolerating a markdown code fence around it.
func decodeJSON(raw string, dst any) error {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	if err := json.Unmarshal([]byte(text), dst); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
