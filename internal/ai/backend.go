package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
)

// Part is one piece of a model answer: either text or inline binary data.
type Part struct {
	Text     string
	MIMEType string
	Data     []byte
}

// Backend is the generative service as seen by the gateway. Implementations
// return *apperr.AppError values classified as Credential or Generation.
type Backend interface {
	CompleteText(ctx context.Context, prompt string) (string, error)
	CompleteJSON(ctx context.Context, prompt string) (string, error)
	CompleteImage(ctx context.Context, prompt, aspectRatio string) ([]Part, error)
	Close() error
}

// BackendFactory builds a backend bound to apiKey.
type BackendFactory func(ctx context.Context, apiKey string) (Backend, error)

// GeminiBackend talks to the Gemini API through the official Go SDK.
type GeminiBackend struct {
	Client     *genai.Client
	TextModel  string
	ImageModel string
}

// GeminiFactory returns a BackendFactory producing Gemini backends for the given models.
func GeminiFactory(textModel, imageModel string) BackendFactory {
	return func(ctx context.Context, apiKey string) (Backend, error) {
		return NewGeminiBackend(ctx, apiKey, textModel, imageModel)
	}
}

// NewGeminiBackend initializes the Gemini client.
func NewGeminiBackend(ctx context.Context, apiKey, textModel, imageModel string) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to create Gemini client: %w", err))
	}
	return &GeminiBackend{Client: client, TextModel: textModel, ImageModel: imageModel}, nil
}

func (g *GeminiBackend) CompleteText(ctx context.Context, prompt string) (string, error) {
	model := g.Client.GenerativeModel(g.TextModel)
	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyError(err)
	}
	return responseText(res)
}

func (g *GeminiBackend) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	model := g.Client.GenerativeModel(g.TextModel)
	model.ResponseMIMEType = "application/json"
	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyError(err)
	}
	return responseText(res)
}

// CompleteImage asks the image model for a picture. The SDK has no image
// configuration block, so the aspect ratio travels inside the prompt.
func (g *GeminiBackend) CompleteImage(ctx context.Context, prompt, aspectRatio string) ([]Part, error) {
	model := g.Client.GenerativeModel(g.ImageModel)
	if aspectRatio != "" {
		prompt = fmt.Sprintf("%s\nAspect ratio: %s.", prompt, aspectRatio)
	}
	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, classifyError(err)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return nil, nil
	}

	var parts []Part
	for _, p := range res.Candidates[0].Content.Parts {
		switch v := p.(type) {
		case genai.Text:
			parts = append(parts, Part{Text: string(v)})
		case genai.Blob:
			parts = append(parts, Part{MIMEType: v.MIMEType, Data: v.Data})
		}
	}
	return parts, nil
}

func (g *GeminiBackend) Close() error {
	return g.Client.Close()
}

func responseText(res *genai.GenerateContentResponse) (string, error) {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", apperr.E(apperr.Generation, "", errors.New("empty response from model"))
	}
	var sb strings.Builder
	for _, p := range res.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String(), nil
}

// credentialSignatures are fragments the API puts in messages for bad or
// under-privileged keys.
var credentialSignatures = []string{
	"PERMISSION_DENIED",
	"API key not valid",
	"API_KEY_INVALID",
}

// classifyError turns a transport failure into a Credential or Generation error.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if isCredentialError(err) {
		return apperr.E(apperr.Credential, "", err)
	}
	return apperr.E(apperr.Generation, "", err)
}

func isCredentialError(err error) bool {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Reason() == "API_KEY_INVALID" {
			return true
		}
		switch apiErr.HTTPCode() {
		case http.StatusUnauthorized, http.StatusForbidden:
			return true
		}
		if st := apiErr.GRPCStatus(); st != nil && isCredentialCode(st.Code()) {
			return true
		}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		if gErr.Code == http.StatusUnauthorized || gErr.Code == http.StatusForbidden {
			return true
		}
	}

	if st, ok := status.FromError(err); ok && isCredentialCode(st.Code()) {
		return true
	}

	msg := err.Error()
	for _, sig := range credentialSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

func isCredentialCode(c codes.Code) bool {
	return c == codes.PermissionDenied || c == codes.Unauthenticated
}
