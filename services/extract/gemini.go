package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"veriflow/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiExtractor implements Extractor with a Gemini vision model.
type GeminiExtractor struct {
	model *genai.GenerativeModel
}

// NewGeminiExtractor creates an extractor backed by the Gemini API.
func NewGeminiExtractor(apiKey string) (*GeminiExtractor, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiExtractor{model: client.GenerativeModel("models/gemini-1.5-pro")}, nil
}

func (e *GeminiExtractor) ExtractID(ctx context.Context, imageDataURL string) (*models.IDDetails, error) {
	imgBytes, err := base64.StdEncoding.DecodeString(stripDataURL(imageDataURL))
	if err != nil {
		return nil, fmt.Errorf("invalid image data: %w", err)
	}

	resp, err := e.model.GenerateContent(ctx,
		genai.Text(extractionPrompt),
		genai.ImageData("jpeg", imgBytes))
	if err != nil {
		return nil, fmt.Errorf("gemini extraction failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return parseDetails(sb.String())
}
