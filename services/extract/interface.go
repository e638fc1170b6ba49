package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"veriflow/models"
)

// extractionPrompt asks the vision model for the three fields the
// registration form displays after scanning the card.
const extractionPrompt = "You are an ID card information extractor. Extract the following details from the ID card image: full name, ID number, and expiry date. Format your response as a JSON object with the keys: name, idNumber, and expiry. If any field is not visible or unclear, use 'Not found' as the value."

// Extractor reads identity fields off a captured ID card image.
type Extractor interface {
	ExtractID(ctx context.Context, imageDataURL string) (*models.IDDetails, error)
}

// parseDetails decodes the model's reply, tolerating markdown code fences
// and surrounding prose around the JSON object.
func parseDetails(content string) (*models.IDDetails, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var details models.IDDetails
	if err := json.Unmarshal([]byte(content[start:end+1]), &details); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	return &details, nil
}

// stripDataURL removes a "data:image/...;base64," prefix if present.
func stripDataURL(image string) string {
	if idx := strings.Index(image, ","); idx >= 0 && strings.HasPrefix(image, "data:") {
		return image[idx+1:]
	}
	return image
}
