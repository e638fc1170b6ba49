package face

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	vfconfig "veriflow/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// similarityThreshold mirrors the threshold the onboarding flow has always
// used for ID-photo-to-selfie matching.
const similarityThreshold = 80

// Matcher compares a captured ID photo against a selfie.
type Matcher interface {
	Compare(ctx context.Context, idImage, selfie string) (bool, error)
}

// RekognitionMatcher implements Matcher with AWS Rekognition CompareFaces.
type RekognitionMatcher struct {
	client *rekognition.Client
}

// NewRekognitionMatcher builds a matcher using the default AWS credential
// chain and the configured region.
func NewRekognitionMatcher(ctx context.Context) (*RekognitionMatcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(vfconfig.AppConfig.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &RekognitionMatcher{client: rekognition.NewFromConfig(cfg)}, nil
}

// Compare decodes the two data-URL images and reports whether Rekognition
// finds at least one face match above the similarity threshold.
func (m *RekognitionMatcher) Compare(ctx context.Context, idImage, selfie string) (bool, error) {
	source, err := decodeDataURL(idImage)
	if err != nil {
		return false, fmt.Errorf("invalid id image: %w", err)
	}
	target, err := decodeDataURL(selfie)
	if err != nil {
		return false, fmt.Errorf("invalid selfie image: %w", err)
	}

	out, err := m.client.CompareFaces(ctx, &rekognition.CompareFacesInput{
		SourceImage:         &types.Image{Bytes: source},
		TargetImage:         &types.Image{Bytes: target},
		SimilarityThreshold: aws.Float32(similarityThreshold),
	})
	if err != nil {
		return false, fmt.Errorf("rekognition compare failed: %w", err)
	}
	return len(out.FaceMatches) > 0, nil
}

// decodeDataURL strips an optional "data:image/...;base64," prefix and
// decodes the remainder.
func decodeDataURL(image string) ([]byte, error) {
	if image == "" {
		return nil, fmt.Errorf("empty image")
	}
	if idx := strings.Index(image, ","); idx >= 0 && strings.HasPrefix(image, "data:") {
		image = image[idx+1:]
	}
	return base64.StdEncoding.DecodeString(image)
}
