package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultVisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// GoogleVision implements TextDetector using the Google Cloud Vision REST
// API with DOCUMENT_TEXT_DETECTION.
type GoogleVision struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewGoogleVision creates a Cloud Vision detector. endpoint overrides the
// production API URL and is meant for tests; pass "" for the default.
func NewGoogleVision(apiKey, endpoint string) (*GoogleVision, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google vision api key is required")
	}
	if endpoint == "" {
		endpoint = defaultVisionEndpoint
	}
	return &GoogleVision{
		apiKey:   apiKey,
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type visionRequest struct {
	Requests []visionAnnotateRequest `json:"requests"`
}

type visionAnnotateRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// DetectText sends the image to Cloud Vision and returns the full text
// annotation. An image the API reads as blank yields an empty string, not
// an error; the caller's fallback policy decides what that means.
func (g *GoogleVision) DetectText(ctx context.Context, image []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pngData, err := prepareImage(image, contentType)
	if err != nil {
		return "", err
	}

	reqBody := visionRequest{
		Requests: []visionAnnotateRequest{{
			Image:    visionImage{Content: base64.StdEncoding.EncodeToString(pngData)},
			Features: []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		}},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", g.endpoint, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling vision API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, string(body))
	}

	var annotated visionResponse
	if err := json.NewDecoder(resp.Body).Decode(&annotated); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(annotated.Responses) == 0 {
		return "", fmt.Errorf("no response from vision API")
	}
	if apiErr := annotated.Responses[0].Error; apiErr != nil {
		return "", fmt.Errorf("vision API error: %s", apiErr.Message)
	}

	return annotated.Responses[0].FullTextAnnotation.Text, nil
}

// Close closes the detector (no-op for the HTTP client).
func (g *GoogleVision) Close() error {
	return nil
}
