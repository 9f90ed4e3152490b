package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// transcribePrompt is shared by the LLM-backed detectors. Vision-language
// models happily summarize receipts; the prompt pins them to a verbatim
// line-by-line transcription so the downstream parser sees the same layout
// a dedicated OCR engine would produce.
const transcribePrompt = `You are reading a photo or scan of a retail receipt.

Transcribe every line of printed text exactly as it appears, top to bottom, one output line per printed line. Keep item names and their prices on the same output line when they share a printed line. Keep dollar signs and decimal points as printed.

Do not summarize, reorder, translate or reformat amounts. Do not add labels, markdown, or any text that is not on the receipt. Return only the transcription.`

// Gemini implements TextDetector using a Google Gemini vision model.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini detector.
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// DetectText asks the model to transcribe the receipt.
func (g *Gemini) DetectText(ctx context.Context, image []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pngData, err := prepareImage(image, contentType)
	if err != nil {
		return "", err
	}

	// prepareImage always yields PNG, and genai.ImageData wants the bare
	// format suffix rather than a MIME type.
	resp, err := g.model.GenerateContent(ctx,
		genai.ImageData("png", pngData),
		genai.Text(transcribePrompt),
	)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	var transcript strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			transcript.WriteString(string(text))
		}
	}

	return stripCodeFence(transcript.String()), nil
}

// Close closes the Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// stripCodeFence removes the markdown fences some models wrap plain text
// in despite instructions.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
