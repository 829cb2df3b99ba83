package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mhartig/TrainerDeskBack/internal/billing"
	"github.com/mhartig/TrainerDeskBack/internal/models"
)

// TemplateAuthor turns a natural-language prompt into an invoice HTML
// template that keeps the required placeholder tokens.
type TemplateAuthor interface {
	GenerateTemplate(ctx context.Context, prompt, currentTemplate string) (string, error)
}

// ReceiptParser extracts structured expense fields from a photographed or
// scanned receipt.
type ReceiptParser interface {
	ParseReceipt(ctx context.Context, imageBase64, mimeType string) (*ReceiptFields, error)
}

type ReceiptFields struct {
	Date          string   `json:"date"`
	Amount        float64  `json:"amount"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	HasVAT        bool     `json:"hasVAT"`
	VATRate       *float64 `json:"vatRate"`
	Vendor        string   `json:"vendor"`
	InvoiceNumber string   `json:"invoiceNumber"`
	InvoiceDate   string   `json:"invoiceDate"`
}

// LLMClient talks to an OpenAI-compatible chat completions API. Each call is
// a single request with one bounded timeout; upstream failures are surfaced
// verbatim and never retried, since repeated calls cost money.
type LLMClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewLLMClient(baseURL, apiKey, model string) *LLMClient {
	return &LLMClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *LLMClient) chat(ctx context.Context, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("encode llm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build llm request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call llm api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read llm response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm api returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode llm response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm response contains no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

const templateSystemPrompt = `You are an assistant that writes complete HTML invoice templates.
The template MUST contain the placeholder tokens {{line_items}} and {{totals}} exactly once each.
It may also use {{client_name}}, {{invoice_number}}, {{invoice_date}}, {{month}}, {{trainer_name}}, {{trainer_address}}, {{iban}}, {{tax_id}} and {{disclaimer}}.
Respond with the raw HTML only, no explanations and no markdown fences.`

func (c *LLMClient) GenerateTemplate(ctx context.Context, prompt, currentTemplate string) (string, error) {
	userPrompt := prompt
	if currentTemplate != "" {
		userPrompt = fmt.Sprintf("Current template:\n%s\n\nRequested change: %s", currentTemplate, prompt)
	}

	content, err := c.chat(ctx, []chatMessage{
		{Role: "system", Content: templateSystemPrompt},
		{Role: "user", Content: userPrompt},
	})
	if err != nil {
		return "", err
	}

	html := stripCodeFence(content)
	if err := billing.ValidateTemplate(html); err != nil {
		return "", fmt.Errorf("generated template is unusable: %w", err)
	}
	return html, nil
}

const receiptSystemPrompt = `You extract fields from receipts. Respond with a single JSON object:
{"date":"YYYY-MM-DD","amount":0.0,"description":"","category":"","hasVAT":false,"vatRate":null,"vendor":"","invoiceNumber":"","invoiceDate":"YYYY-MM-DD"}
category must be one of: venue-rental, equipment, travel, continuing-education, coaching-fee, other.
vatRate must be 7, 19 or null. Respond with JSON only.`

func (c *LLMClient) ParseReceipt(ctx context.Context, imageBase64, mimeType string) (*ReceiptFields, error) {
	imageContent := chatContent{Type: "image_url"}
	imageContent.ImageURL = &struct {
		URL string `json:"url"`
	}{URL: fmt.Sprintf("data:%s;base64,%s", mimeType, imageBase64)}

	content, err := c.chat(ctx, []chatMessage{
		{Role: "system", Content: receiptSystemPrompt},
		{Role: "user", Content: []chatContent{
			{Type: "text", Text: "Extract the fields from this receipt."},
			imageContent,
		}},
	})
	if err != nil {
		return nil, err
	}

	var fields ReceiptFields
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &fields); err != nil {
		return nil, fmt.Errorf("decode receipt fields: %w", err)
	}
	if err := validateReceiptFields(&fields); err != nil {
		return nil, err
	}
	return &fields, nil
}

func validateReceiptFields(fields *ReceiptFields) error {
	switch fields.Category {
	case models.ExpenseVenueRental, models.ExpenseEquipment, models.ExpenseTravel,
		models.ExpenseContinuingEducation, models.ExpenseCoachingFee, models.ExpenseOther:
	case "":
		fields.Category = models.ExpenseOther
	default:
		return fmt.Errorf("receipt category %q is not allowed", fields.Category)
	}
	if fields.VATRate != nil && *fields.VATRate != 7 && *fields.VATRate != 19 {
		return fmt.Errorf("receipt vat rate %v is not allowed", *fields.VATRate)
	}
	return nil
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
