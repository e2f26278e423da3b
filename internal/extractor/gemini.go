package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"go.uber.org/zap"

	"courrier/backend/internal/document"
	"courrier/backend/internal/domain"
)

// 信件元数据提取模型的提示词。
const extractorSystemPrompt = "You are a physical-mail analysis tool. " +
	"You are given a scanned letter (photo or PDF) and must extract its metadata. " +
	"You must output your response as a single valid JSON object."

const extractorUserPrompt = `Analyze the attached mail document and extract its metadata.

Return a single JSON object with exactly these keys:
  - "sender": the name of the sender organisation or person, or "" if unknown.
  - "recipient": the name of the addressee, or "" if unknown.
  - "subject": a short subject line describing the letter, or "" if unknown.
  - "reference": the tracking or file reference printed on the letter, or "" if absent.
  - "date": the date printed on the document in DD/MM/YYYY format, or "" if absent.
  - "isUrgent": true if the letter signals urgency (deadlines, reminders, legal notices), else false.
  - "summary": one or two sentences summarising the content, or "" if unreadable.

Do not include any text before or after the JSON object.`

// GeminiClient 基于 Vertex AI Gemini 的文档理解客户端。
type GeminiClient struct {
	model      *genai.GenerativeModel
	baseClient *genai.Client
	log        *zap.Logger
}

// NewGeminiClient 创建并配置 Gemini 提取客户端。
func NewGeminiClient(ctx context.Context, projectID, region, modelName string, log *zap.Logger) (*GeminiClient, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewGeminiClient: projectID and region cannot be empty")
	}

	baseClient, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	model := baseClient.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(extractorSystemPrompt)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		// 强制 JSON 输出，低温度保证结构稳定
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
	}
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
	}

	return &GeminiClient{
		model:      model,
		baseClient: baseClient,
		log:        log,
	}, nil
}

// Extract 将文档发送给 Gemini 并解析返回的 JSON 元数据。
//
// 任何传输、响应解析或服务端错误统一折叠为 ErrExtractionFailed。
func (c *GeminiClient) Extract(ctx context.Context, payload *domain.DocumentPayload) (*domain.ExtractionResult, error) {
	raw, err := document.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", ErrExtractionFailed, err)
	}

	blob := genai.Blob{
		MIMEType: payload.MediaType,
		Data:     raw,
	}

	resp, err := c.model.GenerateContent(ctx, blob, genai.Text(extractorUserPrompt))
	if err != nil {
		c.log.Warn("gemini call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	result, err := parseExtractionText(text)
	if err != nil {
		c.log.Warn("gemini response unparsable", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return result, nil
}

// Close 释放底层客户端。
func (c *GeminiClient) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}

// responseText 取出首个候选回答的文本内容。
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text part in response")
	}
	return sb.String(), nil
}

// parseExtractionText 解析模型返回的 JSON 文本。
//
// 虽然已配置 JSON 输出，仍兜底剥掉可能出现的 markdown 代码块围栏。
func parseExtractionText(text string) (*domain.ExtractionResult, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result domain.ExtractionResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("unmarshal extraction result: %w", err)
	}
	return &result, nil
}
