package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	geminiDefaultModel   = "gemini-2.5-flash"
	geminiDefaultTimeout = 20 * time.Second
)

// GeminiOptions Gemini 意图识别配置
type GeminiOptions struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	BaseURL string // 为空时使用官方地址
}

// GeminiClassifier 调用 Gemini 结构化输出进行意图识别
type GeminiClassifier struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	config  *genai.GenerateContentConfig
}

// NewGeminiClassifier 创建 Gemini 意图识别器
func NewGeminiClassifier(ctx context.Context, opts GeminiOptions) (*GeminiClassifier, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = geminiDefaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = geminiDefaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      opts.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClassifier{
		client:  client,
		model:   model,
		timeout: timeout,
		config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    responseSchema(),
			Temperature:       genai.Ptr[float32](0),
			CandidateCount:    1,
		},
	}, nil
}

// Classify 实现 Classifier
func (g *GeminiClassifier) Classify(ctx context.Context, text string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := genai.Text(fmt.Sprintf("User message: %q", text))
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, g.config)
	if err != nil {
		return Result{}, fmt.Errorf("%w: generate content: %v", ErrClassifierFailure, err)
	}

	out := resp.Text()
	if out == "" {
		return Result{}, fmt.Errorf("%w: empty response", ErrClassifierFailure)
	}
	return DecodeResult([]byte(out))
}

// Name 识别器名称
func (g *GeminiClassifier) Name() string {
	return "gemini:" + g.model
}
