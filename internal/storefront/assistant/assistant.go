// Package assistant answers shopper questions with Gemini.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Apology is returned whenever no answer could be produced
const Apology = "Xin lỗi, tôi đang gặp chút trục trặc. Bạn có thể gọi hotline 1900-xxxx để được hỗ trợ trực tiếp."

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-3-flash-preview"

const systemPrompt = `Bạn là trợ lý ảo hỗ trợ khách hàng của Ergolife - cửa hàng chuyên cung cấp đồ công thái học (ghế, bàn, phụ kiện).
Hãy trả lời bằng tiếng Việt, lịch sự, chuyên nghiệp.
Kiến thức về sản phẩm:
- Ghế ErgoMaster Pro (8.5tr): Tốt nhất cho thắt lưng.
- Bàn FlexiDesk V2 (12.5tr): Bàn đứng điện thông minh.
- Giá treo màn hình (1.85tr).
- Bàn phím Split (3.2tr).
Hãy khuyên người dùng về sức khỏe tư thế nếu cần.`

var errNoClient = errors.New("assistant: no API key configured")

// Generator is the text generation call of the Gemini client
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Option configures a Responder
type Option func(*Responder)

func WithModel(model string) Option {
	return func(r *Responder) {
		if model != "" {
			r.model = model
		}
	}
}

// WithTimeout bounds a single Respond call
func WithTimeout(d time.Duration) Option {
	return func(r *Responder) {
		r.timeout = d
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Responder) {
		r.logger = logger
	}
}

// Responder answers one message at a time. It keeps no conversation
// history and does not retry.
type Responder struct {
	gen     Generator
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a responder backed by the Gemini API. Without an API key
// every call returns Apology.
func New(ctx context.Context, apiKey string, opts ...Option) (*Responder, error) {
	if apiKey == "" {
		return NewWithGenerator(nil, opts...), nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return NewWithGenerator(client.Models, opts...), nil
}

// NewWithGenerator creates a responder over gen, which may be nil
func NewWithGenerator(gen Generator, opts ...Option) *Responder {
	r := &Responder{
		gen:     gen,
		model:   DefaultModel,
		timeout: 30 * time.Second,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond returns the model's reply to message, or Apology on any failure
// or empty reply
func (r *Responder) Respond(ctx context.Context, message string) string {
	reply, err := r.generate(ctx, message)
	if err != nil {
		r.logger.Warn("support reply failed", zap.Error(err))
		return Apology
	}
	return reply
}

func (r *Responder) generate(ctx context.Context, message string) (string, error) {
	if r.gen == nil {
		return "", errNoClient
	}
	if strings.TrimSpace(message) == "" {
		return "", errors.New("assistant: empty message")
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	resp, err := r.gen.GenerateContent(ctx, r.model, genai.Text(message), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	})
	if err != nil {
		return "", err
	}
	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", errors.New("assistant: empty reply")
	}
	return reply, nil
}
