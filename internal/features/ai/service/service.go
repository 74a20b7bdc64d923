package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"airdrop-tracker-backend/internal/common/cache"
	apperrors "airdrop-tracker-backend/internal/common/errors"
	"airdrop-tracker-backend/internal/common/logger"
	"airdrop-tracker-backend/internal/features/ai/models"
)

const (
	// Extraction needs enough text to work with; research accepts short
	// tickers or a project URL.
	minExtractLen  = 10
	minResearchLen = 3
)

const extractPrompt = `You are a crypto airdrop tracking assistant. Extract structured fields from the text below.
Respond with a single JSON object mapping each field label to {"value": "<string>", "type_hint": "<one of string_short|string_long|date|url|number|boolean|unknown>"}.
Use snake_case labels such as name, description, start_date, deadline, blockchain, airdrop_link, token_amount, tasks (semicolon-separated), participation_requirements.
Dates as YYYY-MM-DD. Only include fields actually present in the text.

Text:
%s`

const researchPrompt = `You are a crypto airdrop research assistant. Research the project or URL below using what you know.
Respond with a single JSON object: {"summary": "<paragraph>", "key_points": ["..."], "official_links": ["..."], "sentiment": "positive|neutral|negative"}.

Project:
%s`

// AIService is the boundary to the external model provider. Parsing of its
// output is defensive: malformed shapes are repaired, never propagated.
type AIService interface {
	Extract(ctx context.Context, text string) (map[string]models.ExtractedField, error)
	Research(ctx context.Context, query string) (*models.ResearchResult, error)
}

type aiService struct {
	client   *genai.Client
	model    string
	cache    *cache.CacheService
	cacheTTL time.Duration
}

// NewAIService builds the Gemini-backed service. The cache is optional and
// only used for research answers, which are expensive and stable.
func NewAIService(ctx context.Context, apiKey, model string, cacheService *cache.CacheService, cacheTTL time.Duration) (AIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("AI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &aiService{
		client:   client,
		model:    model,
		cache:    cacheService,
		cacheTTL: cacheTTL,
	}, nil
}

func (s *aiService) Extract(ctx context.Context, text string) (map[string]models.ExtractedField, error) {
	if err := ValidateExtractText(text); err != nil {
		return nil, apperrors.NewValidationError("text", err.Error())
	}

	raw, err := s.generateJSON(ctx, fmt.Sprintf(extractPrompt, text))
	if err != nil {
		return nil, apperrors.NewAIAPIError("extract", err)
	}

	fields, err := ParseExtraction([]byte(raw))
	if err != nil {
		// The whole answer was not even a JSON object; degrade to empty
		// rather than surfacing a provider quirk as a hard failure.
		logger.Warn().Err(err).Msg("Provider returned non-object extraction, degrading to empty")
		return map[string]models.ExtractedField{}, nil
	}

	return fields, nil
}

func (s *aiService) Research(ctx context.Context, query string) (*models.ResearchResult, error) {
	query = strings.TrimSpace(query)
	if err := ValidateResearchQuery(query); err != nil {
		return nil, apperrors.NewValidationError("query", err.Error())
	}

	cacheKey := researchCacheKey(query)
	if s.cache != nil {
		var cached models.ResearchResult
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			logger.Debug().Str("query", query).Msg("Research served from cache")
			return &cached, nil
		}
	}

	raw, err := s.generateJSON(ctx, fmt.Sprintf(researchPrompt, query))
	if err != nil {
		return nil, apperrors.NewAIAPIError("research", err)
	}

	result := ParseResearch([]byte(raw))

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache research answer")
		}
	}

	return result, nil
}

func (s *aiService) generateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

func researchCacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(query)))
	return "ai:research:" + hex.EncodeToString(sum[:8])
}
