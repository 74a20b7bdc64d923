package models

import "strings"

// TypeHint classifies an extracted field value.
type TypeHint string

const (
	HintStringShort TypeHint = "string_short"
	HintStringLong  TypeHint = "string_long"
	HintDate        TypeHint = "date"
	HintURL         TypeHint = "url"
	HintNumber      TypeHint = "number"
	HintBoolean     TypeHint = "boolean"
	HintUnknown     TypeHint = "unknown"
)

// ParseTypeHint maps free text to a TypeHint, falling back to HintUnknown.
func ParseTypeHint(s string) TypeHint {
	switch TypeHint(strings.ToLower(strings.TrimSpace(s))) {
	case HintStringShort:
		return HintStringShort
	case HintStringLong:
		return HintStringLong
	case HintDate:
		return HintDate
	case HintURL:
		return HintURL
	case HintNumber:
		return HintNumber
	case HintBoolean:
		return HintBoolean
	}
	return HintUnknown
}

// ExtractedField is one labeled value pulled out of free text by the model.
type ExtractedField struct {
	Value    string   `json:"value"`
	TypeHint TypeHint `json:"type_hint"`
}

// Sentiment is the model's overall verdict on a researched project.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment maps free text to a Sentiment, defaulting to neutral.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	}
	return SentimentNeutral
}

// ResearchResult is the structured answer of a project-research query.
// Containers are never nil, malformed provider output degrades to empties.
type ResearchResult struct {
	Summary       string    `json:"summary"`
	KeyPoints     []string  `json:"key_points"`
	OfficialLinks []string  `json:"official_links"`
	Sentiment     Sentiment `json:"sentiment"`
}

// ExtractRequest is the payload of an extraction call.
type ExtractRequest struct {
	Text string `json:"text" binding:"required"`
}

// ResearchRequest is the payload of a research call.
type ResearchRequest struct {
	Query string `json:"query" binding:"required"`
}
