package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"airdrop-tracker-backend/internal/common/validation"
	"airdrop-tracker-backend/internal/features/ai/models"
	airdropmodels "airdrop-tracker-backend/internal/features/airdrop/models"
)

// ValidateExtractText checks the minimum length constraint of an extraction
// input.
func ValidateExtractText(text string) error {
	if len(strings.TrimSpace(text)) < minExtractLen {
		return fmt.Errorf("extraction needs at least %d characters", minExtractLen)
	}
	return nil
}

// ValidateResearchQuery checks that a research query is either long enough or
// an absolute URL.
func ValidateResearchQuery(query string) error {
	query = strings.TrimSpace(query)
	if len(query) < minResearchLen && !validation.IsAbsoluteURL(query) {
		return fmt.Errorf("research needs at least %d characters or an absolute URL", minResearchLen)
	}
	return nil
}

// ParseExtraction decodes the provider's label -> field mapping defensively.
// Entries that are not the expected {value, type_hint} shape are repaired to
// {stringified original, unknown} instead of failing the extraction.
func ParseExtraction(raw []byte) (map[string]models.ExtractedField, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(raw, &outer); err != nil {
		return nil, err
	}

	fields := make(map[string]models.ExtractedField, len(outer))
	for label, entry := range outer {
		fields[label] = parseField(entry)
	}
	return fields, nil
}

func parseField(entry json.RawMessage) models.ExtractedField {
	var shaped struct {
		Value    *string `json:"value"`
		TypeHint *string `json:"type_hint"`
	}
	if err := json.Unmarshal(entry, &shaped); err == nil && shaped.Value != nil && shaped.TypeHint != nil {
		return models.ExtractedField{
			Value:    *shaped.Value,
			TypeHint: models.ParseTypeHint(*shaped.TypeHint),
		}
	}

	// Repair: keep whatever the provider sent as a plain string.
	var asString string
	if err := json.Unmarshal(entry, &asString); err == nil {
		return models.ExtractedField{Value: asString, TypeHint: models.HintUnknown}
	}
	return models.ExtractedField{
		Value:    strings.TrimSpace(string(entry)),
		TypeHint: models.HintUnknown,
	}
}

// ParseResearch decodes a research answer, substituting empty containers and
// a neutral sentiment for anything absent or malformed.
func ParseResearch(raw []byte) *models.ResearchResult {
	var shaped struct {
		Summary       string   `json:"summary"`
		KeyPoints     []string `json:"key_points"`
		OfficialLinks []string `json:"official_links"`
		Sentiment     string   `json:"sentiment"`
	}
	// A decode failure leaves the zero value, which maps to the defaults.
	_ = json.Unmarshal(raw, &shaped)

	result := &models.ResearchResult{
		Summary:       shaped.Summary,
		KeyPoints:     shaped.KeyPoints,
		OfficialLinks: shaped.OfficialLinks,
		Sentiment:     models.ParseSentiment(shaped.Sentiment),
	}
	if result.KeyPoints == nil {
		result.KeyPoints = []string{}
	}
	if result.OfficialLinks == nil {
		result.OfficialLinks = []string{}
	}
	return result
}

// ToAirdropInput assembles a create payload from extracted fields. Labels the
// form knows about map onto their columns; everything else lands in the notes
// so no extracted information is dropped.
func ToAirdropInput(fields map[string]models.ExtractedField) *airdropmodels.AirdropCreate {
	input := &airdropmodels.AirdropCreate{}
	var leftovers []string

	for label, field := range fields {
		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		switch normalizeLabel(label) {
		case "name", "project", "project_name":
			input.Name = value
		case "description":
			input.Description = value
		case "start_date":
			input.StartDate = parseFieldDate(value)
		case "deadline", "end_date":
			input.Deadline = parseFieldDate(value)
		case "registration_date":
			input.RegistrationDate = parseFieldDate(value)
		case "claim_date":
			input.ClaimDate = parseFieldDate(value)
		case "blockchain", "chain", "network":
			input.Blockchain = value
		case "airdrop_link", "link", "url", "website":
			input.AirdropLink = value
		case "referral_code":
			input.ReferralCode = value
		case "airdrop_type", "type":
			input.AirdropType = value
		case "wallet_address", "wallet":
			input.WalletAddress = value
		case "information_source", "source":
			input.InformationSource = value
		case "participation_requirements", "requirements":
			input.ParticipationRequirements = value
		case "token_amount", "amount", "reward":
			if amount, err := decimal.NewFromString(value); err == nil && !amount.IsNegative() {
				input.TokenAmount = &amount
			} else {
				leftovers = append(leftovers, label+": "+value)
			}
		case "tasks":
			for _, segment := range strings.Split(value, ";") {
				text := strings.TrimSpace(segment)
				if text != "" {
					input.Tasks = append(input.Tasks, airdropmodels.TaskInput{Text: text})
				}
			}
		default:
			leftovers = append(leftovers, label+": "+value)
		}
	}

	input.Notes = strings.Join(leftovers, "\n")
	return input
}

func normalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, " ", "_")
	label = strings.ReplaceAll(label, "-", "_")
	return label
}

var fieldDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02.01.2006",
	"January 2, 2006",
}

func parseFieldDate(s string) *time.Time {
	for _, layout := range fieldDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}
