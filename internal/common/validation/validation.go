package validation

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xssnick/tonutils-go/address"
)

const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
	MaxNotesLength       = 4000
	MaxTaskTextLength    = 500

	MinNameLength = 1
)

// ValidateName checks an airdrop display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < MinNameLength {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("name cannot exceed %d characters", MaxNameLength)
	}
	return nil
}

// ValidateDescription checks an airdrop description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("description cannot exceed %d characters", MaxDescriptionLength)
	}
	return nil
}

// ValidateTaskText checks a checklist item text.
func ValidateTaskText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("task text cannot be empty")
	}
	if len(text) > MaxTaskTextLength {
		return fmt.Errorf("task text cannot exceed %d characters", MaxTaskTextLength)
	}
	return nil
}

// ValidateDateRange enforces startDate <= deadline when both are present.
func ValidateDateRange(startDate, deadline *time.Time) error {
	if startDate == nil || deadline == nil {
		return nil
	}
	if startDate.After(*deadline) {
		return fmt.Errorf("start date must not be after deadline")
	}
	return nil
}

// ValidateTokenAmount enforces a non-negative token amount.
func ValidateTokenAmount(amount *decimal.Decimal) error {
	if amount == nil {
		return nil
	}
	if amount.IsNegative() {
		return fmt.Errorf("token amount cannot be negative")
	}
	return nil
}

// ValidateWalletAddress checks a wallet address for the given chain. Only TON
// addresses are verified structurally, other chains accept any non-blank
// string since the tracker stores them as free-form metadata.
func ValidateWalletAddress(wallet, blockchain string) error {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return nil
	}

	switch strings.ToLower(blockchain) {
	case "ton", "the open network":
		if _, err := address.ParseAddr(wallet); err != nil {
			return fmt.Errorf("invalid TON wallet address: %w", err)
		}
	}
	return nil
}

// IsAbsoluteURL reports whether s parses as an absolute http(s) URL.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidateLink checks an optional link field.
func ValidateLink(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil
	}
	if !IsAbsoluteURL(link) {
		return fmt.Errorf("link must be an absolute http(s) URL")
	}
	return nil
}
