package validation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"airdrop-tracker-backend/internal/common/validation"
)

func TestValidateName(t *testing.T) {
	assert.NoError(t, validation.ValidateName("zkSync Era"))
	assert.Error(t, validation.ValidateName(""))
	assert.Error(t, validation.ValidateName("   "))
	assert.Error(t, validation.ValidateName(strings.Repeat("a", validation.MaxNameLength+1)))
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, validation.ValidateDescription(""))
	assert.NoError(t, validation.ValidateDescription("testnet tasks, bridge twice"))
	assert.Error(t, validation.ValidateDescription(strings.Repeat("a", validation.MaxDescriptionLength+1)))
}

func TestValidateTaskText(t *testing.T) {
	assert.NoError(t, validation.ValidateTaskText("Bridge 0.1 ETH"))
	assert.Error(t, validation.ValidateTaskText(""))
	assert.Error(t, validation.ValidateTaskText("  "))
	assert.Error(t, validation.ValidateTaskText(strings.Repeat("a", validation.MaxTaskTextLength+1)))
}

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, validation.ValidateDateRange(nil, nil))
	assert.NoError(t, validation.ValidateDateRange(&start, nil))
	assert.NoError(t, validation.ValidateDateRange(nil, &deadline))
	assert.NoError(t, validation.ValidateDateRange(&start, &deadline))
	assert.NoError(t, validation.ValidateDateRange(&start, &start))
	assert.Error(t, validation.ValidateDateRange(&deadline, &start))
}

func TestValidateTokenAmount(t *testing.T) {
	positive := decimal.NewFromFloat(12.5)
	zero := decimal.Zero
	negative := decimal.NewFromInt(-1)

	assert.NoError(t, validation.ValidateTokenAmount(nil))
	assert.NoError(t, validation.ValidateTokenAmount(&positive))
	assert.NoError(t, validation.ValidateTokenAmount(&zero))
	assert.Error(t, validation.ValidateTokenAmount(&negative))
}

func TestValidateWalletAddress(t *testing.T) {
	// Non-TON chains keep whatever the user typed.
	assert.NoError(t, validation.ValidateWalletAddress("0xdeadbeef", "ethereum"))
	assert.NoError(t, validation.ValidateWalletAddress("", "ton"))
	assert.Error(t, validation.ValidateWalletAddress("not-a-ton-address", "ton"))
	assert.Error(t, validation.ValidateWalletAddress("not-a-ton-address", "The Open Network"))
}

func TestIsAbsoluteURL(t *testing.T) {
	assert.True(t, validation.IsAbsoluteURL("https://zksync.io"))
	assert.True(t, validation.IsAbsoluteURL("http://example.com/path?x=1"))
	assert.False(t, validation.IsAbsoluteURL("zksync.io"))
	assert.False(t, validation.IsAbsoluteURL("ftp://example.com"))
	assert.False(t, validation.IsAbsoluteURL(""))
	assert.False(t, validation.IsAbsoluteURL("/relative/path"))
}

func TestValidateLink(t *testing.T) {
	assert.NoError(t, validation.ValidateLink(""))
	assert.NoError(t, validation.ValidateLink("https://airdrops.io/zksync"))
	assert.Error(t, validation.ValidateLink("airdrops.io/zksync"))
}
