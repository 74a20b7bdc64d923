package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Task is one checklist item owned by its parent airdrop.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Airdrop represents one tracked airdrop opportunity.
type Airdrop struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`

	StartDate *time.Time `json:"start_date,omitempty"`
	Deadline  *time.Time `json:"deadline,omitempty"`

	Description               string `json:"description,omitempty"`
	Notes                     string `json:"notes,omitempty"`
	WalletAddress             string `json:"wallet_address,omitempty"`
	Blockchain                string `json:"blockchain,omitempty"`
	AirdropLink               string `json:"airdrop_link,omitempty"`
	ReferralCode              string `json:"referral_code,omitempty"`
	AirdropType               string `json:"airdrop_type,omitempty"`
	InformationSource         string `json:"information_source,omitempty"`
	ParticipationRequirements string `json:"participation_requirements,omitempty"`
	UserDefinedStatus         string `json:"user_defined_status,omitempty"`

	TokenAmount *decimal.Decimal `json:"token_amount,omitempty"`

	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	ClaimDate        *time.Time `json:"claim_date,omitempty"`

	Tasks []Task `json:"tasks"`

	Status Status `json:"status"`

	// Seq orders records within an owner's collection, higher is more recent.
	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
}

// FindTask returns the index of the task with the given id, or -1.
func (a *Airdrop) FindTask(taskID string) int {
	for i := range a.Tasks {
		if a.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// Matches reports whether the airdrop passes the status filter and the
// case-insensitive substring search over name and description.
func (a *Airdrop) Matches(filter FilterStatus, term string) bool {
	if filter != FilterAll && Status(filter) != a.Status {
		return false
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Name), term) ||
		strings.Contains(strings.ToLower(a.Description), term)
}

// FallbackName builds the display name substituted when a record is created
// without one.
func FallbackName(createdAt time.Time) string {
	return fmt.Sprintf("Airdrop %s", createdAt.UTC().Format("2006-01-02 15:04:05"))
}

// TaskInput carries one checklist item on create/import payloads.
type TaskInput struct {
	Text      string `json:"text" binding:"required"`
	Completed bool   `json:"completed"`
}

// AirdropCreate is the payload for creating a new airdrop. Every field is
// optional except that user-facing forms must submit at least something, which
// the UI enforces; the store itself accepts an empty payload and substitutes a
// fallback name.
type AirdropCreate struct {
	Name      string     `json:"name" binding:"omitempty,max=200"`
	StartDate *time.Time `json:"start_date"`
	Deadline  *time.Time `json:"deadline"`

	Description               string `json:"description" binding:"omitempty,max=2000"`
	Notes                     string `json:"notes" binding:"omitempty,max=4000"`
	WalletAddress             string `json:"wallet_address"`
	Blockchain                string `json:"blockchain"`
	AirdropLink               string `json:"airdrop_link"`
	ReferralCode              string `json:"referral_code"`
	AirdropType               string `json:"airdrop_type"`
	InformationSource         string `json:"information_source"`
	ParticipationRequirements string `json:"participation_requirements"`
	UserDefinedStatus         string `json:"user_defined_status"`

	TokenAmount *decimal.Decimal `json:"token_amount"`

	RegistrationDate *time.Time `json:"registration_date"`
	ClaimDate        *time.Time `json:"claim_date"`

	Tasks []TaskInput `json:"tasks"`

	// Status is honored only on the raw bulk-import path and trusted as-is
	// there; everywhere else it is recomputed.
	Status *Status `json:"status,omitempty"`
}

// AirdropUpdate is the payload for replacing an existing record. The id comes
// from the URL, ownership and created_at stay immutable.
type AirdropUpdate struct {
	Name      string     `json:"name" binding:"omitempty,max=200"`
	StartDate *time.Time `json:"start_date"`
	Deadline  *time.Time `json:"deadline"`

	Description               string `json:"description" binding:"omitempty,max=2000"`
	Notes                     string `json:"notes" binding:"omitempty,max=4000"`
	WalletAddress             string `json:"wallet_address"`
	Blockchain                string `json:"blockchain"`
	AirdropLink               string `json:"airdrop_link"`
	ReferralCode              string `json:"referral_code"`
	AirdropType               string `json:"airdrop_type"`
	InformationSource         string `json:"information_source"`
	ParticipationRequirements string `json:"participation_requirements"`
	UserDefinedStatus         string `json:"user_defined_status"`

	TokenAmount *decimal.Decimal `json:"token_amount"`

	RegistrationDate *time.Time `json:"registration_date"`
	ClaimDate        *time.Time `json:"claim_date"`

	Tasks []TaskInput `json:"tasks"`
}

// TaskCreate is the payload for adding a checklist item.
type TaskCreate struct {
	Text string `json:"text" binding:"required,max=500"`
}

// BulkAddRequest is the raw-import payload used by external adapters.
type BulkAddRequest struct {
	Items []AirdropCreate `json:"items" binding:"required"`
}

// ListQuery carries the view parameters of a listing request.
type ListQuery struct {
	Search string       `form:"q"`
	Status FilterStatus `form:"status"`
}
