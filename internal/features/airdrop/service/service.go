package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "airdrop-tracker-backend/internal/common/errors"
	"airdrop-tracker-backend/internal/common/logger"
	"airdrop-tracker-backend/internal/common/validation"
	"airdrop-tracker-backend/internal/features/airdrop/models"
	"airdrop-tracker-backend/internal/features/airdrop/repository"
)

// BulkResult reports the outcome of a bulk ingestion.
type BulkResult struct {
	Added int      `json:"added"`
	IDs   []string `json:"ids"`
}

// AirdropService is the collection store: the single mutation and query
// surface over a user's airdrop records. Status is re-derived on every
// mutation; only the raw bulk path may carry a caller-supplied status.
type AirdropService interface {
	Create(ctx context.Context, ownerID string, input *models.AirdropCreate) (*models.Airdrop, error)
	Get(ctx context.Context, ownerID, id string) (*models.Airdrop, error)
	Update(ctx context.Context, ownerID, id string, input *models.AirdropUpdate) (*models.Airdrop, error)
	Delete(ctx context.Context, ownerID, id string) error

	AddTask(ctx context.Context, ownerID, airdropID string, input *models.TaskCreate) (*models.Airdrop, error)
	ToggleTask(ctx context.Context, ownerID, airdropID, taskID string) (*models.Airdrop, error)
	RemoveTask(ctx context.Context, ownerID, airdropID, taskID string) (*models.Airdrop, error)

	BulkAdd(ctx context.Context, ownerID string, items []models.AirdropCreate) (*BulkResult, error)

	List(ctx context.Context, ownerID string, query models.ListQuery) ([]*models.Airdrop, error)
}

type airdropService struct {
	repo repository.AirdropRepository
	now  func() time.Time
}

func NewAirdropService(repo repository.AirdropRepository) AirdropService {
	return &airdropService{
		repo: repo,
		now:  time.Now,
	}
}

// NewAirdropServiceWithClock injects the evaluation clock, used by tests.
func NewAirdropServiceWithClock(repo repository.AirdropRepository, now func() time.Time) AirdropService {
	return &airdropService{
		repo: repo,
		now:  now,
	}
}

func (s *airdropService) Create(ctx context.Context, ownerID string, input *models.AirdropCreate) (*models.Airdrop, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	airdrop, err := s.buildAirdrop(ctx, ownerID, input, 0)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, airdrop); err != nil {
		return nil, apperrors.NewStorageError("create airdrop", err)
	}

	logger.Debug().
		Str("airdrop_id", airdrop.ID).
		Str("owner_id", ownerID).
		Str("status", string(airdrop.Status)).
		Msg("Airdrop created")

	return airdrop, nil
}

func (s *airdropService) Get(ctx context.Context, ownerID, id string) (*models.Airdrop, error) {
	return s.getOwned(ctx, ownerID, id)
}

func (s *airdropService) Update(ctx context.Context, ownerID, id string, input *models.AirdropUpdate) (*models.Airdrop, error) {
	if err := validation.ValidateDateRange(input.StartDate, input.Deadline); err != nil {
		return nil, apperrors.NewValidationError("start_date", err.Error())
	}
	if err := validation.ValidateTokenAmount(input.TokenAmount); err != nil {
		return nil, apperrors.NewValidationError("token_amount", err.Error())
	}
	if err := validation.ValidateWalletAddress(input.WalletAddress, input.Blockchain); err != nil {
		return nil, apperrors.NewValidationError("wallet_address", err.Error())
	}
	if err := validation.ValidateLink(input.AirdropLink); err != nil {
		return nil, apperrors.NewValidationError("airdrop_link", err.Error())
	}

	airdrop, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	now := s.now()

	airdrop.Name = input.Name
	if airdrop.Name == "" {
		airdrop.Name = models.FallbackName(airdrop.CreatedAt)
	}
	airdrop.StartDate = input.StartDate
	airdrop.Deadline = input.Deadline
	airdrop.Description = input.Description
	airdrop.Notes = input.Notes
	airdrop.WalletAddress = input.WalletAddress
	airdrop.Blockchain = input.Blockchain
	airdrop.AirdropLink = input.AirdropLink
	airdrop.ReferralCode = input.ReferralCode
	airdrop.AirdropType = input.AirdropType
	airdrop.InformationSource = input.InformationSource
	airdrop.ParticipationRequirements = input.ParticipationRequirements
	airdrop.UserDefinedStatus = input.UserDefinedStatus
	airdrop.TokenAmount = input.TokenAmount
	airdrop.RegistrationDate = input.RegistrationDate
	airdrop.ClaimDate = input.ClaimDate
	airdrop.Tasks = buildTasks(input.Tasks, airdrop.Tasks)
	airdrop.Status = models.DeriveStatus(airdrop.Tasks, airdrop.StartDate, airdrop.Deadline, now)

	if err := s.repo.Update(ctx, airdrop); err != nil {
		return nil, translateRepoErr(err, id)
	}

	return airdrop, nil
}

func (s *airdropService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return translateRepoErr(err, id)
	}

	logger.Debug().Str("airdrop_id", id).Str("owner_id", ownerID).Msg("Airdrop deleted")
	return nil
}

func (s *airdropService) AddTask(ctx context.Context, ownerID, airdropID string, input *models.TaskCreate) (*models.Airdrop, error) {
	if err := validation.ValidateTaskText(input.Text); err != nil {
		return nil, apperrors.NewValidationError("text", err.Error())
	}

	airdrop, err := s.getOwned(ctx, ownerID, airdropID)
	if err != nil {
		return nil, err
	}

	airdrop.Tasks = append(airdrop.Tasks, models.Task{
		ID:        uuid.New().String(),
		Text:      input.Text,
		Completed: false,
	})
	airdrop.Status = models.DeriveStatus(airdrop.Tasks, airdrop.StartDate, airdrop.Deadline, s.now())

	if err := s.repo.Update(ctx, airdrop); err != nil {
		return nil, translateRepoErr(err, airdropID)
	}

	return airdrop, nil
}

func (s *airdropService) ToggleTask(ctx context.Context, ownerID, airdropID, taskID string) (*models.Airdrop, error) {
	airdrop, err := s.getOwned(ctx, ownerID, airdropID)
	if err != nil {
		return nil, err
	}

	idx := airdrop.FindTask(taskID)
	if idx < 0 {
		return nil, apperrors.NewTaskNotFoundError(airdropID, taskID)
	}

	airdrop.Tasks[idx].Completed = !airdrop.Tasks[idx].Completed
	airdrop.Status = models.DeriveStatus(airdrop.Tasks, airdrop.StartDate, airdrop.Deadline, s.now())

	if err := s.repo.Update(ctx, airdrop); err != nil {
		return nil, translateRepoErr(err, airdropID)
	}

	return airdrop, nil
}

func (s *airdropService) RemoveTask(ctx context.Context, ownerID, airdropID, taskID string) (*models.Airdrop, error) {
	airdrop, err := s.getOwned(ctx, ownerID, airdropID)
	if err != nil {
		return nil, err
	}

	idx := airdrop.FindTask(taskID)
	if idx < 0 {
		return nil, apperrors.NewTaskNotFoundError(airdropID, taskID)
	}

	airdrop.Tasks = append(airdrop.Tasks[:idx], airdrop.Tasks[idx+1:]...)
	airdrop.Status = models.DeriveStatus(airdrop.Tasks, airdrop.StartDate, airdrop.Deadline, s.now())

	if err := s.repo.Update(ctx, airdrop); err != nil {
		return nil, translateRepoErr(err, airdropID)
	}

	return airdrop, nil
}

// BulkAdd ingests items with create semantics. The imported block keeps its
// input order in the newest-first listing and lands ahead of pre-existing
// records. Rows committed before a failing row stay committed.
func (s *airdropService) BulkAdd(ctx context.Context, ownerID string, items []models.AirdropCreate) (*BulkResult, error) {
	result := &BulkResult{}
	if len(items) == 0 {
		return result, nil
	}

	// Reserve a sequence block up front and hand the highest number to the
	// first item so the batch reads top to bottom in input order.
	last, err := s.repo.NextSeq(ctx, int64(len(items)))
	if err != nil {
		return result, apperrors.NewStorageError("reserve sequence block", err)
	}

	for i := range items {
		if err := validateCreate(&items[i]); err != nil {
			return result, err
		}
		airdrop, err := s.buildAirdrop(ctx, ownerID, &items[i], last-int64(i))
		if err != nil {
			return result, err
		}
		if err := s.repo.Create(ctx, airdrop); err != nil {
			return result, apperrors.NewStorageError("bulk create airdrop", err)
		}
		result.Added++
		result.IDs = append(result.IDs, airdrop.ID)
	}

	logger.Info().Int("added", result.Added).Str("owner_id", ownerID).Msg("Bulk ingestion finished")
	return result, nil
}

func (s *airdropService) List(ctx context.Context, ownerID string, query models.ListQuery) ([]*models.Airdrop, error) {
	all, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NewStorageError("list airdrops", err)
	}

	filter := query.Status
	if filter == "" {
		filter = models.FilterAll
	}

	// Linear scan is fine at the expected collection sizes.
	res := make([]*models.Airdrop, 0, len(all))
	for _, airdrop := range all {
		if airdrop.Matches(filter, query.Search) {
			res = append(res, airdrop)
		}
	}

	return res, nil
}

// buildAirdrop constructs a record from a create payload. seq == 0 means
// reserve a fresh sequence number; bulk ingestion passes pre-reserved ones.
func (s *airdropService) buildAirdrop(ctx context.Context, ownerID string, input *models.AirdropCreate, seq int64) (*models.Airdrop, error) {
	if seq == 0 {
		var err error
		seq, err = s.repo.NextSeq(ctx, 1)
		if err != nil {
			return nil, apperrors.NewStorageError("reserve sequence", err)
		}
	}

	now := s.now()

	airdrop := &models.Airdrop{
		ID:                        uuid.New().String(),
		OwnerID:                   ownerID,
		Name:                      input.Name,
		StartDate:                 input.StartDate,
		Deadline:                  input.Deadline,
		Description:               input.Description,
		Notes:                     input.Notes,
		WalletAddress:             input.WalletAddress,
		Blockchain:                input.Blockchain,
		AirdropLink:               input.AirdropLink,
		ReferralCode:              input.ReferralCode,
		AirdropType:               input.AirdropType,
		InformationSource:         input.InformationSource,
		ParticipationRequirements: input.ParticipationRequirements,
		UserDefinedStatus:         input.UserDefinedStatus,
		TokenAmount:               input.TokenAmount,
		RegistrationDate:          input.RegistrationDate,
		ClaimDate:                 input.ClaimDate,
		Tasks:                     buildTasks(input.Tasks, nil),
		Seq:                       seq,
		CreatedAt:                 now,
	}

	if airdrop.Name == "" {
		airdrop.Name = models.FallbackName(now)
	}

	if input.Status != nil {
		// Raw import path: supplied status is trusted as-is.
		airdrop.Status = *input.Status
	} else {
		airdrop.Status = models.DeriveStatus(airdrop.Tasks, airdrop.StartDate, airdrop.Deadline, now)
	}

	return airdrop, nil
}

// buildTasks converts task inputs, keeping ids of tasks whose text matches an
// existing one so update payloads do not churn identifiers. Each existing id is
// reused at most once; repeated texts past that get fresh ids.
func buildTasks(inputs []models.TaskInput, existing []models.Task) []models.Task {
	used := make(map[string]bool, len(existing))
	tasks := make([]models.Task, 0, len(inputs))
	for _, in := range inputs {
		id := ""
		for _, old := range existing {
			if old.Text == in.Text && !used[old.ID] {
				id = old.ID
				used[old.ID] = true
				break
			}
		}
		if id == "" {
			id = uuid.New().String()
		}
		tasks = append(tasks, models.Task{
			ID:        id,
			Text:      in.Text,
			Completed: in.Completed,
		})
	}
	return tasks
}

func validateCreate(input *models.AirdropCreate) error {
	if input.Name != "" {
		if err := validation.ValidateName(input.Name); err != nil {
			return apperrors.NewValidationError("name", err.Error())
		}
	}
	if err := validation.ValidateDateRange(input.StartDate, input.Deadline); err != nil {
		return apperrors.NewValidationError("start_date", err.Error())
	}
	if err := validation.ValidateTokenAmount(input.TokenAmount); err != nil {
		return apperrors.NewValidationError("token_amount", err.Error())
	}
	if err := validation.ValidateWalletAddress(input.WalletAddress, input.Blockchain); err != nil {
		return apperrors.NewValidationError("wallet_address", err.Error())
	}
	if err := validation.ValidateLink(input.AirdropLink); err != nil {
		return apperrors.NewValidationError("airdrop_link", err.Error())
	}
	return nil
}

// getOwned fetches a record and confirms ownership. Records of other owners
// read as not found so ids do not leak across sessions.
func (s *airdropService) getOwned(ctx context.Context, ownerID, id string) (*models.Airdrop, error) {
	airdrop, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoErr(err, id)
	}
	if airdrop.OwnerID != ownerID {
		return nil, apperrors.NewAirdropNotFoundError(id)
	}
	return airdrop, nil
}

func translateRepoErr(err error, id string) error {
	if errors.Is(err, repository.ErrAirdropNotFound) {
		return apperrors.NewAirdropNotFoundError(id)
	}
	return apperrors.NewStorageError("airdrop repository", err)
}
