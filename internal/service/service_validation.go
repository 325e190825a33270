package service

import (
	"context"

	"github.com/MKhiriev/go-lead-keeper/internal/validators"
	"github.com/MKhiriev/go-lead-keeper/models"
)

// AuthValidationService validates registration and login payloads before
// they reach the wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService(validator validators.Validator) AuthServiceWrapper {
	return &AuthValidationService{validator: validator}
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, user models.UserCreate) (models.User, error) {
	if err := v.validator.Validate(ctx, user); err != nil {
		return models.User{}, err
	}
	return v.inner.RegisterUser(ctx, user)
}

func (v *AuthValidationService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	if err := v.validator.Validate(ctx, credentials); err != nil {
		return models.User{}, err
	}
	return v.inner.Login(ctx, credentials)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, token string) (models.User, error) {
	return v.inner.Authenticate(ctx, token)
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

// LeadValidationService validates every lead of a create batch and the
// fields of an update.
type LeadValidationService struct {
	inner     LeadService
	validator validators.Validator
}

func NewLeadValidationService(validator validators.Validator) LeadServiceWrapper {
	return &LeadValidationService{validator: validator}
}

func (v *LeadValidationService) SearchLeads(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	return v.inner.SearchLeads(ctx, filter)
}

// CreateLeads reports every invalid item at once. A single object is
// located without an index, list items with theirs.
func (v *LeadValidationService) CreateLeads(ctx context.Context, leads models.Batch[models.LeadCreate]) ([]models.Lead, error) {
	if err := validateBatch(ctx, v.validator, leads); err != nil {
		return nil, err
	}
	return v.inner.CreateLeads(ctx, leads)
}

func (v *LeadValidationService) GetLead(ctx context.Context, leadID int64) (models.Lead, error) {
	return v.inner.GetLead(ctx, leadID)
}

// UpdateLead rejects null for the columns that cannot be cleared.
func (v *LeadValidationService) UpdateLead(ctx context.Context, leadID int64, update models.LeadUpdate) (models.Lead, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Lead{}, err
	}
	return v.inner.UpdateLead(ctx, leadID, update)
}

func (v *LeadValidationService) DeleteLead(ctx context.Context, leadID int64) error {
	return v.inner.DeleteLead(ctx, leadID)
}

func (v *LeadValidationService) Wrap(inner LeadService) LeadService {
	v.inner = inner
	return v
}

// ActivityValidationService validates every activity of an add batch.
type ActivityValidationService struct {
	inner     ActivityService
	validator validators.Validator
}

func NewActivityValidationService(validator validators.Validator) ActivityServiceWrapper {
	return &ActivityValidationService{validator: validator}
}

func (v *ActivityValidationService) AddActivities(ctx context.Context, leadID int64, actor models.User, activities models.Batch[models.ActivityCreate]) ([]models.Activity, error) {
	if err := validateBatch(ctx, v.validator, activities); err != nil {
		return nil, err
	}
	return v.inner.AddActivities(ctx, leadID, actor, activities)
}

func (v *ActivityValidationService) ListActivities(ctx context.Context, leadID int64) ([]models.Activity, error) {
	return v.inner.ListActivities(ctx, leadID)
}

func (v *ActivityValidationService) Wrap(inner ActivityService) ActivityService {
	v.inner = inner
	return v
}

func validateBatch[T any](ctx context.Context, validator validators.Validator, batch models.Batch[T]) error {
	if batch.Many {
		return validator.Validate(ctx, batch.Items)
	}
	if batch.Len() == 1 {
		return validator.Validate(ctx, batch.Items[0])
	}
	return nil
}
