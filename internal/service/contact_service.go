package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/tracing"
)

const maxImportBatch = 1000

type ContactService struct {
	repo          domain.ContactRepository
	emailRepo     domain.EmailRepository
	authService   domain.AuthService
	subscriptions domain.SubscriptionService
	logger        logger.Logger
}

func NewContactService(
	repo domain.ContactRepository,
	emailRepo domain.EmailRepository,
	authService domain.AuthService,
	subscriptions domain.SubscriptionService,
	logger logger.Logger,
) *ContactService {
	return &ContactService{
		repo:          repo,
		emailRepo:     emailRepo,
		authService:   authService,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

var _ domain.ContactService = (*ContactService)(nil)

func (s *ContactService) List(ctx context.Context, req domain.ListContactsRequest) (*domain.ListContactsResponse, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, req)
}

func (s *ContactService) Create(ctx context.Context, organizationID string, contact *domain.Contact) (*domain.Contact, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ContactService", "Create")
	defer span.End()

	ctx, user, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	contact.Normalize()
	if err := contact.Validate(); err != nil {
		return nil, err
	}
	if err := s.subscriptions.CheckLimit(ctx, organizationID, domain.ResourceContacts, 1); err != nil {
		return nil, err
	}

	contact.ID = ""
	contact.OrganizationID = organizationID
	if contact.OwnerID == nil {
		contact.OwnerID = &user.ID
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Error("Failed to create contact")
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) Get(ctx context.Context, organizationID, id string) (*domain.Contact, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, organizationID, id)
}

func (s *ContactService) Update(ctx context.Context, organizationID, id string, req domain.UpdateContactRequest) (*domain.Contact, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	contact, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	req.Apply(contact)
	contact.Normalize()
	if err := contact.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, contact); err != nil {
		s.logger.WithField("contact_id", id).WithField("error", err.Error()).Error("Failed to update contact")
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, organizationID, id string) error {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, organizationID, id)
}

// Import validates every row, reports the invalid ones and upserts the rest by email in one transaction.
func (s *ContactService) Import(ctx context.Context, organizationID string, req domain.ImportContactsRequest) (*domain.ImportContactsResult, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ContactService", "Import")
	defer span.End()

	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if len(req.Contacts) == 0 {
		return nil, domain.NewValidationError("contacts are required")
	}
	if len(req.Contacts) > maxImportBatch {
		return nil, domain.NewValidationError(fmt.Sprintf("at most %d contacts per import", maxImportBatch))
	}

	result := &domain.ImportContactsResult{}
	valid := make([]*domain.Contact, 0, len(req.Contacts))
	seen := make(map[string]bool, len(req.Contacts))
	for i, c := range req.Contacts {
		if c == nil {
			continue
		}
		c.Normalize()
		if c.Source == domain.ContactSourceManual {
			c.Source = domain.ContactSourceImport
		}
		if c.Email == "" {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: email is required for import", i))
			continue
		}
		if err := c.Validate(); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", i, err.Error()))
			continue
		}
		if seen[c.Email] {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: duplicate email %s", i, c.Email))
			continue
		}
		seen[c.Email] = true
		c.OrganizationID = organizationID
		valid = append(valid, c)
	}
	if len(valid) == 0 {
		return result, nil
	}

	// worst case every row is new
	if err := s.subscriptions.CheckLimit(ctx, organizationID, domain.ResourceContacts, int64(len(valid))); err != nil {
		return nil, err
	}

	created, updated, err := s.repo.BulkUpsert(ctx, organizationID, valid)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Error("Contact import failed")
		return nil, err
	}
	result.Created = created
	result.Updated = updated

	s.logger.WithFields(map[string]interface{}{
		"organization_id": organizationID,
		"created":         created,
		"updated":         updated,
		"failed":          result.Failed,
	}).Info("Contacts imported")
	return result, nil
}

// ListEmails returns messages linked to the contact or exchanged with its address.
func (s *ContactService) ListEmails(ctx context.Context, organizationID, id string, page domain.Page) (*domain.ListEmailsResponse, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	contact, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	req := domain.ListEmailsRequest{
		OrganizationID: organizationID,
		ContactID:      contact.ID,
		Page:           page,
	}
	if contact.Email != "" {
		req.Addresses = []string{contact.Email}
	}
	return s.emailRepo.List(ctx, req)
}

// LinkMessage attaches a synced message to a contact by address, creating the contact when the
// organization enables it. Returns nil when no contact matches.
func (s *ContactService) LinkMessage(ctx context.Context, org *domain.Organization, addresses []string, at time.Time) (*domain.Contact, error) {
	if len(addresses) == 0 {
		return nil, nil
	}
	found, err := s.repo.FindByEmails(ctx, org.ID, addresses)
	if err != nil {
		return nil, err
	}
	for _, addr := range addresses {
		if c, ok := found[addr]; ok {
			if c.LastContactedAt == nil || c.LastContactedAt.Before(at) {
				if err := s.repo.TouchLastContacted(ctx, org.ID, c.ID, at); err != nil {
					return nil, err
				}
				c.LastContactedAt = &at
			}
			return c, nil
		}
	}

	if !org.Settings.AutoCreateContacts {
		return nil, nil
	}
	if err := s.subscriptions.CheckLimit(ctx, org.ID, domain.ResourceContacts, 1); err != nil {
		s.logger.WithField("organization_id", org.ID).Debug("Skipping contact auto-create, plan limit reached")
		return nil, nil
	}
	c := &domain.Contact{
		OrganizationID:  org.ID,
		Email:           addresses[0],
		Source:          domain.ContactSourceEmailSync,
		LastContactedAt: &at,
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, nil
	}
	if err := s.repo.Create(ctx, c); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			// created concurrently by another sync
			return s.repo.GetByEmail(ctx, org.ID, c.Email)
		}
		return nil, err
	}
	return c, nil
}
