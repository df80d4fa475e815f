package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/metakocka"
	"github.com/salesflow/crm/pkg/tracing"
)

const productPageSize = 100

type ERPService struct {
	repo        domain.ERPRepository
	client      domain.MetakockaClient
	contacts    domain.ContactRepository
	pipelines   domain.PipelineRepository
	authService domain.AuthService
	secretKey   string
	logger      logger.Logger
	now         func() time.Time
}

func NewERPService(repo domain.ERPRepository, client domain.MetakockaClient, contacts domain.ContactRepository, pipelines domain.PipelineRepository, authService domain.AuthService, secretKey string, log logger.Logger) *ERPService {
	return &ERPService{
		repo:        repo,
		client:      client,
		contacts:    contacts,
		pipelines:   pipelines,
		authService: authService,
		secretKey:   secretKey,
		logger:      log,
		now:         time.Now,
	}
}

var _ domain.ERPService = (*ERPService)(nil)

func (s *ERPService) SaveCredentials(ctx context.Context, organizationID string, req domain.SaveMetakockaRequest) (*domain.MetakockaCredentials, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	creds := &domain.MetakockaCredentials{
		OrganizationID: organizationID,
		CompanyID:      req.CompanyID,
		SecretKey:      req.SecretKey,
		Enabled:        true,
	}
	if err := s.client.TestConnection(ctx, creds.API()); err != nil {
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Warn("Metakocka credentials rejected")
		return nil, domain.NewValidationError(fmt.Sprintf("Metakocka connection failed: %s", err.Error()))
	}
	if err := creds.EncryptSecretKey(s.secretKey); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	creds.CreatedAt = now
	creds.UpdatedAt = now
	if err := s.repo.SaveCredentials(ctx, creds); err != nil {
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Error("Failed to save Metakocka credentials")
		return nil, err
	}
	return creds, nil
}

func (s *ERPService) GetCredentials(ctx context.Context, organizationID string) (*domain.MetakockaCredentials, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetCredentials(ctx, organizationID)
}

func (s *ERPService) DeleteCredentials(ctx context.Context, organizationID string) error {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return err
	}
	if err := domain.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return err
	}
	return s.repo.DeleteCredentials(ctx, organizationID)
}

// credentials loads and decrypts the organization's connection for outbound calls.
func (s *ERPService) credentials(ctx context.Context, organizationID string) (*domain.MetakockaCredentials, error) {
	creds, err := s.repo.GetCredentials(ctx, organizationID)
	if domain.IsNotFound(err) {
		return nil, domain.NewValidationError("Metakocka is not connected for this organization")
	}
	if err != nil {
		return nil, err
	}
	if !creds.Enabled {
		return nil, domain.NewValidationError("Metakocka integration is disabled")
	}
	if err := creds.DecryptSecretKey(s.secretKey); err != nil {
		return nil, err
	}
	return creds, nil
}

func (s *ERPService) SyncProducts(ctx context.Context, organizationID string) (*domain.ProductSyncResult, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ERPService", "SyncProducts")
	defer span.End()

	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	creds, err := s.credentials(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	result := &domain.ProductSyncResult{}
	now := s.now().UTC()
	for offset := 0; ; offset += productPageSize {
		page, err := s.client.ListProducts(ctx, creds.API(), offset, productPageSize)
		if err != nil {
			tracing.MarkSpanError(ctx, err)
			s.logger.WithFields(map[string]interface{}{
				"organization_id": organizationID,
				"offset":          offset,
				"error":           err.Error(),
			}).Error("Metakocka product sync failed")
			return nil, s.upstreamError(err)
		}
		result.Fetched += len(page)

		products := make([]*domain.ERPProduct, 0, len(page))
		for _, p := range page {
			products = append(products, &domain.ERPProduct{
				OrganizationID: organizationID,
				ExternalID:     p.MkID,
				Code:           p.Code,
				Name:           p.Name,
				Unit:           p.Unit,
				Price:          p.SalesPrice,
				Stock:          p.Stock,
				SyncedAt:       now,
			})
		}
		if len(products) > 0 {
			n, err := s.repo.UpsertProducts(ctx, organizationID, products)
			if err != nil {
				return nil, err
			}
			result.Upserted += n
		}
		if len(page) < productPageSize {
			break
		}
	}

	if err := s.repo.TouchLastSync(ctx, organizationID, now); err != nil {
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Warn("Failed to record Metakocka sync time")
	}
	s.logger.WithFields(map[string]interface{}{
		"organization_id": organizationID,
		"fetched":         result.Fetched,
		"upserted":        result.Upserted,
	}).Info("Metakocka products synced")
	return result, nil
}

func (s *ERPService) ListProducts(ctx context.Context, organizationID, search string, limit int) ([]*domain.ERPProduct, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.repo.ListProducts(ctx, organizationID, search, limit)
}

func partnerFromContact(c *domain.Contact) metakocka.Partner {
	p := metakocka.Partner{
		Name:         c.FullName(),
		Email:        c.Email,
		Phone:        c.Phone,
		ContactName:  c.FullName(),
		BusinessType: "individual",
	}
	if c.Company != "" {
		p.Name = c.Company
		p.BusinessType = "business"
	}
	if p.Name == "" {
		p.Name = c.Email
	}
	return p
}

// PushContact creates the contact as a Metakocka partner and remembers the partner id.
func (s *ERPService) PushContact(ctx context.Context, organizationID, contactID string) (*domain.Contact, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	contact, err := s.contacts.GetByID(ctx, organizationID, contactID)
	if err != nil {
		return nil, err
	}
	if contact.MetakockaPartnerID != nil {
		return nil, domain.NewConflictError("contact %s is already linked to Metakocka partner %s", contact.ID, *contact.MetakockaPartnerID)
	}
	creds, err := s.credentials(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	partnerID, err := s.client.AddPartner(ctx, creds.API(), partnerFromContact(contact))
	if err != nil {
		s.logger.WithField("contact_id", contact.ID).WithField("error", err.Error()).Error("Failed to push contact to Metakocka")
		return nil, s.upstreamError(err)
	}

	contact.MetakockaPartnerID = &partnerID
	contact.UpdatedAt = s.now().UTC()
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// PushOpportunityOrder turns a won opportunity into a Metakocka sales order.
// Without explicit lines the opportunity value becomes a single line.
func (s *ERPService) PushOpportunityOrder(ctx context.Context, organizationID, opportunityID string, req domain.PushOrderRequest) (*domain.Opportunity, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	opp, err := s.pipelines.GetOpportunity(ctx, organizationID, opportunityID)
	if err != nil {
		return nil, err
	}
	if opp.MetakockaOrderID != nil {
		return nil, domain.NewConflictError("opportunity already has Metakocka order %s", *opp.MetakockaOrderID)
	}
	if opp.Status != domain.OpportunityWon {
		return nil, domain.NewConflictError("only won opportunities can become orders (status is %s)", opp.Status)
	}
	if opp.ContactID == nil {
		return nil, domain.NewValidationError("opportunity needs a contact to create an order")
	}
	contact, err := s.contacts.GetByID(ctx, organizationID, *opp.ContactID)
	if err != nil {
		return nil, err
	}

	lines := req.Lines
	if len(lines) == 0 {
		lines = []metakocka.OrderLine{{Name: opp.Title, Amount: 1, Price: float64(opp.Value) / 100}}
	}
	for _, l := range lines {
		if l.Amount <= 0 {
			return nil, domain.NewValidationError("order line amount must be positive")
		}
	}

	creds, err := s.credentials(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	orderID, err := s.client.PutSalesOrder(ctx, creds.API(), metakocka.SalesOrder{
		Title:     opp.Title,
		Partner:   partnerFromContact(contact),
		Lines:     lines,
		Currency:  opp.Currency,
		DocDate:   s.now().UTC(),
		Reference: opp.ID,
	})
	if err != nil {
		s.logger.WithField("opportunity_id", opp.ID).WithField("error", err.Error()).Error("Failed to push order to Metakocka")
		return nil, s.upstreamError(err)
	}

	opp.MetakockaOrderID = &orderID
	opp.UpdatedAt = s.now().UTC()
	if err := s.pipelines.UpdateOpportunity(ctx, opp); err != nil {
		return nil, err
	}
	return opp, nil
}

// upstreamError surfaces Metakocka's own rejection messages as validation errors.
func (s *ERPService) upstreamError(err error) error {
	var apiErr *metakocka.APIError
	if errors.As(err, &apiErr) {
		return domain.NewValidationError(apiErr.Error())
	}
	return err
}
