package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/service/llm"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/tracing"
)

const (
	maxSuggestions    = 10
	maxEnrichBodySize = 2 << 20
	enrichTimeout     = 15 * time.Second
)

const sourcingSystemPrompt = `You are a procurement assistant. Suggest real suppliers that match the request.
Answer with JSON: {"suppliers": [{"name": string, "website": string, "country": string, "reason": string}]}`

type SupplierService struct {
	repo        domain.SupplierRepository
	ai          domain.AIService
	httpClient  domain.HTTPClient
	authService domain.AuthService
	logger      logger.Logger
	now         func() time.Time
}

func NewSupplierService(repo domain.SupplierRepository, ai domain.AIService, httpClient domain.HTTPClient, authService domain.AuthService, log logger.Logger) *SupplierService {
	if httpClient == nil {
		httpClient = tracing.WrapHTTPClient(&http.Client{Timeout: enrichTimeout})
	}
	return &SupplierService{
		repo:        repo,
		ai:          ai,
		httpClient:  httpClient,
		authService: authService,
		logger:      log,
		now:         time.Now,
	}
}

var _ domain.SupplierService = (*SupplierService)(nil)

func (s *SupplierService) Create(ctx context.Context, organizationID string, supplier *domain.Supplier) (*domain.Supplier, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	supplier.ID = ""
	supplier.OrganizationID = organizationID
	if err := supplier.Validate(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now
	if err := s.repo.Create(ctx, supplier); err != nil {
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Error("Failed to create supplier")
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Get(ctx context.Context, organizationID, id string) (*domain.Supplier, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, organizationID, id)
}

func (s *SupplierService) List(ctx context.Context, organizationID, category string) ([]*domain.Supplier, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, organizationID, category)
}

// Update replaces the editable fields; source and creation time are kept.
func (s *SupplierService) Update(ctx context.Context, organizationID, id string, supplier *domain.Supplier) (*domain.Supplier, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	supplier.ID = existing.ID
	supplier.OrganizationID = organizationID
	supplier.Source = existing.Source
	supplier.CreatedAt = existing.CreatedAt
	if err := supplier.Validate(); err != nil {
		return nil, err
	}
	supplier.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, organizationID, id string) error {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, organizationID, id)
}

// Enrich reads the supplier's website and fills description, email and phone where empty.
func (s *SupplierService) Enrich(ctx context.Context, organizationID, id string) (*domain.Supplier, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	supplier, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if supplier.Website == "" {
		return nil, domain.NewValidationError("supplier has no website to enrich from")
	}

	page, err := tracing.TraceMethodWithResult(ctx, "SupplierService", "FetchWebsite", func(ctx context.Context) (*goquery.Document, error) {
		return s.fetchPage(ctx, supplier.Website)
	})
	if err != nil {
		s.logger.WithField("supplier_id", id).WithField("error", err.Error()).Warn("Supplier website fetch failed")
		return nil, domain.NewValidationError(fmt.Sprintf("could not read supplier website: %s", err.Error()))
	}

	info := extractSiteInfo(page)
	if supplier.Description == "" {
		supplier.Description = info.description
	}
	if supplier.Email == "" {
		supplier.Email = info.email
	}
	if supplier.Phone == "" {
		supplier.Phone = info.phone
	}
	supplier.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) fetchPage(ctx context.Context, site string) (*goquery.Document, error) {
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
		site = "https://" + site
	}
	u, err := url.Parse(site)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid website %q", site)
	}

	ctx, cancel := context.WithTimeout(ctx, enrichTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "SalesflowBot/1.0")
	req.Header.Set("Accept", "text/html")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxEnrichBodySize))
}

type siteInfo struct {
	description string
	email       string
	phone       string
}

func extractSiteInfo(doc *goquery.Document) siteInfo {
	var info siteInfo
	for _, sel := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
		if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
			info.description = strings.TrimSpace(v)
			break
		}
	}
	if info.description == "" {
		info.description = strings.TrimSpace(doc.Find("title").First().Text())
	}
	doc.Find(`a[href^="mailto:"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		info.email = strings.ToLower(strings.TrimSpace(addr))
		return info.email == ""
	})
	doc.Find(`a[href^="tel:"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		info.phone = strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
		return info.phone == ""
	})
	return info
}

// Source asks the LLM for supplier candidates. A reply that cannot be used is stored as a
// failed request; quota and configuration errors are returned directly.
func (s *SupplierService) Source(ctx context.Context, organizationID string, req domain.CreateSourcingRequest) (*domain.SourcingRequest, error) {
	ctx, user, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sourcing := &domain.SourcingRequest{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		UserID:         user.ID,
		Query:          req.Query,
		Quantity:       req.Quantity,
		Country:        req.Country,
		Status:         domain.SourcingCompleted,
		Suggestions:    domain.Suggestions{},
		CreatedAt:      s.now().UTC(),
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Find up to %d suppliers for: %s\n", maxSuggestions, req.Query)
	if req.Quantity > 0 {
		fmt.Fprintf(&prompt, "Quantity needed: %d\n", req.Quantity)
	}
	if req.Country != "" {
		fmt.Fprintf(&prompt, "Preferred supplier country: %s\n", req.Country)
	}
	known, err := s.repo.List(ctx, organizationID, "")
	if err != nil {
		return nil, err
	}
	if len(known) > 0 {
		names := make([]string, 0, len(known))
		for _, k := range known {
			names = append(names, k.Name)
		}
		fmt.Fprintf(&prompt, "Already known suppliers, do not suggest these again: %s\n", strings.Join(names, ", "))
	}

	resp, err := s.ai.Complete(ctx, organizationID, domain.AIKindSourcing, sourcing.ID, domain.CompletionRequest{
		System: sourcingSystemPrompt,
		Prompt: prompt.String(),
		JSON:   true,
	})
	if err != nil {
		var perr *domain.PermissionError
		if errors.As(err, &perr) || errors.Is(err, llm.ErrNotConfigured) {
			return nil, err
		}
		sourcing.Status = domain.SourcingFailed
		sourcing.Error = err.Error()
	} else if suggestions, err := parseSuggestions(resp.Text); err != nil {
		sourcing.Status = domain.SourcingFailed
		sourcing.Error = err.Error()
	} else {
		sourcing.Suggestions = suggestions
	}

	if err := s.repo.CreateSourcingRequest(ctx, sourcing); err != nil {
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Error("Failed to store sourcing request")
		return nil, err
	}
	return sourcing, nil
}

func parseSuggestions(text string) (domain.Suggestions, error) {
	result, err := llm.ParseJSON(text)
	if err != nil {
		return nil, err
	}
	list := result.Get("suppliers")
	if !list.Exists() && result.IsArray() {
		list = result
	}
	out := domain.Suggestions{}
	list.ForEach(func(_, item gjson.Result) bool {
		name := strings.TrimSpace(item.Get("name").String())
		if name != "" {
			out = append(out, domain.SupplierSuggestion{
				Name:    name,
				Website: strings.TrimSpace(item.Get("website").String()),
				Country: strings.TrimSpace(item.Get("country").String()),
				Reason:  strings.TrimSpace(item.Get("reason").String()),
			})
		}
		return len(out) < maxSuggestions
	})
	if len(out) == 0 {
		return nil, llm.ErrUnparseable
	}
	return out, nil
}

func (s *SupplierService) GetSourcing(ctx context.Context, organizationID, id string) (*domain.SourcingRequest, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetSourcingRequest(ctx, organizationID, id)
}

func (s *SupplierService) ListSourcing(ctx context.Context, organizationID string) ([]*domain.SourcingRequest, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListSourcingRequests(ctx, organizationID, 50)
}

// AcceptSuggestion saves one suggestion of a sourcing request as a supplier.
func (s *SupplierService) AcceptSuggestion(ctx context.Context, organizationID, requestID string, req domain.AcceptSuggestionRequest) (*domain.Supplier, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	sourcing, err := s.repo.GetSourcingRequest(ctx, organizationID, requestID)
	if err != nil {
		return nil, err
	}
	if req.Index < 0 || req.Index >= len(sourcing.Suggestions) {
		return nil, domain.NewValidationError("suggestion index out of range")
	}
	suggestion := sourcing.Suggestions[req.Index]

	now := s.now().UTC()
	supplier := &domain.Supplier{
		OrganizationID: organizationID,
		Name:           suggestion.Name,
		Website:        suggestion.Website,
		Country:        suggestion.Country,
		Description:    suggestion.Reason,
		Source:         domain.SupplierSourceAI,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := supplier.Validate(); err != nil {
		// models invent malformed URLs now and then
		supplier.Website = ""
		if err := supplier.Validate(); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}
