package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/salesflow/crm/pkg/crypto"
	"github.com/salesflow/crm/pkg/metakocka"
)

//go:generate mockgen -destination mocks/mock_erp_repository.go -package mocks github.com/salesflow/crm/internal/domain ERPRepository,MetakockaClient,ERPService

type MetakockaCredentials struct {
	OrganizationID     string     `json:"organization_id"`
	CompanyID          string     `json:"company_id"`
	EncryptedSecretKey string     `json:"-"`
	Enabled            bool       `json:"enabled"`
	LastSyncAt         *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// decrypted, never stored nor serialized
	SecretKey string `json:"-"`
}

func (c *MetakockaCredentials) EncryptSecretKey(passphrase string) error {
	enc, err := crypto.EncryptString(c.SecretKey, passphrase)
	if err != nil {
		return fmt.Errorf("failed to encrypt Metakocka secret key: %w", err)
	}
	c.EncryptedSecretKey = enc
	return nil
}

func (c *MetakockaCredentials) DecryptSecretKey(passphrase string) error {
	key, err := crypto.DecryptFromHexString(c.EncryptedSecretKey, passphrase)
	if err != nil {
		return fmt.Errorf("failed to decrypt Metakocka secret key: %w", err)
	}
	c.SecretKey = key
	return nil
}

func (c *MetakockaCredentials) API() metakocka.Credentials {
	return metakocka.Credentials{CompanyID: c.CompanyID, SecretKey: c.SecretKey}
}

type SaveMetakockaRequest struct {
	CompanyID string `json:"company_id"`
	SecretKey string `json:"secret_key"`
}

func (r *SaveMetakockaRequest) Validate() error {
	r.CompanyID = strings.TrimSpace(r.CompanyID)
	r.SecretKey = strings.TrimSpace(r.SecretKey)
	if r.CompanyID == "" || r.SecretKey == "" {
		return NewValidationError("company_id and secret_key are required")
	}
	return nil
}

type ERPProduct struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	ExternalID     string    `json:"external_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Unit           string    `json:"unit"`
	Price          float64   `json:"price"`
	Stock          float64   `json:"stock"`
	SyncedAt       time.Time `json:"synced_at"`
}

type ProductSyncResult struct {
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
}

type PushOrderRequest struct {
	Lines []metakocka.OrderLine `json:"lines"`
}

type ERPRepository interface {
	GetCredentials(ctx context.Context, organizationID string) (*MetakockaCredentials, error)
	SaveCredentials(ctx context.Context, creds *MetakockaCredentials) error
	DeleteCredentials(ctx context.Context, organizationID string) error
	TouchLastSync(ctx context.Context, organizationID string, at time.Time) error
	UpsertProducts(ctx context.Context, organizationID string, products []*ERPProduct) (int, error)
	ListProducts(ctx context.Context, organizationID, search string, limit int) ([]*ERPProduct, error)
}

// MetakockaClient is implemented by *metakocka.Client.
type MetakockaClient interface {
	TestConnection(ctx context.Context, creds metakocka.Credentials) error
	ListProducts(ctx context.Context, creds metakocka.Credentials, offset, limit int) ([]metakocka.Product, error)
	AddPartner(ctx context.Context, creds metakocka.Credentials, p metakocka.Partner) (string, error)
	PutSalesOrder(ctx context.Context, creds metakocka.Credentials, order metakocka.SalesOrder) (string, error)
}

type ERPService interface {
	SaveCredentials(ctx context.Context, organizationID string, req SaveMetakockaRequest) (*MetakockaCredentials, error)
	GetCredentials(ctx context.Context, organizationID string) (*MetakockaCredentials, error)
	DeleteCredentials(ctx context.Context, organizationID string) error
	SyncProducts(ctx context.Context, organizationID string) (*ProductSyncResult, error)
	ListProducts(ctx context.Context, organizationID, search string, limit int) ([]*ERPProduct, error)
	PushContact(ctx context.Context, organizationID, contactID string) (*Contact, error)
	PushOpportunityOrder(ctx context.Context, organizationID, opportunityID string, req PushOrderRequest) (*Opportunity, error)
}
