package domain

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_Validate(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		wantErr string
	}{
		{name: "email only", contact: Contact{Email: " Jane@Example.com "}},
		{name: "name only", contact: Contact{FirstName: "Jane"}},
		{name: "empty", contact: Contact{}, wantErr: "email or name is required"},
		{name: "bad email", contact: Contact{Email: "not-an-email"}, wantErr: "invalid email"},
		{name: "bad phone", contact: Contact{FirstName: "J", Phone: "abc"}, wantErr: "invalid phone"},
		{name: "bad website", contact: Contact{FirstName: "J", Website: "not a url"}, wantErr: "invalid website"},
		{name: "bad status", contact: Contact{FirstName: "J", Status: "vip"}, wantErr: "invalid status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.contact
			c.Normalize()
			err := c.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ContactSourceManual, c.Source)
			assert.Equal(t, ContactStatusLead, c.Status)
		})
	}
}

func TestContact_NormalizeLowercasesEmail(t *testing.T) {
	c := Contact{Email: " Jane@Example.COM "}
	c.Normalize()
	assert.Equal(t, "jane@example.com", c.Email)
	assert.NotNil(t, c.Tags)
}

func TestUpdateContactRequest_Apply(t *testing.T) {
	c := &Contact{FirstName: "Jane", LastName: "Doe", Company: "Acme"}
	company := "Globex"
	status := ContactStatusCustomer
	req := UpdateContactRequest{Company: &company, Status: &status, Tags: []string{"vip"}}
	req.Apply(c)

	assert.Equal(t, "Jane", c.FirstName)
	assert.Equal(t, "Globex", c.Company)
	assert.Equal(t, ContactStatusCustomer, c.Status)
	assert.Equal(t, []string{"vip"}, c.Tags)
}

func TestListContactsRequest_FromQuery(t *testing.T) {
	var req ListContactsRequest
	require.NoError(t, req.FromQuery(url.Values{"search": {" acme "}, "limit": {"500"}, "status": {"customer"}}))
	assert.Equal(t, "acme", req.Search)
	assert.Equal(t, MaxPageLimit, req.Limit)

	req = ListContactsRequest{}
	assert.Error(t, req.FromQuery(url.Values{"status": {"nope"}}))
	assert.Error(t, req.FromQuery(url.Values{"limit": {"ten"}}))
}

func TestCursorRoundTrip(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC)
	cursor := EncodeCursor(ts, "abc")

	gotTime, gotID, err := DecodeCursor(cursor)
	require.NoError(t, err)
	assert.True(t, ts.Equal(gotTime))
	assert.Equal(t, "abc", gotID)

	_, _, err = DecodeCursor("%%%")
	assert.Error(t, err)
	_, _, err = DecodeCursor("bm8tdGlsZGU=") // "no-tilde"
	assert.Error(t, err)
}
