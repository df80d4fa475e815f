package domain

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page carries limit/cursor pagination for list endpoints.
type Page struct {
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

func (p *Page) FromQuery(q url.Values) error {
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return NewValidationError("invalid limit")
		}
		p.Limit = limit
	}
	p.Cursor = q.Get("cursor")
	p.Normalize()
	return nil
}

func (p *Page) Normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

// EncodeCursor builds an opaque keyset cursor from the last row of a page.
func EncodeCursor(createdAt time.Time, id string) string {
	raw := fmt.Sprintf("%s~%s", createdAt.UTC().Format(time.RFC3339Nano), id)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func DecodeCursor(cursor string) (time.Time, string, error) {
	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", NewValidationError("invalid cursor encoding")
	}
	ts, id, ok := strings.Cut(string(decoded), "~")
	if !ok || id == "" {
		return time.Time{}, "", NewValidationError("invalid cursor format")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}, "", NewValidationError("invalid cursor timestamp")
	}
	return createdAt, id, nil
}
