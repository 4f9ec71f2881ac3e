package tracker

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/honeycarbs/jobfit/internal/domain"
)

// GetProfile returns all profile entries
func (c *Client) GetProfile(ctx context.Context) (domain.Profile, error) {
	var out domain.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/profile", nil, nil, &out); err != nil {
		return domain.Profile{}, err
	}
	return out, nil
}

// CreateProfileEntry adds a profile entry
func (c *Client) CreateProfileEntry(ctx context.Context, in domain.ProfileEntryCreate) (domain.ProfileEntry, error) {
	var out domain.ProfileEntry
	if err := c.doJSON(ctx, http.MethodPost, "/profile/entry", nil, in, &out); err != nil {
		return domain.ProfileEntry{}, err
	}
	return out, nil
}

// UpdateProfileEntry replaces a profile entry
func (c *Client) UpdateProfileEntry(ctx context.Context, id string, in domain.ProfileEntryCreate) (domain.ProfileEntry, error) {
	var out domain.ProfileEntry
	path := "/profile/entry/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, in, &out); err != nil {
		return domain.ProfileEntry{}, err
	}
	return out, nil
}

// DeleteProfileEntry removes a profile entry
func (c *Client) DeleteProfileEntry(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/profile/entry/"+url.PathEscape(id), nil, nil, nil)
}

// GenerateProfile uploads files, links and a description for the backend to build entries from
func (c *Client) GenerateProfile(ctx context.Context, in ProfileGenerationRequest) (domain.ProfileGeneration, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range in.Files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return domain.ProfileGeneration{}, fmt.Errorf("tracker: build multipart file %q: %w", f.Name, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return domain.ProfileGeneration{}, fmt.Errorf("tracker: write multipart file %q: %w", f.Name, err)
		}
	}

	if len(in.Links) > 0 {
		if err := mw.WriteField("links", strings.Join(in.Links, ",")); err != nil {
			return domain.ProfileGeneration{}, fmt.Errorf("tracker: write links field: %w", err)
		}
	}

	if d := strings.TrimSpace(in.Description); d != "" {
		if err := mw.WriteField("description", d); err != nil {
			return domain.ProfileGeneration{}, fmt.Errorf("tracker: write description field: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return domain.ProfileGeneration{}, fmt.Errorf("tracker: close multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/profile/generate", nil, &buf)
	if err != nil {
		return domain.ProfileGeneration{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out domain.ProfileGeneration
	if err := c.do(req, &out); err != nil {
		return domain.ProfileGeneration{}, err
	}
	return out, nil
}
