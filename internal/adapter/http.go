package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/garbagesocial/gsclient/internal/config"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/models"
)

type httpRemoteService struct {
	client *resty.Client
	logger *logger.Logger
}

// NewHTTPRemoteService constructs an HTTP/REST implementation of
// [RemoteService]. It normalises and validates the base URL from
// remoteCfg.BaseURL and configures the underlying client with the resolved
// base URL and request timeout.
//
// Returns an error if remoteCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteService(remoteCfg config.Remote, log *logger.Logger) (RemoteService, error) {
	baseURL, err := normalizeBaseURL(remoteCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(remoteCfg.RequestTimeout)

	return &httpRemoteService{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Health implements [RemoteService]. It GETs /health and reports any
// non-2xx answer as an error.
func (h *httpRemoteService) Health(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	return mapHTTPError(resp)
}

// SelectWastes implements [RemoteService]. It GETs /api/wastes with the
// filter encoded as query parameters and decodes the response into a
// slice of [models.Waste].
func (h *httpRemoteService) SelectWastes(ctx context.Context, filter Filter) ([]models.Waste, error) {
	resp, err := h.filteredRequest(ctx, filter).Get("/api/wastes")
	if err != nil {
		return nil, fmt.Errorf("select wastes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var wastes []models.Waste
	if err = json.Unmarshal(resp.Body(), &wastes); err != nil {
		return nil, fmt.Errorf("decode wastes response: %w", err)
	}
	return wastes, nil
}

// UpsertWaste implements [RemoteService]. It PUTs the listing to
// PUT /api/wastes/{id} and returns the record stored by the backend.
func (h *httpRemoteService) UpsertWaste(ctx context.Context, waste models.Waste) (models.Waste, error) {
	var stored models.Waste

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(waste).
		SetResult(&stored).
		Put("/api/wastes/" + url.PathEscape(waste.ID))
	if err != nil {
		return models.Waste{}, fmt.Errorf("upsert waste request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Waste{}, err
	}

	return stored, nil
}

// DeleteWaste implements [RemoteService]. It sends
// DELETE /api/wastes/{id}. Returns [ErrNotFound] (wrapped) on HTTP 404.
func (h *httpRemoteService) DeleteWaste(ctx context.Context, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete("/api/wastes/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("delete waste request: %w", err)
	}
	return mapHTTPError(resp)
}

// SelectUsers implements [RemoteService]. It GETs /api/users with the
// filter encoded as query parameters.
func (h *httpRemoteService) SelectUsers(ctx context.Context, filter Filter) ([]models.User, error) {
	resp, err := h.filteredRequest(ctx, filter).Get("/api/users")
	if err != nil {
		return nil, fmt.Errorf("select users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var users []models.User
	if err = json.Unmarshal(resp.Body(), &users); err != nil {
		return nil, fmt.Errorf("decode users response: %w", err)
	}
	return users, nil
}

// UpsertUser implements [RemoteService]. It PUTs the profile to
// PUT /api/users/{id}.
func (h *httpRemoteService) UpsertUser(ctx context.Context, user models.User) (models.User, error) {
	var stored models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&stored).
		Put("/api/users/" + url.PathEscape(user.ID))
	if err != nil {
		return models.User{}, fmt.Errorf("upsert user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return stored, nil
}

// DeleteUser implements [RemoteService]. It sends DELETE /api/users/{id}.
func (h *httpRemoteService) DeleteUser(ctx context.Context, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete("/api/users/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}
	return mapHTTPError(resp)
}

// SelectRatings implements [RemoteService]. It GETs /api/ratings with the
// filter encoded as query parameters.
func (h *httpRemoteService) SelectRatings(ctx context.Context, filter Filter) ([]models.Rating, error) {
	resp, err := h.filteredRequest(ctx, filter).Get("/api/ratings")
	if err != nil {
		return nil, fmt.Errorf("select ratings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var ratings []models.Rating
	if err = json.Unmarshal(resp.Body(), &ratings); err != nil {
		return nil, fmt.Errorf("decode ratings response: %w", err)
	}
	return ratings, nil
}

// UpsertRating implements [RemoteService]. It PUTs the rating to
// PUT /api/ratings/{id}.
func (h *httpRemoteService) UpsertRating(ctx context.Context, rating models.Rating) (models.Rating, error) {
	var stored models.Rating

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(rating).
		SetResult(&stored).
		Put("/api/ratings/" + url.PathEscape(rating.ID))
	if err != nil {
		return models.Rating{}, fmt.Errorf("upsert rating request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Rating{}, err
	}

	return stored, nil
}

// DeleteRating implements [RemoteService]. It sends
// DELETE /api/ratings/{id}.
func (h *httpRemoteService) DeleteRating(ctx context.Context, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete("/api/ratings/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("delete rating request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpRemoteService) filteredRequest(ctx context.Context, filter Filter) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if filter.ID != "" {
		req.SetQueryParam("id", filter.ID)
	}
	if filter.OwnerID != "" {
		req.SetQueryParam("owner_id", filter.OwnerID)
	}
	if filter.Type != "" {
		req.SetQueryParam("type", string(filter.Type))
	}
	return req
}
