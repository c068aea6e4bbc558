// internal/intelligence/client.go
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"tara/internal/common/config"
	commonhttp "tara/internal/common/http"
	"tara/internal/common/logger"
	"tara/internal/common/metrics"
	"tara/internal/models"
	"tara/internal/store"
)

// Client talks to the backend intelligence service. All planning methods
// degrade to fixed fallback data instead of returning transport errors;
// only CheckVisaFree and the profile sync calls surface failures.
type Client struct {
	cfg        config.IntelligenceConfig
	httpClient *commonhttp.Client
	repo       *store.Repository
	logger     logger.Logger

	mu       sync.Mutex
	cachedID string
}

// NewClient creates an intelligence client bound to the given store, which
// it uses to persist a generated anonymous user id.
func NewClient(cfg config.IntelligenceConfig, repo *store.Repository, log logger.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: commonhttp.NewClient(time.Duration(cfg.Timeout) * time.Millisecond),
		repo:       repo,
		logger:     log,
	}
}

// withUserID guarantees every outbound profile carries a stable identifier.
// Priority: explicit id, then email, then the cached anonymous id, then a
// freshly generated one. A generated id is written to the store exactly once
// and memoized for the process lifetime.
func (c *Client) withUserID(ctx context.Context, profile models.UserProfile) models.UserProfile {
	if profile.UserID != "" {
		return profile
	}
	if profile.Email != "" {
		profile.UserID = profile.Email
		return profile
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cachedID != "" {
		profile.UserID = c.cachedID
		return profile
	}

	if id, err := c.repo.UserID(ctx); err == nil && id != "" {
		c.cachedID = id
		profile.UserID = id
		return profile
	}

	id := fmt.Sprintf("temp_%d", time.Now().UnixMilli())
	if err := c.repo.SaveUserID(ctx, id); err != nil {
		c.logger.Warn("failed to persist generated user id", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.cachedID = id
	profile.UserID = id
	return profile
}

// request performs one planning call and decodes the wire response into the
// Result union. Transport failures, non-2xx statuses and malformed bodies
// all collapse into the Errored branch with the fallback plan.
func (c *Client) request(ctx context.Context, kind RequestKind, country, appType string, profile models.UserProfile, travelCtx map[string]string) Result {
	metrics.IntelligenceRequests.WithLabelValues(string(kind)).Inc()
	timer := time.Now()
	defer func() {
		metrics.IntelligenceRequestDuration.WithLabelValues(string(kind)).Observe(time.Since(timer).Seconds())
	}()

	payload := request{
		RequestType: kind,
		Country:     country,
		Type:        appType,
		Profile:     c.withUserID(ctx, profile),
		Context:     travelCtx,
	}

	var resp response
	if err := c.httpClient.PostJSON(ctx, c.cfg.BaseURL, payload, &resp); err != nil {
		c.logger.Warn("intelligence request failed, using fallback", map[string]interface{}{
			"request_type": string(kind),
			"country":      country,
			"error":        err.Error(),
		})
		metrics.IntelligenceFallbacks.WithLabelValues(string(kind)).Inc()
		return Result{Fulfilled: fallbackPlan(), Errored: true}
	}

	if strings.EqualFold(resp.Status, "INCOMPLETE") {
		for field, prompt := range resp.AwaitingFeedback {
			return Result{Incomplete: &Incomplete{AwaitingField: field, Prompt: prompt}}
		}
		// INCOMPLETE with no feedback field is malformed.
		metrics.IntelligenceFallbacks.WithLabelValues(string(kind)).Inc()
		return Result{Fulfilled: fallbackPlan(), Errored: true}
	}

	fulfilled := Fulfilled{
		Documents:        resp.Documents,
		Steps:            resp.Steps,
		Forms:            resp.Forms,
		SubmissionPoints: resp.SubmissionPoints,
	}
	if fulfilled.Documents == nil {
		fulfilled.Documents = []string{}
	}
	if fulfilled.Steps == nil {
		fulfilled.Steps = []models.ApplicationStep{}
	}
	if fulfilled.Forms == nil {
		fulfilled.Forms = []models.ApplicationForm{}
	}
	if fulfilled.SubmissionPoints == nil {
		fulfilled.SubmissionPoints = []models.SubmissionPoint{}
	}
	return Result{Fulfilled: fulfilled}
}

// GetDetailedRequirements asks for the document and step plan for one
// destination/application-type pair.
func (c *Client) GetDetailedRequirements(ctx context.Context, country, appType string, profile models.UserProfile, travelCtx map[string]string) Result {
	return c.request(ctx, KindRequirements, country, appType, profile, travelCtx)
}

// GetApplicationResources asks for official forms and submission points.
func (c *Client) GetApplicationResources(ctx context.Context, country, appType string, profile models.UserProfile, travelCtx map[string]string) Result {
	return c.request(ctx, KindResources, country, appType, profile, travelCtx)
}

// GetBureaucracyGuidance asks for step-by-step guidance on a local
// administrative task.
func (c *Client) GetBureaucracyGuidance(ctx context.Context, country, purpose string, profile models.UserProfile) Result {
	return c.request(ctx, KindGuidance, country, purpose, profile, nil)
}

// GetTravelAdvisory fetches the safety advisory text for a country. It never
// fails: any transport or decode problem yields the fixed fallback advisory.
func (c *Client) GetTravelAdvisory(ctx context.Context, country string, profile models.UserProfile) string {
	metrics.IntelligenceRequests.WithLabelValues(string(KindAdvisory)).Inc()

	payload := request{
		RequestType: KindAdvisory,
		Country:     country,
		Type:        "general",
		Profile:     c.withUserID(ctx, profile),
	}

	var raw json.RawMessage
	if err := c.httpClient.PostJSON(ctx, c.cfg.BaseURL, payload, &raw); err != nil {
		c.logger.Warn("advisory request failed, using fallback", map[string]interface{}{
			"country": country,
			"error":   err.Error(),
		})
		metrics.IntelligenceFallbacks.WithLabelValues(string(KindAdvisory)).Inc()
		return FallbackAdvisory
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil && strings.TrimSpace(text) != "" {
		return text
	}
	var wrapped struct {
		Advisory string `json:"advisory"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && strings.TrimSpace(wrapped.Advisory) != "" {
		return wrapped.Advisory
	}

	metrics.IntelligenceFallbacks.WithLabelValues(string(KindAdvisory)).Inc()
	return FallbackAdvisory
}

// CheckVisaFree asks whether any of the given citizenships grants visa-free
// entry to the destination. Unlike the planning calls it has no fallback:
// an unreachable service aborts the caller's attempt.
func (c *Client) CheckVisaFree(ctx context.Context, nationalities []string, destination string) (VisaFreeStatus, error) {
	metrics.IntelligenceRequests.WithLabelValues(string(KindVisaFree)).Inc()

	payload := map[string]interface{}{
		"request_type":  KindVisaFree,
		"country":       destination,
		"type":          "general",
		"nationalities": nationalities,
	}

	var status VisaFreeStatus
	if err := c.httpClient.PostJSON(ctx, c.cfg.BaseURL, payload, &status); err != nil {
		return VisaFreeStatus{}, fmt.Errorf("visa-free check for %s: %w", destination, err)
	}
	return status, nil
}

// UpdateRemoteProfile pushes profile fields to the service-side profile
// store. Callers treat failures as non-fatal.
func (c *Client) UpdateRemoteProfile(ctx context.Context, userID string, data map[string]interface{}) error {
	if c.cfg.ProfileURL == "" {
		return nil
	}
	payload := map[string]interface{}{
		"user_id": userID,
		"data":    data,
	}
	var out map[string]interface{}
	if err := c.httpClient.PostJSON(ctx, c.cfg.ProfileURL, payload, &out); err != nil {
		return fmt.Errorf("update remote profile: %w", err)
	}
	return nil
}

// GetRemoteProfile reads the service-side profile for a user.
func (c *Client) GetRemoteProfile(ctx context.Context, userID string) (map[string]interface{}, error) {
	if c.cfg.ProfileURL == "" {
		return map[string]interface{}{}, nil
	}
	var out map[string]interface{}
	url := fmt.Sprintf("%s?user_id=%s", c.cfg.ProfileURL, userID)
	if err := c.httpClient.GetJSON(ctx, url, &out); err != nil {
		return nil, fmt.Errorf("get remote profile: %w", err)
	}
	return out, nil
}
