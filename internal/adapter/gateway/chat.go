package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"time"

	"notes-storage/internal/domain"
)

const sessionCookieName = "sessionId"

// ChatGateway implements domain.MembershipChecker against the sibling chat
// service. The caller's session cookie is forwarded unmodified so the chat
// service performs its own validation.
type ChatGateway struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewChatGateway creates a new chat service gateway with tuned HTTP transport.
func NewChatGateway(baseURL string, timeout time.Duration) *ChatGateway {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &ChatGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		timeout: timeout,
	}
}

// chatRecord is the chat service's wire representation of a chat.
type chatRecord struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Users []string `json:"users"`
}

// HasMember fetches the chat and reports whether userID appears in its
// member list. Callers must treat any returned error as "not authorized".
func (g *ChatGateway) HasMember(ctx context.Context, sessionID, chatID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/api/chat/storage/%s", g.baseURL, chatID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrChatUnavailable, err)
	}
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sessionID})

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrChatUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: chat service returned status %d", domain.ErrChatUnavailable, resp.StatusCode)
	}

	var chat chatRecord
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrChatUnavailable, err)
	}

	return slices.Contains(chat.Users, userID), nil
}
