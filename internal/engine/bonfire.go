package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultDecayRate is the bonfire's hourly decay in position percent.
	DefaultDecayRate = 0.5

	// DecayGraceHours is how long the bonfire holds steady after the last
	// contribution before decay starts.
	DecayGraceHours = 4.0
)

// BonfireContribution is one immutable entry in the shared ledger.
type BonfireContribution struct {
	AnonymousID string    `json:"anonymousId"`
	Amount      int       `json:"amount"`
	At          time.Time `json:"at"`
}

// BonfireState is the shared accumulator the community feeds.
type BonfireState struct {
	Position            float64               `json:"position"` // 0..100
	LastUpdated         time.Time             `json:"lastUpdated"`
	DecayRate           float64               `json:"decayRate"`
	TotalContributed    int                   `json:"totalContributed"`
	Users               []string              `json:"users"`
	RecentContributions []BonfireContribution `json:"recentContributions"`
}

// Ledger is the remote community ledger. Contribute upserts the shared
// position and the per-user total as one remote transaction; the engine
// treats it as best-effort.
type Ledger interface {
	Contribute(ctx context.Context, anonymousID string, amount int) error
	State(ctx context.Context) (*BonfireState, error)
}

// DecayedPosition computes the bonfire's effective position at the given
// time: after the grace window the position drops by decayRate per hour,
// floored at zero. A zero decayRate means the default.
func DecayedPosition(position float64, lastUpdated time.Time, decayRate float64, graceHours float64, now time.Time) float64 {
	if decayRate == 0 {
		decayRate = DefaultDecayRate
	}
	hours := now.Sub(lastUpdated).Hours()
	decayHours := hours - graceHours
	if decayHours < 0 {
		decayHours = 0
	}
	decayed := position - decayHours*decayRate
	if decayed < 0 {
		return 0
	}
	return decayed
}

// NopLedger is used when no bonfire endpoint is configured; contributions
// vanish and the state reads as cold.
type NopLedger struct{}

func (NopLedger) Contribute(ctx context.Context, anonymousID string, amount int) error { return nil }

func (NopLedger) State(ctx context.Context) (*BonfireState, error) {
	return &BonfireState{DecayRate: DefaultDecayRate}, nil
}

// HTTPLedger talks JSON to a remote bonfire service.
type HTTPLedger struct {
	baseURL string
	client  *http.Client
}

func NewHTTPLedger(baseURL string) *HTTPLedger {
	return &HTTPLedger{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (l *HTTPLedger) Contribute(ctx context.Context, anonymousID string, amount int) error {
	body, err := json.Marshal(map[string]any{
		"anonymousId": anonymousID,
		"amount":      amount,
	})
	if err != nil {
		return fmt.Errorf("marshal contribution: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/contribute", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new contribute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("contribute: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("contribute: unexpected status %s", resp.Status)
	}
	return nil
}

func (l *HTTPLedger) State(ctx context.Context) (*BonfireState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/state", nil)
	if err != nil {
		return nil, fmt.Errorf("new state request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bonfire state: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("bonfire state: unexpected status %s", resp.Status)
	}

	var state BonfireState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode bonfire state: %w", err)
	}
	return &state, nil
}
