// Package orchestrate is a minimal client for the IBM watsonx Orchestrate
// runs API. Calls exchange the account API key for a short-lived IAM bearer
// token, then post the conversation turn to the runs endpoint.
package orchestrate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultTokenURL = "https://iam.cloud.ibm.com/identity/token"
	defaultRunsURL  = "https://au-syd.watson-orchestrate.cloud.ibm.com/mfe_home_archer/api/v1/orchestrate/runs"
)

// Client runs conversation turns against watsonx Orchestrate.
type Client interface {
	Run(ctx context.Context, message string) (string, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithTokenURL overrides the IAM token exchange endpoint.
func WithTokenURL(url string) Option {
	return func(c *httpClient) {
		c.tokenURL = url
	}
}

// WithRunsURL overrides the orchestrate runs endpoint.
func WithRunsURL(url string) Option {
	return func(c *httpClient) {
		c.runsURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey   string
	tokenURL string
	runsURL  string
	http     *http.Client
}

// NewClient creates a watsonx Orchestrate client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:   apiKey,
		tokenURL: defaultTokenURL,
		runsURL:  defaultRunsURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type turn struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type runRequest struct {
	Input []turn `json:"input"`
}

type runResponse struct {
	Output   []turn `json:"output"`
	Response string `json:"response"`
}

// Run posts a user message and returns the agent's text reply.
func (c *httpClient) Run(ctx context.Context, message string) (string, error) {
	if c.apiKey == "" {
		return "", eris.New("orchestrate: api key not configured")
	}

	token, err := c.iamToken(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(runRequest{
		Input: []turn{{
			Role:    "user",
			Content: []contentBlock{{Type: "text", Text: message}},
		}},
	})
	if err != nil {
		return "", eris.Wrap(err, "orchestrate: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.runsURL, bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "orchestrate: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-watson-channel", "agentic_chat")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "orchestrate: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "orchestrate: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("orchestrate: unexpected status %d: %s", resp.StatusCode, truncate(string(respBody), 300))
	}

	var result runResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", eris.Wrap(err, "orchestrate: unmarshal response")
	}

	if len(result.Output) > 0 && len(result.Output[0].Content) > 0 && result.Output[0].Content[0].Text != "" {
		return result.Output[0].Content[0].Text, nil
	}
	if result.Response != "" {
		return result.Response, nil
	}
	return "", eris.New("orchestrate: empty response")
}

func (c *httpClient) iamToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type": {"urn:ibm:params:oauth:grant-type:apikey"},
		"apikey":     {c.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", eris.Wrap(err, "orchestrate: create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "orchestrate: token exchange")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("orchestrate: token exchange status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", eris.Wrap(err, "orchestrate: decode token response")
	}
	if payload.AccessToken == "" {
		return "", eris.New("orchestrate: empty access token")
	}
	return payload.AccessToken, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
