// Package solver submits vehicle-routing problems to the external
// combinatorial optimizer over HTTP.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tour-planning-service/internal/platform/obs"
	"tour-planning-service/internal/ports"
)

const defaultTimeout = 30 * time.Second

// Client implements ports.RouteSolver against a GraphHopper-style VRP
// endpoint. Authentication is a query-string API key.
//
// The client never retries: a resubmitted problem can return a different,
// non-comparable solution, so retry policy belongs to the caller.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("solver api key is empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("solver base url is empty")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}, nil
}

// Envelope around the solution object, as returned by the optimizer.
type solutionEnvelope struct {
	Solution ports.Solution `json:"solution"`
}

// Error payload for structured 4xx rejections.
type errorResponse struct {
	Message string `json:"message"`
	Hints   []struct {
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"hints"`
}

// Solve submits the problem and returns the raw solution or a classified
// failure: AuthError when the body is an HTML login page (a known
// misconfiguration symptom), ValidationError for structured 4xx rejections,
// TransportError for network-level trouble.
func (c *Client) Solve(ctx context.Context, problem *ports.Problem) (_ *ports.Solution, err error) {
	defer obs.Time(ctx, "solver.Solve")(&err)

	payload, err := json.Marshal(problem)
	if err != nil {
		return nil, fmt.Errorf("solve: marshal problem: %w", err)
	}

	endpoint := c.baseURL + "/vrp?key=" + c.apiKey

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("solve: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, &ports.TransportError{System: ports.SystemSolver, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, &ports.TransportError{System: ports.SystemSolver, Err: fmt.Errorf("read response: %w", err)}
	}

	// A 200 whose body is HTML is the solver's login page, not a solution.
	if looksLikeHTML(body) {
		return nil, &ports.AuthError{
			System: ports.SystemSolver,
			Detail: fmt.Sprintf("received an HTML page instead of JSON (status %d)", resp.StatusCode),
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &ports.AuthError{
			System: ports.SystemSolver,
			Detail: fmt.Sprintf("status %d", resp.StatusCode),
		}

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, validationError(resp.StatusCode, body)

	case resp.StatusCode >= 500:
		return nil, &ports.TransportError{
			System: ports.SystemSolver,
			Err:    fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var envelope solutionEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ports.TransportError{
			System: ports.SystemSolver,
			Err:    fmt.Errorf("decode solution: %w", err),
		}
	}

	return &envelope.Solution, nil
}

func validationError(status int, body []byte) *ports.ValidationError {
	verr := &ports.ValidationError{System: ports.SystemSolver, Status: status}

	var decoded errorResponse
	if err := json.Unmarshal(body, &decoded); err == nil {
		if decoded.Message != "" {
			verr.Causes = append(verr.Causes, ports.ValidationCause{Message: decoded.Message})
		}
		for _, hint := range decoded.Hints {
			verr.Causes = append(verr.Causes, ports.ValidationCause{
				Message: hint.Message,
				Action:  hint.Details,
			})
		}
	}

	if len(verr.Causes) == 0 {
		verr.Causes = append(verr.Causes, ports.ValidationCause{Message: strings.TrimSpace(string(body))})
	}

	return verr
}

func looksLikeHTML(body []byte) bool {
	head := strings.ToLower(strings.TrimSpace(string(body[:min(len(body), 256)])))
	return strings.HasPrefix(head, "<!doctype html") ||
		strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<head")
}
