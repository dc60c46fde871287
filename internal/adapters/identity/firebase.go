package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// DefaultBaseURL is the Firebase Identity Toolkit endpoint
const DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseClient implements IdentityProvider against the Firebase
// Identity Toolkit REST API. It holds the idToken of the signed-in
// account for the delete call.
type FirebaseClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	mu      sync.Mutex
	userID  string
	idToken string
}

// NewFirebaseClient creates a new identity client
func NewFirebaseClient(apiKey, baseURL string) *FirebaseClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FirebaseClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type credentialsResponse struct {
	LocalID string `json:"localId"`
	IDToken string `json:"idToken"`
}

type deleteRequest struct {
	IDToken string `json:"idToken"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignUp creates a new account and returns its user ID
func (c *FirebaseClient) SignUp(ctx context.Context, email, password string) (string, error) {
	return c.exchangeCredentials(ctx, "accounts:signUp", email, password)
}

// SignIn authenticates an existing account and returns its user ID
func (c *FirebaseClient) SignIn(ctx context.Context, email, password string) (string, error) {
	return c.exchangeCredentials(ctx, "accounts:signInWithPassword", email, password)
}

func (c *FirebaseClient) exchangeCredentials(ctx context.Context, endpoint, email, password string) (string, error) {
	var resp credentialsResponse
	err := c.post(ctx, endpoint, credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.userID = resp.LocalID
	c.idToken = resp.IDToken
	c.mu.Unlock()

	return resp.LocalID, nil
}

// DeleteAccount removes the authenticated account
func (c *FirebaseClient) DeleteAccount(ctx context.Context) error {
	c.mu.Lock()
	token := c.idToken
	c.mu.Unlock()

	if token == "" {
		return domain.NewAuthError(domain.AuthErrInvalidCredentials)
	}

	if err := c.post(ctx, "accounts:delete", deleteRequest{IDToken: token}, nil); err != nil {
		return err
	}

	c.SignOut()
	return nil
}

// CurrentUserID returns the signed-in user ID, empty when signed out
func (c *FirebaseClient) CurrentUserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

// SignOut drops the in-memory credentials
func (c *FirebaseClient) SignOut() {
	c.mu.Lock()
	c.userID = ""
	c.idToken = ""
	c.mu.Unlock()
}

// post sends a JSON request to one Identity Toolkit endpoint and decodes
// the response into out when it is non-nil
func (c *FirebaseClient) post(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewAuthError(domain.AuthErrNetwork)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewAuthError(domain.AuthErrNetwork)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if decodeErr := json.Unmarshal(respBody, &apiErr); decodeErr != nil {
			return domain.NewAuthError(domain.AuthErrUnknown)
		}
		return mapAPIError(apiErr.Error.Message)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// mapAPIError converts Identity Toolkit error codes onto the closed
// AuthError set. Unrecognised codes collapse to unknown rather than
// leaking raw API strings.
func mapAPIError(message string) error {
	// Codes sometimes arrive with a trailing detail, e.g.
	// "TOO_MANY_ATTEMPTS_TRY_LATER : ..."
	code := message
	if idx := strings.IndexAny(message, " :"); idx > 0 {
		code = message[:idx]
	}

	switch code {
	case "EMAIL_EXISTS":
		return domain.NewAuthError(domain.AuthErrEmailAlreadyInUse)
	case "EMAIL_NOT_FOUND":
		return domain.NewAuthError(domain.AuthErrUserNotFound)
	case "INVALID_PASSWORD":
		return domain.NewAuthError(domain.AuthErrWrongPassword)
	case "INVALID_EMAIL":
		return domain.NewAuthError(domain.AuthErrInvalidEmail)
	case "WEAK_PASSWORD":
		return domain.NewAuthError(domain.AuthErrWeakPassword)
	case "INVALID_LOGIN_CREDENTIALS", "INVALID_ID_TOKEN", "USER_DISABLED", "CREDENTIAL_TOO_OLD_LOGIN_AGAIN":
		return domain.NewAuthError(domain.AuthErrInvalidCredentials)
	default:
		return domain.NewAuthError(domain.AuthErrUnknown)
	}
}

// Ensure FirebaseClient implements the interface
var _ ports.IdentityProvider = (*FirebaseClient)(nil)
