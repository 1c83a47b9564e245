package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/safatanc/gsalt-deals/internal/app/errors"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/safatanc/gsalt-deals/internal/infrastructures"
	"github.com/sirupsen/logrus"
)

// ConnectService resolves bearer tokens against the Connect identity service.
type ConnectService struct {
	baseURL    string
	httpClient *http.Client
}

func NewConnectService(config *infrastructures.AppConfig) *ConnectService {
	return &ConnectService{
		baseURL: config.CONNECT_BASE_URL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *ConnectService) GetCurrentUser(ctx context.Context, accessToken string) (*models.ConnectUser, error) {
	if accessToken == "" {
		return nil, errors.NewBadRequestError("Access token is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/users/me", nil)
	if err != nil {
		return nil, err
	}

	// Check if accessToken is Bearer token
	if strings.HasPrefix(accessToken, "Bearer ") {
		req.Header.Set("Authorization", accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to reach identity service")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		logrus.WithField("status", resp.StatusCode).Warn("identity service error")
		return nil, errors.NewAppError(http.StatusBadGateway, "Identity service unavailable")
	}

	var webResponse models.WebResponse[models.ConnectUser]
	err = json.NewDecoder(resp.Body).Decode(&webResponse)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to decode response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAppError(resp.StatusCode, webResponse.Message)
	}

	return &webResponse.Data, nil
}
