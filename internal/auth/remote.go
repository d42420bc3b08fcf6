package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/momo1113/babyTracker-sub000/internal"
)

// RemoteAuthProvider posts the bearer token to the identity provider's
// verify endpoint and expects the user record back on 200.
type RemoteAuthProvider struct {
	verifyURL string
	client    *resty.Client
	logger    internal.Logger
}

func NewRemoteAuthProvider(verifyURL string, logger internal.Logger) *RemoteAuthProvider {
	return &RemoteAuthProvider{
		verifyURL: verifyURL,
		client:    resty.New().SetTimeout(5 * time.Second),
		logger:    logger,
	}
}

func (a *RemoteAuthProvider) ValidateTokenLocal(token string) (*internal.User, error) {
	return nil, errors.New("not implemented in RemoteAuthProvider")
}

func (a *RemoteAuthProvider) ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error) {
	var user internal.User
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"token": token}).
		SetResult(&user).
		Post(a.verifyURL)
	if err != nil {
		a.logger.Errorf("failed to call identity provider: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		a.logger.Errorf("identity provider returned %d", resp.StatusCode())
		return nil, ErrInvalidToken
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}
	return &user, nil
}
