package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shop-access-core/internal/domain"
	jwtinfra "github.com/shop-access-core/internal/infrastructure/jwt"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) RequestCode(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *mockAuthService) ExchangeCode(ctx context.Context, email, code string) (*jwtinfra.TokenPair, error) {
	args := m.Called(ctx, email, code)
	if p, _ := args.Get(0).(*jwtinfra.TokenPair); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*jwtinfra.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if p, _ := args.Get(0).(*jwtinfra.TokenPair); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestRequestCode_GenericResponse(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("RequestCode", mock.Anything, "owner@shop.example").Return(nil)

	rr := post(NewAuthHandler(svc).RequestCode, `{"email":"owner@shop.example"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "if the address is registered")
}

func TestRequestCode_MalformedEmail(t *testing.T) {
	svc := &mockAuthService{}
	rr := post(NewAuthHandler(svc).RequestCode, `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	svc.AssertNotCalled(t, "RequestCode", mock.Anything, mock.Anything)
}

func TestExchangeCode_ReturnsTokenEnvelope(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("ExchangeCode", mock.Anything, "owner@shop.example", "482913").
		Return(&jwtinfra.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, nil)

	rr := post(NewAuthHandler(svc).ExchangeCode, `{"email":"owner@shop.example","code":"482913"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp jwtinfra.TokenPair
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "acc", resp.AccessToken)
	assert.Equal(t, "ref", resp.RefreshToken)
}

func TestExchangeCode_Rejected(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("ExchangeCode", mock.Anything, "owner@shop.example", "000000").
		Return(nil, fmt.Errorf("invalid or expired code: %w", domain.ErrUnauthorized))

	rr := post(NewAuthHandler(svc).ExchangeCode, `{"email":"owner@shop.example","code":"000000"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid or expired code")
}

func TestExchangeCode_CodeFormatEnforced(t *testing.T) {
	svc := &mockAuthService{}
	rr := post(NewAuthHandler(svc).ExchangeCode, `{"email":"owner@shop.example","code":"48291"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	svc.AssertNotCalled(t, "ExchangeCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefresh_RequiresToken(t *testing.T) {
	svc := &mockAuthService{}
	rr := post(NewAuthHandler(svc).Refresh, `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRefresh_Rejected(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Refresh", mock.Anything, "stale").
		Return(nil, fmt.Errorf("invalid or expired token: %w", domain.ErrUnauthorized))

	rr := post(NewAuthHandler(svc).Refresh, `{"refresh_token":"stale"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
