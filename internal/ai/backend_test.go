package ai

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"http 403", &googleapi.Error{Code: http.StatusForbidden}, apperr.Credential},
		{"http 401 wrapped", fmt.Errorf("call: %w", &googleapi.Error{Code: http.StatusUnauthorized}), apperr.Credential},
		{"grpc permission denied", status.Error(codes.PermissionDenied, "no"), apperr.Credential},
		{"grpc unauthenticated", status.Error(codes.Unauthenticated, "no"), apperr.Credential},
		{"message signature", errors.New("googleapi: Error 400: API key not valid. Please pass a valid API key."), apperr.Credential},
		{"permission text", errors.New("rpc error: PERMISSION_DENIED"), apperr.Credential},
		{"http 500", &googleapi.Error{Code: http.StatusInternalServerError}, apperr.Generation},
		{"grpc unavailable", status.Error(codes.Unavailable, "down"), apperr.Generation},
		{"network", errors.New("dial tcp: connection refused"), apperr.Generation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, apperr.KindOf(classifyError(tc.err)))
		})
	}
	assert.NoError(t, classifyError(nil))
}

func TestIsUsableKey(t *testing.T) {
	assert.False(t, IsUsableKey(""))
	assert.False(t, IsUsableKey("   "))
	assert.False(t, IsUsableKey(PlaceholderKey))
	assert.True(t, IsUsableKey("AIza-something"))
}
