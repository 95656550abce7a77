package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mkravets/linkjournal/internal/common"
	"github.com/stretchr/testify/require"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{400, KindValidation},
		{401, KindAuthentication},
		{403, KindPermission},
		{404, KindNotFound},
		{409, KindValidation},
		{500, KindServer},
		{502, KindServer},
		{503, KindServer},
		{507, KindServer},
		{418, KindUnknown},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d", tc.status), func(t *testing.T) {
			e := FromStatus(tc.status, "")
			require.Equal(t, tc.want, e.Kind)
			require.Equal(t, tc.status, e.StatusCode)
			require.NotEmpty(t, e.UserMessage)
		})
	}
}

func TestFromStatus_KeepsAPIMessage(t *testing.T) {
	e := FromStatus(400, "Topic Name is required")
	require.Equal(t, "Topic Name is required", e.Message)
	// The user message stays the curated one.
	require.Equal(t, "Invalid request. Please check your input.", e.UserMessage)
}

func TestFromAuthCode(t *testing.T) {
	e := FromAuthCode("auth/wrong-password", nil)
	require.Equal(t, KindAuthentication, e.Kind)
	require.Equal(t, "auth/wrong-password", e.Code)
	require.Equal(t, "Incorrect password. Please try again.", e.UserMessage)

	unknown := FromAuthCode("auth/some-new-code", nil)
	require.Equal(t, KindAuthentication, unknown.Kind)
	require.Equal(t, genericAuthMessage, unknown.UserMessage)
}

func TestClassify_Deterministic(t *testing.T) {
	e1 := Classify(FromAuthCode("auth/invalid-credential", nil))
	e2 := Classify(FromAuthCode("auth/invalid-credential", nil))
	require.Equal(t, e1.Kind, e2.Kind)
	require.Equal(t, e1.UserMessage, e2.UserMessage)
}

func TestClassify_Idempotent(t *testing.T) {
	orig := FromStatus(404, "Journal not found")
	require.Same(t, orig, Classify(orig))

	// Also survives wrapping.
	wrapped := fmt.Errorf("get journal: %w", orig)
	require.Same(t, orig, Classify(wrapped))
}

func TestClassify_Sentinels(t *testing.T) {
	require.Equal(t, KindAuthentication, Classify(common.ErrUnauthorized).Kind)
	require.Equal(t, KindNotFound, Classify(common.ErrNotFound).Kind)
	require.Equal(t, KindValidation, Classify(common.ErrValidation).Kind)
	require.Equal(t, KindNetwork, Classify(context.DeadlineExceeded).Kind)
}

func TestClassify_UnknownPassesMessageThrough(t *testing.T) {
	e := Classify(errors.New("weird failure"))
	require.Equal(t, KindUnknown, e.Kind)
	require.Equal(t, "weird failure", e.Message)
	require.NotEmpty(t, e.UserMessage)
}

func TestIsKind(t *testing.T) {
	require.True(t, IsKind(FromStatus(401, ""), KindAuthentication))
	require.False(t, IsKind(FromStatus(401, ""), KindServer))
	require.False(t, IsKind(nil, KindUnknown))
	require.Equal(t, Kind(""), KindOf(nil))
}
