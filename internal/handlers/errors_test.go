package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"not found":          {fmt.Errorf("get: %w", apperrors.ErrNotFound), http.StatusNotFound},
		"terminal":           {apperrors.NewTerminalStateError("collected", "at_bank"), http.StatusUnprocessableEntity},
		"invalid transition": {apperrors.NewInvalidTransitionError("at_bank", "endorsed"), http.StatusUnprocessableEntity},
		"validation":         {apperrors.NewValidationError("bad"), http.StatusBadRequest},
		"duplicate":          {apperrors.ErrDuplicate, http.StatusConflict},
		"conflict":           {fmt.Errorf("update: %w", apperrors.ErrConflict), http.StatusConflict},
		"unauthorized":       {apperrors.ErrUnauthorized, http.StatusUnauthorized},
		"unavailable":        {apperrors.ErrUnavailable, http.StatusServiceUnavailable},
		"app error 4xx":      {apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", errors.New("split")), http.StatusBadRequest},
		"app error 5xx":      {apperrors.NewAppError(http.StatusInternalServerError, "db down", errors.New("boom")), http.StatusInternalServerError},
		"plain":              {errors.New("boom"), http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}

func TestParseDateQuery(t *testing.T) {
	got, err := parseDateQuery("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDateQuery("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), *got)

	_, err = parseDateQuery("28/02/2026")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCalendarToday(t *testing.T) {
	istanbul := time.FixedZone("TRT", 3*60*60)
	// 22:30 UTC on Jan 31 is already Feb 1 in Istanbul.
	now := func() time.Time { return time.Date(2026, 1, 31, 22, 30, 0, 0, time.UTC) }

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), calendarToday(now, istanbul)())
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), calendarToday(now, time.UTC)())
}
