package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"bom-reconciler/core/apperr"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"NotFound", apperr.NotFound("record %s", "x"), apperr.KindNotFound},
		{"Wrapped", fmt.Errorf("outer: %w", apperr.InvalidState("nope")), apperr.KindInvalidState},
		{"Plain", errors.New("boom"), apperr.KindInternal},
		{"Nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(tt.err))
		})
	}
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, apperr.Status(apperr.NotFound("x")))
	assert.Equal(t, http.StatusConflict, apperr.Status(apperr.InvalidState("x")))
	assert.Equal(t, http.StatusBadRequest, apperr.Status(apperr.Validation("x")))
	assert.Equal(t, http.StatusBadGateway, apperr.Status(apperr.Upstream(errors.New("down"), "fetch")))
	assert.Equal(t, http.StatusInternalServerError, apperr.Status(errors.New("x")))
}

func TestErrorsIs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", apperr.InvalidState("record is ALIGNED"))
	assert.True(t, errors.Is(err, apperr.InvalidState("")))
	assert.False(t, errors.Is(err, apperr.NotFound("")))
}

func TestToBody(t *testing.T) {
	body := apperr.ToBody(apperr.Internal(errors.New("db password leaked"), "store failed"))
	assert.Equal(t, apperr.KindInternal, body.Error.Kind)
	assert.Equal(t, "store failed", body.Error.Message)

	body = apperr.ToBody(errors.New("raw"))
	assert.Equal(t, "internal error", body.Error.Message)

	body = apperr.ToBody(apperr.Validation("baseline index %d out of range", 4))
	assert.Equal(t, apperr.KindValidation, body.Error.Kind)
	assert.Equal(t, "baseline index 4 out of range", body.Error.Message)
}
