package api

import (
	"errors"
	"net/http"
	"testing"

	models "PawMatch/internal/domain/models"
)

func TestFromDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{models.ValidationErrorf("bad input"), http.StatusBadRequest, "ERR_BAD_REQUEST"},
		{models.ConflictErrorf("taken"), http.StatusConflict, "ERR_CONFLICT"},
		{models.TransitionError(models.StatusPending, models.StatusCompleted), http.StatusConflict, "ERR_CONFLICT"},
		{models.ErrUnauthorized, http.StatusForbidden, "ERR_FORBIDDEN"},
		{models.ErrNotFound, http.StatusNotFound, "ERR_NOT_FOUND"},
		{models.DataError("get booking", models.ErrNotFound), http.StatusNotFound, "ERR_NOT_FOUND"},
		{models.DataError("get sitter", errors.New("timeout")), http.StatusServiceUnavailable, "ERR_DATA_UNAVAILABLE"},
		{errors.New("mystery"), http.StatusInternalServerError, "ERR_INTERNAL"},
	}
	for _, c := range cases {
		got := fromDomainError(c.err)
		if got.Status != c.status {
			t.Fatalf("%v: status %d, want %d", c.err, got.Status, c.status)
		}
		if got.Code != c.code {
			t.Fatalf("%v: code %s, want %s", c.err, got.Code, c.code)
		}
	}
}
