package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRebuilder struct {
	calls int
	err   error
}

func (f *fakeRebuilder) Rebuild(ctx context.Context) error {
	f.calls++
	return f.err
}

func rebuildRequest() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/ops/read-model/rebuild", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestPostOpsRebuildReadModel(t *testing.T) {
	rebuilder := &fakeRebuilder{}
	h := &Handler{rebuilder: rebuilder}

	c, rec := rebuildRequest()
	require.NoError(t, h.PostOpsRebuildReadModel(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, rebuilder.calls)
}

func TestPostOpsRebuildReadModel_ReplayError(t *testing.T) {
	rebuilder := &fakeRebuilder{err: errors.New("timeout while waiting for archived events")}
	h := &Handler{rebuilder: rebuilder}

	c, _ := rebuildRequest()
	err := h.PostOpsRebuildReadModel(c)

	require.Error(t, err)
	assert.Equal(t, 1, rebuilder.calls)
}
