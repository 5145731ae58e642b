package httpapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	app := NewApp(&fakeUsers{}, fakePinger{}, logging.Nop{})

	resp, body := do(t, app, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, body = do(t, app, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ready"}`, string(body))
}

func TestHealth_NotReady(t *testing.T) {
	app := NewApp(&fakeUsers{}, fakePinger{err: errors.New("db error: refused")}, logging.Nop{})

	resp, body := do(t, app, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), "not_ready")
}
