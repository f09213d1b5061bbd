package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
)

func ok(ctx shared.Context) error {
	return ctx.NoContent(http.StatusNoContent)
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestActorMiddleware(t *testing.T) {
	e := echo.New()

	t.Run("should put the actor from the headers into the context", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderActorID, "qa-1")
		req.Header.Set(HeaderActorRole, "qa_agency")
		ctx := e.NewContext(req, httptest.NewRecorder())

		var got dtos.Actor
		err := ActorMiddleware()(func(ctx shared.Context) error {
			got = shared.GetActor(ctx)
			return nil
		})(ctx)

		require.NoError(t, err)
		assert.Equal(t, dtos.Actor{ID: "qa-1", Role: dtos.RoleQAAgency}, got)
	})

	t.Run("should answer 401 without actor headers", func(t *testing.T) {
		ctx := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())
		assert.Equal(t, 401, httpCode(t, ActorMiddleware()(ok)(ctx)))
	})

	t.Run("should answer 400 for an unknown role", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderActorID, "x")
		req.Header.Set(HeaderActorRole, "farmer")
		ctx := e.NewContext(req, httptest.NewRecorder())
		assert.Equal(t, 400, httpCode(t, ActorMiddleware()(ok)(ctx)))
	})
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	handler := RequireRole(dtos.RoleQAAgency)(ok)

	cases := []struct {
		actor dtos.Actor
		allow bool
	}{
		{dtos.Actor{ID: "qa-1", Role: dtos.RoleQAAgency}, true},
		{dtos.Actor{ID: "admin", Role: dtos.RoleAdmin}, true},
		{dtos.Actor{ID: "exp-1", Role: dtos.RoleExporter}, false},
	}
	for _, c := range cases {
		t.Run(string(c.actor.Role), func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx := e.NewContext(httptest.NewRequest("POST", "/", nil), rec)
			shared.SetActor(ctx, c.actor)

			err := handler(ctx)
			if c.allow {
				require.NoError(t, err)
				assert.Equal(t, http.StatusNoContent, rec.Code)
			} else {
				assert.Equal(t, 403, httpCode(t, err))
			}
		})
	}
}

func TestVerifyRateLimiter(t *testing.T) {
	e := echo.New()
	// six per minute leaves a burst of one
	handler := VerifyRateLimiter(6)(ok)

	// the limiter hands denials to the echo error handler instead of returning them
	call := func(ip string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2"))
}

func TestHTTPErrorHandler(t *testing.T) {
	e := echo.New()
	handler := HTTPErrorHandler(false)

	t.Run("should wrap a string message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(echo.NewHTTPError(404, "could not find batch"), e.NewContext(httptest.NewRequest("GET", "/", nil), rec))

		assert.Equal(t, 404, rec.Code)
		assert.JSONEq(t, `{"message":"could not find batch"}`, rec.Body.String())
	})

	t.Run("should hide internal errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(errors.New("pq: connection refused"), e.NewContext(httptest.NewRequest("GET", "/", nil), rec))

		assert.Equal(t, 500, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestRecoverMiddleware(t *testing.T) {
	e := echo.New()
	ctx := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())

	err := recovermiddleware()(func(ctx shared.Context) error {
		panic("nil map")
	})(ctx)

	assert.Equal(t, 500, httpCode(t, err))
}
