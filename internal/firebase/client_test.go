package firebase

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"local-library/internal/auth"
	"local-library/internal/catalog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		webAPIKey:  "test-key",
		signInURL:  srv.URL,
		httpClient: srv.Client(),
	}
}

func TestVerifyPassword_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		body, _ := io.ReadAll(r.Body)

		var req map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "jan@example.com", req["email"])
		assert.Equal(t, "secret", req["password"])

		_, _ = w.Write([]byte(`{"localId":"uid-123"}`))
	})

	uid, err := c.VerifyPassword(context.Background(), "jan@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "uid-123", uid)
}

func TestVerifyPassword_ErrorMapping(t *testing.T) {
	cases := map[string]error{
		"INVALID_PASSWORD":          auth.ErrInvalidCredentials,
		"EMAIL_NOT_FOUND":           auth.ErrInvalidCredentials,
		"INVALID_LOGIN_CREDENTIALS": auth.ErrInvalidCredentials,
		"USER_DISABLED":             auth.ErrInactive,
	}

	for message, want := range cases {
		t.Run(message, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":{"message":"` + message + `"}}`))
			})

			_, err := c.VerifyPassword(context.Background(), "jan@example.com", "bad")
			assert.ErrorIs(t, err, want)
		})
	}
}

func TestVerifyPassword_MissingAPIKey(t *testing.T) {
	c := &Client{httpClient: http.DefaultClient}

	_, err := c.VerifyPassword(context.Background(), "jan@example.com", "secret")
	assert.Error(t, err)
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(status.Error(codes.NotFound, "missing")), catalog.ErrNotFound)

	other := status.Error(codes.Unavailable, "down")
	assert.Equal(t, other, notFound(other))
}

func TestDateConversion(t *testing.T) {
	assert.Nil(t, dateToTime(nil))
	assert.Nil(t, timeToDate(nil))

	d := civil.Date{Year: 2024, Month: time.March, Day: 15}
	ts := dateToTime(&d)
	require.NotNil(t, ts)
	assert.Equal(t, time.UTC, ts.Location())
	assert.Equal(t, 0, ts.Hour())

	back := timeToDate(ts)
	require.NotNil(t, back)
	assert.Equal(t, d, *back)
}

func TestInstanceDocConversion(t *testing.T) {
	due := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	bi := fromInstanceDoc("inst-1", instanceDoc{
		BookID:     "book-1",
		Imprint:    "Penguin, 2001",
		DueBack:    &due,
		Status:     "o",
		BorrowerID: "user-1",
	})

	assert.Equal(t, "inst-1", bi.ID)
	assert.Equal(t, "book-1", bi.BookID)
	require.NotNil(t, bi.DueBack)
	assert.Equal(t, "2024-04-01", bi.DueBack.String())
	assert.Equal(t, "user-1", bi.BorrowerID)
}
