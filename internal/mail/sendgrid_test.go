package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_Success(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewSendGridClient("sg_key", "orders@bookwizard.example")
	c.baseURL = srv.URL

	err := c.Send(context.Background(), "buyer@example.com", "Order confirmed", "Thanks!")

	require.NoError(t, err)
	assert.Equal(t, "Bearer sg_key", gotAuth)
	assert.Equal(t, "Order confirmed", gotBody["subject"])
}

func TestSend_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"message":"bad from address"}]}`))
	}))
	defer srv.Close()

	c := NewSendGridClient("sg_key", "bogus")
	c.baseURL = srv.URL

	err := c.Send(context.Background(), "buyer@example.com", "s", "b")

	assert.ErrorContains(t, err, "status 400")
}
