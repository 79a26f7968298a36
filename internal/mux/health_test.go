package mux

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bmizerany/assert"

	"cardroom-server/pkg/room"
)

func TestHealthHandler(t *testing.T) {
	ts := httptest.NewServer(NewMux("v1.2.3", room.New(room.Options{})))
	defer ts.Close()

	res, err := http.Get(ts.URL + "/health")
	assert.Equal(t, nil, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var expects healthResponse
	assert.Equal(t, nil, json.NewDecoder(res.Body).Decode(&expects))
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
}
