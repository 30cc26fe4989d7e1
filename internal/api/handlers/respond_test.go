package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, map[string]float64{"ratio": 2000})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ratio": 2000}`, rec.Body.String())
}

func TestRespondJSON_UnencodableBody(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.NaN()} {
		rec := httptest.NewRecorder()
		respondJSON(rec, http.StatusOK, map[string]float64{"ratio": v})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Failed to encode response", body["error"])
	}
}
