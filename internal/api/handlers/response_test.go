package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Conflict", body.Error)
	assert.Equal(t, "занято", body.Message)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "x", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(r, &dst), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"other":1}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"})
	id, err := PathInt64(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": raw})
		_, err := PathInt64(r, "id")
		assert.ErrorIs(t, err, ErrInvalidPathParam, raw)
	}
}

func TestQueryInt(t *testing.T) {
	v, err := QueryInt(httptest.NewRequest(http.MethodGet, "/?duration=30", nil), "duration")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 30, *v)

	v, err = QueryInt(httptest.NewRequest(http.MethodGet, "/", nil), "duration")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = QueryInt(httptest.NewRequest(http.MethodGet, "/?duration=x", nil), "duration")
	assert.Error(t, err)
}
