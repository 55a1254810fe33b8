package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c := New(Options{})

	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, DefaultUserAgent, c.userAgent)
	assert.NotNil(t, c.limiter)
	assert.NotNil(t, c.logger)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New(Options{BaseURL: "http://localhost:9999/api/v2/"})
	assert.Equal(t, "http://localhost:9999/api/v2", c.BaseURL())
}

func TestListPokemon(t *testing.T) {
	var gotLimit, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/pokemon", r.URL.Path)
		gotLimit = r.URL.Query().Get("limit")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":1302,"next":null,"previous":null,"results":[
			{"name":"bulbasaur","url":"https://pokeapi.co/api/v2/pokemon/1/"},
			{"name":"ivysaur","url":"https://pokeapi.co/api/v2/pokemon/2/"}]}`)
	}))
	defer server.Close()

	c := New(Options{BaseURL: server.URL + "/api/v2", UserAgent: "dex-test"})
	refs, err := c.ListPokemon(context.Background(), 151)
	require.NoError(t, err)

	assert.Equal(t, "151", gotLimit)
	assert.Equal(t, "dex-test", gotUA)
	require.Len(t, refs, 2)
	assert.Equal(t, "bulbasaur", refs[0].Name)
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon/2/", refs[1].URL)
}

func TestListPokemon_DefaultLimit(t *testing.T) {
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer server.Close()

	c := New(Options{BaseURL: server.URL})
	refs, err := c.ListPokemon(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, "151", gotLimit)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
}

func TestListPokemon_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(Options{BaseURL: server.URL})
	refs, err := c.ListPokemon(context.Background(), 151)

	assert.Nil(t, refs)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "failed to list pokemon")
}

func TestGetDetail_UsesAbsoluteURL(t *testing.T) {
	var gotPath string
	detail := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{
			"id": 6, "name": "charizard", "height": 17, "weight": 905, "base_experience": 267,
			"sprites": {"front_default": "https://img.example/6.png"},
			"stats": [{"base_stat": 78, "stat": {"name": "hp"}}],
			"types": [{"slot": 1, "type": {"name": "fire"}}, {"slot": 2, "type": {"name": "flying"}}]
		}`)
	}))
	defer detail.Close()

	// Base URL points elsewhere; the detail URL must be used verbatim.
	c := New(Options{BaseURL: "http://127.0.0.1:1/unused"})
	record, err := c.GetDetail(context.Background(), detail.URL+"/api/v2/pokemon/6/")
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/pokemon/6/", gotPath)
	assert.Equal(t, 6, record.ID)
	assert.Equal(t, "charizard", record.Name)
	assert.Equal(t, 905, record.Weight)
	assert.Equal(t, "https://img.example/6.png", record.Sprites.FrontDefault)
	require.Len(t, record.Types, 2)
	assert.Equal(t, "flying", record.Types[1].Type.Name)
}

func TestGetDetail_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))
	defer server.Close()

	c := New(Options{BaseURL: server.URL})
	_, err := c.GetDetail(context.Background(), server.URL+"/pokemon/1/")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON response")
}

func TestGetDetail_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	c := New(Options{BaseURL: server.URL})
	_, err := c.GetDetail(ctx, server.URL+"/pokemon/1/")
	assert.Error(t, err)
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{URL: "http://x/pokemon/1/", StatusCode: http.StatusNotFound}
	assert.Equal(t, "GET http://x/pokemon/1/: unexpected status 404 Not Found", err.Error())
}
