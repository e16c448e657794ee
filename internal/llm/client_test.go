package llm

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteSingleObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"response": "hello there"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "mistral", "test-key", 5*time.Second)
	out, err := c.Complete("say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)
}

func TestCompleteAggregatesStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": "{\"insights\"", "done": false}` + "\n" +
			`{"response": ": []}", "done": true}` + "\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "mistral", "k", 5*time.Second)
	out, err := c.Complete("p")
	require.NoError(t, err)
	assert.Equal(t, `{"insights": []}`, out)
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "mistral", "k", 5*time.Second)
	_, err := c.Complete("p")
	assert.Error(t, err)
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"response": "too late"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "mistral", "k", 50*time.Millisecond)
	_, err := c.Complete("p")
	assert.Error(t, err, "a hung provider must not hang the caller")
}

func TestHasCredential(t *testing.T) {
	assert.False(t, NewClient("u", "m", "", time.Second).HasCredential())
	assert.True(t, NewClient("u", "m", "k", time.Second).HasCredential())
}

func TestAggregateStreamedResponseSkipsGarbage(t *testing.T) {
	body := `{"response": "a", "done": false}` + "\n" +
		"not json at all\n" +
		`{"response": "b", "done": true}`
	assert.Equal(t, "ab", AggregateStreamedResponse(body))
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		`{"a": 1}`:                                  `{"a": 1}`,
		"```json\n{\"a\": 1}\n```":                  `{"a": 1}`,
		"Sure!\n```\n{\"a\": 1}\n```\nthanks":       `{"a": 1}`,
		"Here is the object: {\"a\": 1} as asked.":  `{"a": 1}`,
		"leading text {\"a\": {\"b\": 2}} trailing": `{"a": {"b": 2}}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractJSON(in), "input %q", in)
	}
}
