package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/livebundle-github/internal/core"
)

func TestBuildPullRequestPayload_RoundTripsThroughClassifier(t *testing.T) {
	payload, err := buildPullRequestPayload("synchronize", 123456, "foo", "bar", 456789)
	require.NoError(t, err)

	job, err := core.JobFromPullRequestEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, &core.Job{InstallationID: 123456, Owner: "foo", PRNumber: 456789, Repo: "bar"}, job)
}

func TestSendWebhook(t *testing.T) {
	var gotEvent, gotDelivery string
	var gotBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/", r.URL.Path)
		gotEvent = r.Header.Get("X-GitHub-Event")
		gotDelivery = r.Header.Get("X-GitHub-Delivery")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"ok":1}`))
	}))
	defer ts.Close()

	status, body, err := sendWebhook(context.Background(), ts.Client(), ts.URL+"/", []byte(`{"action":"opened"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ok":1}`, body)
	assert.Equal(t, "pull_request", gotEvent)
	assert.NotEmpty(t, gotDelivery)
	assert.JSONEq(t, `{"action":"opened"}`, string(gotBody))
}

func TestShortSHA(t *testing.T) {
	assert.Equal(t, "abc1234", shortSHA("abc1234def"))
	assert.Equal(t, "abc", shortSHA("abc"))
	assert.Equal(t, "-", shortSHA(""))
}
