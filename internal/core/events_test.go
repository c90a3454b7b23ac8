package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobFromPullRequestEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    *Job
		wantErr error
	}{
		{
			name:    "Opened pull request",
			payload: `{"action":"opened","installation":{"id":123456},"repository":{"owner":{"login":"foo"},"name":"bar"},"number":456789}`,
			want:    &Job{InstallationID: 123456, Owner: "foo", PRNumber: 456789, Repo: "bar"},
		},
		{
			name:    "Synchronized pull request",
			payload: `{"action":"synchronize","installation":{"id":123456},"repository":{"owner":{"login":"foo"},"name":"bar"},"number":456789}`,
			want:    &Job{InstallationID: 123456, Owner: "foo", PRNumber: 456789, Repo: "bar"},
		},
		{
			name:    "Closed pull request is ignored",
			payload: `{"action":"closed","installation":{"id":123456},"repository":{"owner":{"login":"foo"},"name":"bar"},"number":456789}`,
			wantErr: ErrIgnoredEvent,
		},
		{
			name:    "Action match is case sensitive",
			payload: `{"action":"Opened","installation":{"id":1},"repository":{"owner":{"login":"foo"},"name":"bar"},"number":1}`,
			wantErr: ErrIgnoredEvent,
		},
		{
			name:    "Missing action is ignored",
			payload: `{"installation":{"id":1}}`,
			wantErr: ErrIgnoredEvent,
		},
		{
			name:    "Empty payload is ignored",
			payload: ``,
			wantErr: ErrIgnoredEvent,
		},
		{
			name:    "Invalid JSON is ignored",
			payload: `{"action":"opened"`,
			wantErr: ErrIgnoredEvent,
		},
		{
			name:    "Missing installation",
			payload: `{"action":"opened","repository":{"owner":{"login":"foo"},"name":"bar"},"number":1}`,
			wantErr: ErrMalformedEvent,
		},
		{
			name:    "Missing repository owner",
			payload: `{"action":"opened","installation":{"id":1},"repository":{"name":"bar"},"number":1}`,
			wantErr: ErrMalformedEvent,
		},
		{
			name:    "Missing repository name",
			payload: `{"action":"synchronize","installation":{"id":1},"repository":{"owner":{"login":"foo"}},"number":1}`,
			wantErr: ErrMalformedEvent,
		},
		{
			name:    "Missing pull request number",
			payload: `{"action":"opened","installation":{"id":1},"repository":{"owner":{"login":"foo"},"name":"bar"}}`,
			wantErr: ErrMalformedEvent,
		},
		{
			name:    "Wrongly typed number",
			payload: `{"action":"opened","installation":{"id":1},"repository":{"owner":{"login":"foo"},"name":"bar"},"number":"one"}`,
			wantErr: ErrMalformedEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JobFromPullRequestEvent([]byte(tt.payload))
			if tt.wantErr != nil {
				assert.Nil(t, got)
				assert.True(t, errors.Is(err, tt.wantErr), "got error %v, want %v", err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJob_Validate(t *testing.T) {
	valid := Job{InstallationID: 1, Owner: "foo", Repo: "bar", PRNumber: 2}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, "foo/bar", valid.FullName())

	invalid := []Job{
		{Owner: "foo", Repo: "bar", PRNumber: 2},
		{InstallationID: 1, Repo: "bar", PRNumber: 2},
		{InstallationID: 1, Owner: "foo", PRNumber: 2},
		{InstallationID: 1, Owner: "foo", Repo: "bar"},
	}
	for _, j := range invalid {
		assert.Error(t, j.Validate(), "job %+v", j)
	}
}
