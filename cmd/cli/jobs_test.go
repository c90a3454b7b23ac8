package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/livebundle-github/internal/core"
	"github.com/sevigo/livebundle-github/internal/storage"
	"github.com/sevigo/livebundle-github/mocks"
)

func TestShowLatestJob(t *testing.T) {
	rec := &core.JobRecord{
		ID:             7,
		InstallationID: 123456,
		Owner:          "foo",
		Repo:           "bar",
		PRNumber:       42,
		HeadSHA:        "abc1234def",
		Status:         core.JobStatusDone,
	}

	testCases := []struct {
		name      string
		ref       string
		output    string
		mockSetup func(store *mocks.MockStore)
		wantOut   []string
		wantErr   bool
	}{
		{
			name:   "Latest job printed as yaml",
			ref:    "foo/bar#42",
			output: "yaml",
			mockSetup: func(store *mocks.MockStore) {
				store.EXPECT().GetLatestJobForPR(gomock.Any(), "foo", "bar", 42).Return(rec, nil)
			},
			wantOut: []string{"id: 7", "owner: foo", "prNumber: 42", "status: done"},
		},
		{
			name:   "Latest job printed as table",
			ref:    "https://github.com/foo/bar/pull/42",
			output: "table",
			mockSetup: func(store *mocks.MockStore) {
				store.EXPECT().GetLatestJobForPR(gomock.Any(), "foo", "bar", 42).Return(rec, nil)
			},
			wantOut: []string{"foo/bar#42", "abc1234"},
		},
		{
			name:   "No jobs for pull request",
			ref:    "foo/bar#42",
			output: "table",
			mockSetup: func(store *mocks.MockStore) {
				store.EXPECT().GetLatestJobForPR(gomock.Any(), "foo", "bar", 42).Return(nil, storage.ErrNotFound)
			},
			wantOut: []string{"No jobs recorded for foo/bar#42."},
		},
		{
			name:   "Store failure",
			ref:    "foo/bar#42",
			output: "table",
			mockSetup: func(store *mocks.MockStore) {
				store.EXPECT().GetLatestJobForPR(gomock.Any(), "foo", "bar", 42).Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
		{
			name:      "Invalid reference",
			ref:       "foo/bar",
			output:    "table",
			mockSetup: func(_ *mocks.MockStore) {},
			wantErr:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockStore(ctrl)
			tc.mockSetup(store)

			var out bytes.Buffer
			err := showLatestJob(context.Background(), store, tc.ref, tc.output, &out)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tc.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestWriteJobs_UnsupportedOutput(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, writeJobs(&out, nil, "xml"))
}
