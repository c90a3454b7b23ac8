package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/livebundle-github/internal/config"
	"github.com/sevigo/livebundle-github/internal/core"
	"github.com/sevigo/livebundle-github/mocks"
)

func natsConfig() *config.Config {
	return &config.Config{Queue: config.QueueConfig{
		Backend:    config.QueueBackendNATS,
		NATSURL:    "nats://127.0.0.1:4222",
		Subject:    "livebundle.jobs",
		QueueGroup: "livebundle-workers",
	}}
}

func TestNATSConsumer_HandleMsg(t *testing.T) {
	job := core.Job{InstallationID: 123456, Owner: "foo", Repo: "bar", PRNumber: 456789}
	data, err := json.Marshal(job)
	require.NoError(t, err)

	t.Run("runs decoded job", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockJobRunner(ctrl)
		runner.EXPECT().Run(gomock.Any(), job).Return(nil)

		c := NewNATSConsumer(nil, natsConfig(), runner, discardLogger())
		c.handleMsg(context.Background(), &nats.Msg{Subject: "livebundle.jobs", Data: data})
	})

	t.Run("runner error is swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockJobRunner(ctrl)
		runner.EXPECT().Run(gomock.Any(), job).Return(errors.New("boom"))

		c := NewNATSConsumer(nil, natsConfig(), runner, discardLogger())
		c.handleMsg(context.Background(), &nats.Msg{Subject: "livebundle.jobs", Data: data})
	})

	t.Run("undecodable message is dropped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockJobRunner(ctrl)

		c := NewNATSConsumer(nil, natsConfig(), runner, discardLogger())
		c.handleMsg(context.Background(), &nats.Msg{Subject: "livebundle.jobs", Data: []byte("not json")})
	})
}

func TestJobWireFormat(t *testing.T) {
	job := core.Job{InstallationID: 123456, Owner: "foo", Repo: "bar", PRNumber: 456789}
	data, err := json.Marshal(job)
	require.NoError(t, err)
	assert.JSONEq(t, `{"installationId":123456,"owner":"foo","prNumber":456789,"repo":"bar"}`, string(data))
}

func TestConnectNATS_RequiresURL(t *testing.T) {
	cfg := natsConfig()
	cfg.Queue.NATSURL = ""
	_, err := ConnectNATS(cfg, "test")
	assert.Error(t, err)
}

func TestIsConnectionShutdown(t *testing.T) {
	// A subscription without a live connection reports the connection as closed.
	detached := (&nats.Subscription{}).Unsubscribe()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "Unsubscribe without connection", err: detached, want: true},
		{name: "Connection closed", err: nats.ErrConnectionClosed, want: true},
		{name: "Connection draining", err: nats.ErrConnectionDraining, want: true},
		{name: "Subscription already removed", err: fmt.Errorf("unsubscribe: %w", nats.ErrBadSubscription), want: true},
		{name: "Timeout", err: nats.ErrTimeout, want: false},
		{name: "Other error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isConnectionShutdown(tt.err))
		})
	}
}
