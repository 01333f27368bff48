package notify

import (
	"bytes"
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Effiong06/Agri-Naija-Centre/internal/config"
)

func testMessage() Message {
	return Message{
		Subject: "New Contact Form Submission from Ada",
		Body:    "From: Ada <ada@example.com>\n\nMessage:\nHello",
		To:      []string{"editor@agri-naija.com"},
		ReplyTo: "ada@example.com",
	}
}

func TestBuildMsg(t *testing.T) {
	t.Run("Builds headers and body", func(t *testing.T) {
		m, err := buildMsg("site@agri-naija.com", testMessage())
		require.NoError(t, err)

		var buf bytes.Buffer
		_, err = m.WriteTo(&buf)
		require.NoError(t, err)

		raw := buf.String()
		assert.Contains(t, raw, "Subject: New Contact Form Submission from Ada")
		assert.Contains(t, raw, "editor@agri-naija.com")
		assert.Contains(t, raw, "Reply-To: <ada@example.com>")
		assert.Contains(t, raw, "site@agri-naija.com")
		assert.Contains(t, raw, "Hello")
	})

	t.Run("Rejects invalid sender", func(t *testing.T) {
		_, err := buildMsg("not an address", testMessage())
		assert.Error(t, err)
	})

	t.Run("Rejects invalid recipient", func(t *testing.T) {
		msg := testMessage()
		msg.To = []string{"nobody"}
		_, err := buildMsg("site@agri-naija.com", msg)
		assert.Error(t, err)
	})
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	expired, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want error
	}{
		{"deadline error", context.Background(), context.DeadlineExceeded, ErrTimeout},
		{"expired context", expired, errors.New("dial failed"), ErrTimeout},
		{"network timeout", context.Background(), &net.OpError{Op: "dial", Err: timeoutErr{}}, ErrTimeout},
		{"refused", context.Background(), errors.New("535 authentication failed"), ErrRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tt.ctx, tt.err), tt.want)
		})
	}
}

func TestSMTPDispatcher(t *testing.T) {
	// reserve a port and close it so the relay refuses the connection
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	cfg := config.Default()
	cfg.Mail.Enabled = true
	cfg.Mail.Host = "127.0.0.1"
	cfg.Mail.Port = port
	cfg.Mail.Username = "site@agri-naija.com"
	cfg.Mail.Timeout = time.Second

	core, logs := observer.New(zapcore.WarnLevel)
	d, err := NewSMTPDispatcher(cfg, zap.New(core))
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, 1, logs.FilterMessage("Notification dispatch failed").Len())
}

func TestLogDispatcher(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	d := NewLogDispatcher(zap.New(core))

	require.NoError(t, d.Dispatch(context.Background(), testMessage()))

	entries := logs.FilterMessage("Notification (mail disabled)").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "New Contact Form Submission from Ada", entries[0].ContextMap()["subject"])
	assert.Equal(t, "ada@example.com", entries[0].ContextMap()["reply_to"])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.Dispatch(ctx, testMessage()), ErrRejected)
}

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.Mail.Enabled = false

	d, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LogDispatcher{}, d)

	cfg.Mail.Enabled = true
	d, err = New(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &SMTPDispatcher{}, d)
}
