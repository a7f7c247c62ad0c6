package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestStartRetryJob(t *testing.T) {
	f := newDispatchFixture(t)
	f.issue(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := StartRetryJob(ctx, f.dispatcher, 10*time.Millisecond)

	require.Eventually(t, func() bool { return f.mailer.count() == 1 }, 2*time.Second, 5*time.Millisecond)

	// picked up by a scheduled run
	f.issue(t, 2)
	require.Eventually(t, func() bool { return f.mailer.count() == 2 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("retry job did not stop")
	}

	assert.Equal(t, 2, f.mailer.count(), "sent participants are not mailed again")
}
