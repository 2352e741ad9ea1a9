package accel

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestDefaultLoggerLevels(t *testing.T) {
	var buf lockedBuffer
	l := NewLoggerTo(&buf, "unit", false)
	assert.False(t, l.DebugEnabled())

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Warnf("careful")
	l.Errorf("broken")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[unit] INFO: shown 2")
	assert.Contains(t, out, "WARNING: careful")
	assert.Contains(t, out, "ERROR: broken")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("visible")
	assert.Contains(t, buf.String(), "DEBUG: visible")
}

func TestLoggersDoNotShareLevels(t *testing.T) {
	var a, b lockedBuffer
	la := NewLoggerTo(&a, "a", true)
	lb := NewLoggerTo(&b, "b", false)
	la.Debugf("from a")
	lb.Debugf("from b")
	assert.Contains(t, a.String(), "from a")
	assert.Empty(t, b.String())
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Errorf("dropped")
	assert.NotNil(t, orNop(nil))
}
