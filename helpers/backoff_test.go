package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff(t *testing.T) {
	t.Parallel()
	b := Backoff{Min: time.Second, Max: 5 * time.Second, K: 2}
	assert.Equal(t, 1*time.Second, b.Failure())
	assert.Equal(t, 2*time.Second, b.Failure())
	assert.Equal(t, 4*time.Second, b.Failure())
	assert.Equal(t, 5*time.Second, b.Failure())
	assert.Equal(t, 5*time.Second, b.Failure())
	b.Reset()
	assert.Equal(t, 1*time.Second, b.Failure())
}

func TestIntSecondDefault(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 7*time.Second, IntSecondDefault(0, 7*time.Second))
	assert.Equal(t, 3*time.Second, IntSecondDefault(3, 7*time.Second))
}

func TestFoldErrors(t *testing.T) {
	t.Parallel()
	assert.NoError(t, FoldErrors(nil))
	assert.NoError(t, FoldErrors([]error{nil, nil}))
	err := FoldErrors([]error{errString("first"), nil, errString("second")})
	assert.EqualError(t, err, "first\nsecond")
}

type errString string

func (e errString) Error() string { return string(e) }
