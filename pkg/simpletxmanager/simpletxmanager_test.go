package simpletxmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}
	assert.True(t, isSerializationFailure(serialization))

	// Обертки репозитория и коммита не прячут код ошибки драйвера
	errExec := errors.New("booking.repository: failed to execute query")
	repoWrapped := fmt.Errorf("%w: Create - execute insert: %w", errExec, serialization)
	assert.True(t, isSerializationFailure(repoWrapped))
	assert.True(t, isSerializationFailure(fmt.Errorf("%w: commit: %w", ErrTxFailed, repoWrapped)))
}

func TestIsSerializationFailure_OtherErrors(t *testing.T) {
	assert.False(t, isSerializationFailure(nil))
	assert.False(t, isSerializationFailure(errors.New("connection refused")))
	assert.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
}
