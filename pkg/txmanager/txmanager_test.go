package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}
	assert.True(t, IsSerializationFailure(serialization))

	// Ошибка драйвера остается различимой после обертки в стиле репозитория
	errExec := errors.New("booking.repository: failed to execute query")
	repoWrapped := fmt.Errorf("%w: FindOverlapping - execute query: %w", errExec, serialization)
	assert.True(t, IsSerializationFailure(repoWrapped))

	// И после обертки коммита поверх репозиторной
	commitWrapped := fmt.Errorf("%w: commit: %w", ErrTxFailed, repoWrapped)
	assert.True(t, IsSerializationFailure(commitWrapped))

	// Сентинелы при этом тоже сохраняются в цепочке
	assert.True(t, errors.Is(repoWrapped, errExec))
	assert.True(t, errors.Is(commitWrapped, ErrTxFailed))
}

func TestIsSerializationFailure_OtherErrors(t *testing.T) {
	assert.False(t, IsSerializationFailure(nil))
	assert.False(t, IsSerializationFailure(errors.New("connection refused")))

	// Другие коды PostgreSQL не считаются serialization failure
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(fmt.Errorf("%w: commit: %w", ErrTxFailed, &pq.Error{Code: "23505"})))
}
