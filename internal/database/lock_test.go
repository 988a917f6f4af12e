package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/comptoir/internal/database"
)

func TestLockKey(t *testing.T) {
	assert.Equal(t, database.LockKey("salon", "women", "2024-03-10"), database.LockKey("salon", "women", "2024-03-10"))
	assert.NotEqual(t, database.LockKey("salon", "women", "2024-03-10"), database.LockKey("salon", "men", "2024-03-10"))
	assert.NotEqual(t, database.LockKey("ab", "c"), database.LockKey("a", "bc"))
}
