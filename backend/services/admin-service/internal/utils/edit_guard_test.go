package utils

import (
	"errors"
	"testing"

	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEditConflict(t *testing.T) {
	tests := []struct {
		name      string
		isNew     bool
		submitted int64
		persisted int64
		holder    string
		accepted  bool
		wantName  string
	}{
		{"same version", false, 3, 3, "Jane Doe", true, ""},
		{"newer persisted version", false, 3, 5, "Jane Doe", false, "Jane Doe"},
		{"one save behind", false, 1, 2, "jdoe", false, "jdoe"},
		{"submitted ahead is accepted", false, 7, 4, "Jane Doe", true, ""},
		{"new record skips the check", true, 0, 9, "Jane Doe", true, ""},
		{"no holder recorded", false, 1, 2, "  ", false, UnknownHolder},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := CheckEditConflict(tc.isNew, tc.submitted, tc.persisted, tc.holder)
			assert.Equal(t, tc.accepted, d.Accepted)
			if tc.accepted {
				assert.NoError(t, d.Err())
				return
			}
			assert.Equal(t, tc.wantName, d.Holder)

			err := d.Err()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantName)
			assert.True(t, errors.Is(err, utils.ErrRowVersionConflict))

			var conflict *EditConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, tc.submitted, conflict.SubmittedVersion)
			assert.Equal(t, tc.persisted, conflict.PersistedVersion)
		})
	}
}

func TestCheckEditConflict_Properties(t *testing.T) {
	for persisted := int64(0); persisted <= 12; persisted++ {
		for submitted := int64(0); submitted <= 12; submitted++ {
			d := CheckEditConflict(false, submitted, persisted, "holder")
			if submitted < persisted {
				assert.False(t, d.Accepted, "submitted=%d persisted=%d", submitted, persisted)
				assert.Error(t, d.Err())
			} else {
				assert.True(t, d.Accepted, "submitted=%d persisted=%d", submitted, persisted)
			}
			assert.True(t, CheckEditConflict(true, submitted, persisted, "holder").Accepted)
		}
	}
}

func TestCheckEditConflict_DoesNotTouchVersions(t *testing.T) {
	d := CheckEditConflict(false, 3, 5, "x")
	assert.Equal(t, int64(3), d.SubmittedVersion)
	assert.Equal(t, int64(5), d.PersistedVersion)
}
