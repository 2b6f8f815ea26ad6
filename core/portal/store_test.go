package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NextID(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want int
	}{
		{name: "empty collection", ids: nil, want: 1},
		{name: "sequential", ids: []int{1, 2, 3}, want: 4},
		{name: "gaps", ids: []int{1, 7, 3}, want: 8},
		{name: "single", ids: []int{42}, want: 43},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.ids))
		})
	}
}

func Test_ApplyPatch(t *testing.T) {
	grade := 8.5
	acc := Account{
		ID:              3,
		Email:           "a@x.com",
		Password:        "pwd",
		UserType:        UserTypeStudent,
		ProfileComplete: false,
		Name:            "A",
		Phone:           "9000000000",
		AverageGrade:    &grade,
	}

	patch := Patch{
		"name":            "B",
		"profileComplete": true,
		"averageGrade":    nil,
	}
	require.NoError(t, ApplyPatch(&acc, patch))

	// patched fields overwrite
	assert.Equal(t, "B", acc.Name)
	assert.True(t, acc.ProfileComplete)
	assert.Nil(t, acc.AverageGrade)
	// the rest is retained
	assert.Equal(t, 3, acc.ID)
	assert.Equal(t, "a@x.com", acc.Email)
	assert.Equal(t, "pwd", acc.Password)
	assert.Equal(t, "9000000000", acc.Phone)
}

func Test_ApplyPatch_idempotent(t *testing.T) {
	prj := Project{ID: 1, Title: "One", Status: "open"}
	patch := Patch{"status": "closed", "deadline": "2026-01-31"}

	require.NoError(t, ApplyPatch(&prj, patch))
	once := prj
	require.NoError(t, ApplyPatch(&prj, patch))

	assert.Equal(t, once, prj)
}
