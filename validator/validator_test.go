package validator

import (
	"testing"

	"hatchling/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidateBaby(t *testing.T) {
	v := New()

	tests := []struct {
		name        string
		baby        models.Baby
		wantErr     bool
		errContains string
	}{
		{
			name: "Valid baby",
			baby: models.Baby{
				SyncMeta:  models.SyncMeta{ParentID: "account-1"},
				Name:      "Aria",
				BirthDate: "2024-01-01",
				Gender:    "female",
			},
		},
		{
			name: "Missing name",
			baby: models.Baby{
				SyncMeta:  models.SyncMeta{ParentID: "account-1"},
				BirthDate: "2024-01-01",
			},
			wantErr:     true,
			errContains: "name is required",
		},
		{
			name: "Missing parent",
			baby: models.Baby{
				Name:      "Aria",
				BirthDate: "2024-01-01",
			},
			wantErr:     true,
			errContains: "parent_id is required",
		},
		{
			name: "Bad date format",
			baby: models.Baby{
				SyncMeta:  models.SyncMeta{ParentID: "account-1"},
				Name:      "Aria",
				BirthDate: "01/01/2024",
			},
			wantErr:     true,
			errContains: "birth_date must be in YYYY-MM-DD format",
		},
		{
			name: "Invalid gender",
			baby: models.Baby{
				SyncMeta:  models.SyncMeta{ParentID: "account-1"},
				Name:      "Aria",
				BirthDate: "2024-01-01",
				Gender:    "unknown",
			},
			wantErr:     true,
			errContains: "gender must be one of",
		},
		{
			name: "Invalid photo URL",
			baby: models.Baby{
				SyncMeta:  models.SyncMeta{ParentID: "account-1"},
				Name:      "Aria",
				BirthDate: "2024-01-01",
				PhotoURL:  "not a url",
			},
			wantErr:     true,
			errContains: "photo_url must be a valid URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.baby)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePatchSkipsUnsetFields(t *testing.T) {
	v := New()

	// An empty patch carries no fields, so nothing to validate
	assert.NoError(t, v.Validate(models.DiaperPatch{}))

	// A set field is still checked against its rules
	err := v.Validate(models.DiaperPatch{Type: strPtr("soggy")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type must be one of")

	assert.NoError(t, v.Validate(models.DiaperPatch{Type: strPtr("wet")}))
}

func TestValidationErrorFields(t *testing.T) {
	v := New()

	err := v.Validate(&models.Feeding{
		SyncMeta: models.SyncMeta{ParentID: "baby-1"},
		Type:     "juice",
		AmountML: -10,
	})
	require.Error(t, err)

	verrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, verrs, 2)

	fields := []string{verrs[0].Field, verrs[1].Field}
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "amount_ml")
}
