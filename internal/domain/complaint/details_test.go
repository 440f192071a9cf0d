package complaint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
)

func TestValidateDetails_NilDetails(t *testing.T) {
	for _, typ := range entity.ComplaintTypes() {
		assert.ErrorIs(t, ValidateDetails(typ, nil), ErrDetailsRequired)
	}
}

func TestValidateDetails_LiveDemoEmptyNamesFirstField(t *testing.T) {
	err := ValidateDetails(entity.ComplaintTypeLiveDemo, entity.ComplaintDetails{})
	var mf *MissingFieldError
	require.ErrorAs(t, err, &mf)
	assert.Equal(t, "preferred_date", mf.Field)
	assert.Equal(t, "preferred_date is required for live_demo", err.Error())
}

func TestValidateDetails_FeedbackNeedsNothing(t *testing.T) {
	assert.NoError(t, ValidateDetails(entity.ComplaintTypeFeedback, entity.ComplaintDetails{}))
}

func TestValidateDetails_DeclarationOrder(t *testing.T) {
	cases := []struct {
		name    string
		typ     entity.ComplaintType
		details entity.ComplaintDetails
		want    string
	}{
		{
			name:    "live demo stops at first gap",
			typ:     entity.ComplaintTypeLiveDemo,
			details: entity.ComplaintDetails{"preferred_date": "2024-05-01", "preferred_time": "10:00", "demo_type": "online"},
			want:    "business_name",
		},
		{
			name:    "billing missing currency",
			typ:     entity.ComplaintTypeBillingIssue,
			details: entity.ComplaintDetails{"invoice_id": "INV-1", "amount": 20.5, "issue_reason": "double charge"},
			want:    "currency",
		},
		{
			name:    "billing zero amount counts as missing",
			typ:     entity.ComplaintTypeBillingIssue,
			details: entity.ComplaintDetails{"invoice_id": "INV-1", "amount": float64(0), "currency": "USD", "issue_reason": "x"},
			want:    "amount",
		},
		{
			name:    "technical blank description",
			typ:     entity.ComplaintTypeTechnicalIssue,
			details: entity.ComplaintDetails{"issue_description": ""},
			want:    "issue_description",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var mf *MissingFieldError
			require.ErrorAs(t, ValidateDetails(tc.typ, tc.details), &mf)
			assert.Equal(t, tc.want, mf.Field)
			assert.Equal(t, tc.typ, mf.Type)
		})
	}
}

func TestValidateDetails_Complete(t *testing.T) {
	details := entity.ComplaintDetails{
		"preferred_date": "2024-05-01",
		"preferred_time": "10:00",
		"business_name":  "Acme",
		"contact_number": "+15550100",
		"demo_type":      "onsite",
	}
	assert.NoError(t, ValidateDetails(entity.ComplaintTypeLiveDemo, details))
}
