package complaint

import (
	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
)

// RequiredFields lists the detail keys a type needs, in check order.
func RequiredFields(t entity.ComplaintType) []string {
	switch t {
	case entity.ComplaintTypeLiveDemo:
		return []string{"preferred_date", "preferred_time", "business_name", "contact_number", "demo_type"}
	case entity.ComplaintTypeTechnicalIssue:
		return []string{"issue_description"}
	case entity.ComplaintTypeBillingIssue:
		return []string{"invoice_id", "amount", "currency", "issue_reason"}
	case entity.ComplaintTypeFeedback:
		return nil
	}
	return nil
}

// ValidateDetails returns ErrDetailsRequired for a nil payload, otherwise the
// first missing required field. Errors are not aggregated.
func ValidateDetails(t entity.ComplaintType, details entity.ComplaintDetails) error {
	if details == nil {
		return ErrDetailsRequired
	}
	for _, field := range RequiredFields(t) {
		if isBlank(details[field]) {
			return &MissingFieldError{Field: field, Type: t}
		}
	}
	return nil
}

// isBlank treats null, "", false and numeric zero as missing.
func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	case float32:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	case int32:
		return x == 0
	}
	return false
}
