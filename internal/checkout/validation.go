package checkout

import (
	"strings"

	domain "github.com/coastlinevibe/eubiosis/internal/entity"
)

// ValidationPolicy is a swappable configuration for the step gates. The
// canonical policy is one named value; the old funnel variants that required
// every field (province and country included) at the details step remain
// expressible for comparison tests.
type ValidationPolicy struct {
	RequiredDetailsFields    []string `koanf:"required_details_fields"`
	RequireEmailConfirmation bool     `koanf:"require_email_confirmation"`
}

// CanonicalValidationPolicy gates Details on the six fields a courier and a
// confirmation mail actually need. Province is deliberately not required
// here; it only matters once a payment channel must be resolved.
func CanonicalValidationPolicy() ValidationPolicy {
	return ValidationPolicy{
		RequiredDetailsFields: []string{
			"firstName", "email", "phone", "address", "city", "postalCode",
		},
		RequireEmailConfirmation: true,
	}
}

// ValidationError lists every unmet condition of a refused transition, not
// just the first, so the UI can mark all offending inputs in one pass.
type ValidationError struct {
	Conditions []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Conditions, "; ")
}

func profileField(p domain.CustomerProfile, name string) string {
	switch name {
	case "firstName":
		return p.FirstName
	case "lastName":
		return p.LastName
	case "email":
		return p.Email
	case "phone":
		return p.Phone
	case "address":
		return p.Address
	case "city":
		return p.City
	case "postalCode":
		return p.PostalCode
	case "province":
		return p.Province
	case "country":
		return p.Country
	default:
		return ""
	}
}
