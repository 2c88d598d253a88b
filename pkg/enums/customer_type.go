package enums

// CustomerType distinguishes anonymous walk-in sales from member sales.
type CustomerType string

const (
	CustomerTypeWalkIn CustomerType = "walkin"
	CustomerTypeMember CustomerType = "member"
)

var validCustomerTypes = []CustomerType{
	CustomerTypeWalkIn,
	CustomerTypeMember,
}

// String implements fmt.Stringer.
func (c CustomerType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomerType.
func (c CustomerType) IsValid() bool {
	for _, candidate := range validCustomerTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerType converts raw input into a CustomerType, defaulting to
// walk-in for anything unrecognized.
func ParseCustomerType(value string) CustomerType {
	for _, candidate := range validCustomerTypes {
		if string(candidate) == value {
			return candidate
		}
	}
	return CustomerTypeWalkIn
}
