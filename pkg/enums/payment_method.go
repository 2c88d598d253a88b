package enums

// PaymentMethod describes how a sale is settled at the register.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCredit PaymentMethod = "credit"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCredit,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
// Unknown values fall back to cash, matching the register's behavior of
// never rejecting a sale over a malformed method field.
func ParsePaymentMethod(value string) PaymentMethod {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate
		}
	}
	return PaymentMethodCash
}
