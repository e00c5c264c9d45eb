// Package payment validates mock checkout payment forms: digit
// normalization, Luhn checksum, expiry policy, CVC length and card brand
// detection. Nothing here talks to a real payment network.
package payment

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Brand string

const (
	BrandVisa       Brand = "visa"
	BrandMastercard Brand = "mastercard"
	BrandAmex       Brand = "amex"
	// BrandGeneric is the fallback when no known IIN matches.
	BrandGeneric Brand = "card"
)

const minCardDigits = 12
const maxCardDigits = 19

// Form carries the already-parsed checkout form fields. It is transient
// and never persisted raw.
type Form struct {
	Name       string
	Email      string
	CardNumber string
	Exp        string
	CVC        string
}

// Result aggregates all validation failures. The normalized digit strings
// are populated regardless of validity so callers can still derive e.g.
// the card brand, but no order may be created unless Valid is true.
type Result struct {
	Valid      bool
	Errors     []string
	CardDigits string
	ExpDigits  string
	CVCDigits  string
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Digits strips every non-digit rune from the input.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LuhnCheck reports whether the digit string passes the Luhn checksum.
// Strings shorter than 12 digits always fail, whatever their checksum.
func LuhnCheck(digits string) bool {
	if len(digits) < minCardDigits {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if d < '0' || d > '9' {
			return false
		}
		n := int(d - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return sum%10 == 0
}

// DetectBrand classifies a digit string by its issuer prefix. Checks run
// visa, mastercard, amex, then fall back to the generic brand. Strings too
// short to carry a prefix classify as generic.
func DetectBrand(digits string) Brand {
	digits = Digits(digits)
	switch {
	case len(digits) >= 7 && digits[0] == '4':
		return BrandVisa
	case len(digits) >= 7 && digits[0] == '5' && digits[1] >= '1' && digits[1] <= '5':
		return BrandMastercard
	case len(digits) >= 7 && digits[0] == '2' && inMastercardRange(digits[:3]):
		return BrandMastercard
	case len(digits) >= 7 && digits[0] == '3' && (digits[1] == '4' || digits[1] == '7'):
		return BrandAmex
	default:
		return BrandGeneric
	}
}

// inMastercardRange covers the 2221-2720 IIN series at three-digit
// precision (222 through 271).
func inMastercardRange(prefix string) bool {
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return false
	}
	return n >= 222 && n <= 271
}

// ValidateForm runs every check and accumulates all failures; it never
// short-circuits, so a form with several defects reports them together.
// The reference time is injected so expiry tests are deterministic.
func ValidateForm(f Form, now time.Time) Result {
	res := Result{
		CardDigits: Digits(f.CardNumber),
		ExpDigits:  Digits(f.Exp),
		CVCDigits:  Digits(f.CVC),
	}
	if len(res.CVCDigits) > 4 {
		res.CVCDigits = res.CVCDigits[:4]
	}

	if len(strings.TrimSpace(f.Name)) < 3 {
		res.Errors = append(res.Errors, "name on card must be at least 3 characters")
	}

	if f.Email != "" && !emailPattern.MatchString(f.Email) {
		res.Errors = append(res.Errors, "enter a valid e-mail address or leave it empty")
	}

	if len(res.CardDigits) < minCardDigits || len(res.CardDigits) > maxCardDigits {
		res.Errors = append(res.Errors, "card number must be 12 to 19 digits")
	}
	if !LuhnCheck(res.CardDigits) {
		res.Errors = append(res.Errors, "card number failed verification")
	}

	if len(res.ExpDigits) != 4 {
		res.Errors = append(res.Errors, "expiry must be in MM/YY format")
	} else {
		month, _ := strconv.Atoi(res.ExpDigits[:2])
		year, _ := strconv.Atoi(res.ExpDigits[2:])
		if month < 1 || month > 12 {
			res.Errors = append(res.Errors, "expiry month is invalid")
		} else if expired(month, 2000+year, now) {
			res.Errors = append(res.Errors, "card appears to be expired")
		}
	}

	if len(res.CVCDigits) < 3 {
		res.Errors = append(res.Errors, "CVC must be 3 or 4 digits")
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// expired reports whether the card is no longer usable at the reference
// time. A card stays valid through the whole of its expiry month.
func expired(month, year int, now time.Time) bool {
	deadline := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location())
	return !deadline.After(now)
}

// MaskedDescriptor renders the card as shown to the customer after a
// successful charge, e.g. "VISA •••• 1111".
func MaskedDescriptor(brand Brand, last4 string) string {
	return strings.ToUpper(string(brand)) + " •••• " + last4
}

// Last4 returns the trailing four digits, or the whole string when it is
// shorter than four.
func Last4(digits string) string {
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
