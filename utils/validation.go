package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	expiryRegex  = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	pincodeRegex = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	xssPatterns = map[string]string{
		`(?i)(<script.*>)`:  "script tag found",
		`(?i)(javascript:)`: "JavaScript protocol found",
		`(?i)(onerror=)`:    "onerror event handler found",
		`(?i)(onload=)`:     "onload event handler found",
	}
)

// ValidateXSS checks free text for common XSS patterns
func ValidateXSS(input string) (bool, string) {
	for pattern, message := range xssPatterns {
		if matched, _ := regexp.MatchString(pattern, input); matched {
			return false, "XSS detected: " + message
		}
	}
	return true, ""
}

// ValidatePrice validates a price
func ValidatePrice(price float64) error {
	if price <= 0 {
		return fmt.Errorf("price must be greater than 0")
	}
	return nil
}

// ValidateCouponPercent checks a percentage coupon value
func ValidateCouponPercent(value float64) error {
	if value <= 0 {
		return fmt.Errorf("coupon discount must be greater than 0")
	}
	if value > 100 {
		return fmt.Errorf("percentage coupon value cannot exceed 100")
	}
	return nil
}

// CardDigits strips spaces and dashes from a card number and checks that
// what remains is 12 to 19 digits.
func CardDigits(number string) (string, error) {
	digits := strings.NewReplacer(" ", "", "-", "").Replace(number)
	if len(digits) < 12 || len(digits) > 19 {
		return "", fmt.Errorf("card number must be 12 to 19 digits")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("card number must contain only digits")
		}
	}
	return digits, nil
}

// MaskCardNumber keeps the last four digits only
func MaskCardNumber(digits string) string {
	if len(digits) < 4 {
		return "****"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

// ValidateExpiry checks an MM/YY expiry that has not passed as of now
func ValidateExpiry(expiry string, now time.Time) error {
	m := expiryRegex.FindStringSubmatch(strings.TrimSpace(expiry))
	if m == nil {
		return fmt.Errorf("expiry must be in MM/YY format")
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	// The card is valid through the last day of the expiry month.
	end := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location())
	if !now.Before(end) {
		return fmt.Errorf("card has expired")
	}
	return nil
}

// ValidatePincode accepts a 6-digit Indian PIN such as 600028.
func ValidatePincode(pincode string) error {
	if !pincodeRegex.MatchString(strings.TrimSpace(pincode)) {
		return fmt.Errorf("pincode must be a valid 6-digit PIN (e.g., 600028)")
	}
	return nil
}
