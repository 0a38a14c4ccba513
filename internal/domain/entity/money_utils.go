package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a decimal string amount and converts it to minor units.
// Balance math never touches binary floating point: the string is split on the
// decimal point and reassembled as an integer.
// - "10"    -> 1000
// - "10.5"  -> 1050
// - "10.15" -> 1015
// Negative values, malformed numbers and more than two decimal places are rejected.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return 0, fmt.Errorf("%w: amount cannot be negative", errs.ErrInvalidAmount)
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var integerValue string
	if len(parts) == 1 {
		integerValue = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			integerValue = parts[0] + "00"
		case 1:
			integerValue = parts[0] + parts[1] + "0"
		case 2:
			integerValue = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(integerValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	return value, nil
}

// ParsePositiveAmount is ParseAmount with a strict positivity requirement.
// Mutating ledger operations use this form: a zero fund or withdrawal is a
// caller mistake, not a no-op.
func ParsePositiveAmount(amount string) (int64, error) {
	value, err := ParseAmount(amount)
	if err != nil {
		return 0, err
	}
	if value == 0 {
		return 0, fmt.Errorf("%w: amount must be greater than zero", errs.ErrInvalidAmount)
	}
	return value, nil
}

// FormatAmount converts minor units to a decimal string with exactly two
// decimal places.
// - 1015 becomes "10.15"
// - 1000 becomes "10.00"
// - 5 becomes "0.05"
func FormatAmount(minorUnits int64) string {
	isNegative := minorUnits < 0
	if isNegative {
		minorUnits = -minorUnits
	}

	amountStr := strconv.FormatInt(minorUnits, 10)
	for len(amountStr) < 3 {
		amountStr = "0" + amountStr
	}

	decimalPos := len(amountStr) - MaxDecimalPlaces
	wholePart := amountStr[:decimalPos]
	decimalPart := amountStr[decimalPos:]

	if isNegative {
		return "-" + wholePart + "." + decimalPart
	}
	return wholePart + "." + decimalPart
}
