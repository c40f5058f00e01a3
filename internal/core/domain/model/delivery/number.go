package delivery

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"fulfillment/internal/pkg/errs"
)

const numberSequenceSpace = 1_000_000

var numberPattern = regexp.MustCompile(`^DN-\d{8}-\d{6}$`)

// Number is the human readable delivery identifier, DN-YYYYMMDD-NNNNNN.
// It is unique across all tenants.
type Number string

// GenerateNumber builds a candidate number for the given day. The suffix is random;
// callers must check uniqueness against the store and regenerate on collision.
func GenerateNumber(at time.Time) Number {
	return Number(fmt.Sprintf("DN-%s-%06d", at.UTC().Format("20060102"), rand.IntN(numberSequenceSpace)))
}

// ParseNumber validates a number read from storage or a request.
func ParseNumber(value string) (Number, error) {
	number := Number(value)
	if err := number.Validate(); err != nil {
		return "", err
	}
	return number, nil
}

func (n Number) Validate() error {
	if !numberPattern.MatchString(string(n)) {
		return errs.NewValueIsInvalidErrorWithCause("deliveryNumber", fmt.Errorf("%q does not match DN-YYYYMMDD-NNNNNN", string(n)))
	}
	return nil
}

func (n Number) String() string {
	return string(n)
}
