package carrier

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Kind selects the integration used for a carrier. The empty Kind means
// "infer from the carrier name".
type Kind string

const (
	KindAuto    Kind = ""
	KindDHL     Kind = "DHL"
	KindUPS     Kind = "UPS"
	KindGLS     Kind = "GLS"
	KindGeneric Kind = "GENERIC"
)

// ParseKind accepts any case; blank input yields KindAuto.
func ParseKind(value string) (Kind, error) {
	kind := Kind(strings.ToUpper(strings.TrimSpace(value)))
	if err := kind.Validate(); err != nil {
		return KindAuto, err
	}
	return kind, nil
}

func (k Kind) Validate() error {
	switch k {
	case KindAuto, KindDHL, KindUPS, KindGLS, KindGeneric:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a supported carrier kind", string(k)))
	}
}

func (k Kind) String() string {
	return string(k)
}

// KindFromName applies the name heuristic: a case-insensitive substring match
// checked in the order dhl, ups, gls. Anything else is generic.
func KindFromName(name string) Kind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "dhl"):
		return KindDHL
	case strings.Contains(lower, "ups"):
		return KindUPS
	case strings.Contains(lower, "gls"):
		return KindGLS
	default:
		return KindGeneric
	}
}
