package failure

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/workflowsim-go/workflowsim/sim/config"
)

// NewDistributionFromSpec builds the Distribution named by spec's family
// keyword, sourcing randomness from rng. Used for the WED/queue/post
// delay distributions of config.OverheadParams (§4.4, §4.7). An
// empty family is not an error — callers treat a nil Distribution as "no
// delay".
func NewDistributionFromSpec(spec config.DistributionSpec, rng *rand.Rand) (Distribution, error) {
	family := strings.ToLower(spec.Family)
	if family == "" {
		return nil, nil
	}
	need := func(n int) error {
		if len(spec.Params) < n {
			return fmt.Errorf("failure: %s distribution requires %d params, got %d", family, n, len(spec.Params))
		}
		return nil
	}
	switch family {
	case "lognormal":
		if err := need(2); err != nil {
			return nil, err
		}
		return NewLognormal(rng, spec.Params[0], spec.Params[1]), nil
	case "weibull":
		if err := need(2); err != nil {
			return nil, err
		}
		return NewWeibull(rng, spec.Params[0], spec.Params[1]), nil
	case "gamma":
		if err := need(2); err != nil {
			return nil, err
		}
		return NewGamma(rng, spec.Params[0], spec.Params[1]), nil
	case "normal":
		if err := need(2); err != nil {
			return nil, err
		}
		return NewNormal(rng, spec.Params[0], spec.Params[1]), nil
	default:
		return nil, fmt.Errorf("failure: unrecognized distribution family %q", spec.Family)
	}
}
