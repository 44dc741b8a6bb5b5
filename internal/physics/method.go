package physics

import (
	"fmt"
	"strings"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/integrators"
)

// Method selects the integration scheme. The zero value is RK4.
type Method int

const (
	RK4 Method = iota
	Euler
)

func (m Method) String() string {
	switch m {
	case RK4:
		return "rk4"
	case Euler:
		return "euler"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rk4", "":
		return RK4, nil
	case "euler":
		return Euler, nil
	default:
		return 0, fmt.Errorf("%w: %q (want rk4 or euler)", dynamo.ErrUnknownMethod, s)
	}
}

// Methods lists the supported method names.
func Methods() []string {
	return []string{RK4.String(), Euler.String()}
}

// newIntegrator returns a fresh integrator; RK4 keeps scratch buffers, so
// instances are never shared between runs.
func (m Method) newIntegrator() (dynamo.Integrator, error) {
	switch m {
	case RK4:
		return integrators.NewRK4(), nil
	case Euler:
		return integrators.NewEuler(), nil
	default:
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownMethod, m)
	}
}
