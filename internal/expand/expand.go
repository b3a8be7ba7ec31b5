// Package expand enumerates the concrete instances implied by parameter
// lists: the cartesian product of every parameter's value domain.
package expand

import (
	"fmt"

	"github.com/nucleron/yaplc/internal/model"
)

// MaxTuples bounds the size of a single expansion.
const MaxTuples = 1 << 20

// Domains returns the value domain of each parameter, in order. A named
// parameter whose name appears in fixed collapses to that single value.
func Domains(params []model.Parameter, fixed map[string]string) ([][]string, error) {
	domains := make([][]string, len(params))
	for i, p := range params {
		if v, ok := fixed[p.Name]; ok && p.Named() {
			domains[i] = []string{v}
			continue
		}
		if p.Kind == model.Range && p.Len() == 0 {
			return nil, fmt.Errorf("parameter %s: range %d..%d cannot be expanded", p.String(), p.Min, p.Max)
		}
		domains[i] = p.Values()
	}
	return domains, nil
}

// Count returns the number of tuples Join would produce.
func Count(params []model.Parameter, fixed map[string]string) (int, error) {
	domains, err := Domains(params, fixed)
	if err != nil {
		return 0, err
	}
	return product(domains)
}

func product(domains [][]string) (int, error) {
	total := 1
	for _, d := range domains {
		if len(d) == 0 {
			return 0, nil
		}
		if total > MaxTuples/len(d) {
			return 0, fmt.Errorf("expansion too large: more than %d combinations", MaxTuples)
		}
		total *= len(d)
	}
	return total, nil
}

// Join returns the cartesian product of the parameter domains. Every tuple
// holds one value per parameter in parameter order, and the leftmost
// parameter varies slowest. An empty parameter list yields a single empty
// tuple.
func Join(params []model.Parameter, fixed map[string]string) ([][]string, error) {
	domains, err := Domains(params, fixed)
	if err != nil {
		return nil, err
	}
	total, err := product(domains)
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, total)
	if total == 0 {
		return out, nil
	}

	idx := make([]int, len(domains))
	for {
		tuple := make([]string, len(domains))
		for i, d := range domains {
			tuple[i] = d[idx[i]]
		}
		out = append(out, tuple)

		// odometer step, rightmost position first
		pos := len(idx) - 1
		for ; pos >= 0; pos-- {
			idx[pos]++
			if idx[pos] < len(domains[pos]) {
				break
			}
			idx[pos] = 0
		}
		if pos < 0 {
			return out, nil
		}
	}
}
