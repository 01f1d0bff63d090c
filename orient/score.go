// SPDX-License-Identifier: MIT

package orient

import (
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/regression"
)

// scorer evaluates and caches local BIC scores.
type scorer struct {
	ds      *dataset.Dataset
	ridge   float64
	logN    float64
	targets []regression.Response
	cache   map[string]float64
	// fits and unconverged count regressions actually run.
	fits        int
	unconverged int
}

func newScorer(ds *dataset.Dataset, ridge float64) (*scorer, error) {
	s := &scorer{
		ds:      ds,
		ridge:   ridge,
		logN:    math.Log(float64(ds.N())),
		targets: make([]regression.Response, ds.P()),
		cache:   make(map[string]float64),
	}
	for v := range s.targets {
		y, err := regression.NewResponse(ds, v)
		if err != nil {
			return nil, err
		}
		s.targets[v] = y
	}

	return s, nil
}

// local returns LL(v | parents) − ½·k·log n. parents must be sorted.
func (s *scorer) local(v int, parents []int) (float64, error) {
	key := cacheKey(v, parents)
	if ls, ok := s.cache[key]; ok {
		return ls, nil
	}

	X, err := s.ds.Design(parents, true)
	if err != nil {
		return 0, err
	}
	m := regression.ForVariable(s.ds.Var(v))
	fit, err := m.FitFixed(X, s.targets[v], s.ds.Weights(), s.ridge, 0)
	if err != nil {
		return 0, err
	}
	s.fits++
	if !fit.Converged {
		s.unconverged++
	}
	ls := fit.LogLik - 0.5*float64(fit.NumParams())*s.logN
	s.cache[key] = ls

	return ls, nil
}

func cacheKey(v int, parents []int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(v))
	b.WriteByte('|')
	for k, u := range parents {
		if k > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(u))
	}

	return b.String()
}
