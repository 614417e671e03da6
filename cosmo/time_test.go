package cosmo

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/flrw/math/calc"
)

func gyr(t float64) float64 { return t / float64(Gyr) }

func TestAgeToday(t *testing.T) {
	age, err := Age(0)
	require.NoError(t, err)
	assert.InEpsilon(t, 13.81407, gyr(float64(age)), 1e-3)

	precise, err := Age(0, calc.RTol(1e-10))
	require.NoError(t, err)
	assert.InEpsilon(t, 13.81407, gyr(float64(precise)), 1e-5)

	lookback, err := LookbackTime(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, float64(lookback))
}

func TestAgeAtRedshift(t *testing.T) {
	age, err := Age(1, calc.RTol(1e-8))
	require.NoError(t, err)
	assert.InEpsilon(t, 5.854364, gyr(float64(age)), 1e-5)

	lookback, err := LookbackTime(1, calc.RTol(1e-8))
	require.NoError(t, err)
	assert.InEpsilon(t, 7.959703, gyr(float64(lookback)), 1e-5)
}

func TestLookbackIsAgeDifference(t *testing.T) {
	for name, c := range testCosmologies(t) {
		age0, err := c.Age(0)
		require.NoError(t, err)

		prev := float64(age0)
		for _, z := range []float64{0.1, 0.5, 1, 3, 10, 1100, 1e5} {
			age, err := c.Age(z)
			require.NoError(t, err, "%s, z = %g", name, z)
			lookback, err := c.LookbackTime(z)
			require.NoError(t, err, "%s, z = %g", name, z)

			assert.InDelta(t, float64(age0-age), float64(lookback),
				2e-3*float64(age0), "%s, z = %g", name, z)
			assert.Less(t, float64(age), prev, "%s, z = %g", name, z)
			prev = float64(age)
		}
	}
}

func TestFutureAge(t *testing.T) {
	age0, err := Age(0)
	require.NoError(t, err)
	future, err := Age(-0.5)
	require.NoError(t, err)
	assert.Greater(t, float64(future), float64(age0))

	lookback, err := LookbackTime(-0.5)
	require.NoError(t, err)
	assert.Less(t, float64(lookback), 0.0)
}

func TestAgeIntegrationBudget(t *testing.T) {
	_, err := Age(0, calc.RTol(1e-14), calc.MaxEvals(50))
	require.Error(t, err)
	assert.True(t, errors.Is(err, calc.ErrNoConvergence))
	assert.False(t, errors.Is(err, ErrInvalidParameter))

	var qe *calc.QuadError
	assert.True(t, errors.As(err, &qe))
}

func TestAgeTable(t *testing.T) {
	tab, err := NewAgeTable(Planck18, 20, 200)
	require.NoError(t, err)
	assert.Same(t, Planck18, tab.Cosmology())
	assert.Equal(t, 20.0, tab.MaxRedshift())

	for _, z := range []float64{0, 0.1, 1, 5, 19.5, 20} {
		want, err := Age(z, calc.RTol(1e-8))
		require.NoError(t, err)
		got, err := tab.Age(z)
		require.NoError(t, err)
		assert.InEpsilon(t, float64(want), float64(got), 1e-4, "z = %g", z)

		zz, err := tab.Redshift(got)
		require.NoError(t, err)
		assert.InDelta(t, z, zz, 1e-3*math.Max(1, z), "z = %g", z)
	}

	for _, z := range []float64{0.5, 1, 5, 10} {
		e, err := Planck18.HubbleEvolution(z)
		require.NoError(t, err)
		want := -float64(Planck18.HubbleTime()) / ((1 + z) * e)
		got, err := tab.TimeDerivative(z)
		require.NoError(t, err)
		assert.InEpsilon(t, want, float64(got), 1e-3, "z = %g", z)
	}
	_, err = tab.TimeDerivative(21)
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	lookback, err := tab.LookbackTime(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, float64(lookback))

	_, err = tab.Age(21)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = tab.Age(-0.1)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = tab.Redshift(20 * Gyr)
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = NewAgeTable(Planck18, 0, 10)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = NewAgeTable(Planck18, 10, 2)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestConcurrentEvaluation(t *testing.T) {
	tab, err := NewAgeTable(Planck18, 10, 100)
	require.NoError(t, err)

	want, err := Planck18.Age(2)
	require.NoError(t, err)
	wantTab, err := tab.Age(2)
	require.NoError(t, err)

	check := func(j int) error {
		age, err := Planck18.Age(2)
		if err != nil {
			return err
		} else if age != want {
			return errors.New("age changed between calls")
		}

		omegaM, err := Planck18.OmegaMatter(float64(j))
		if err != nil {
			return err
		} else if !(omegaM > 0) {
			return errors.New("non-positive Omega_m")
		}

		ageTab, err := tab.Age(2)
		if err != nil {
			return err
		} else if ageTab != wantTab {
			return errors.New("table age changed between calls")
		}
		return nil
	}

	wg := &sync.WaitGroup{}
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if err := check(j); err != nil {
					errs[i] = err
					return
				}
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}
