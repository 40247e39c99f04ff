package estimator

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varqe-dev/varqe/internal/backend"
	"github.com/varqe-dev/varqe/pkg/circuit"
	"github.com/varqe-dev/varqe/pkg/operator"
)

func mustSum(t *testing.T, nq int, terms ...operator.Term) *operator.Sum {
	t.Helper()
	s := operator.NewSum(nq)
	for _, tm := range terms {
		require.NoError(t, s.Add(tm))
	}
	return s
}

func bellCircuit() *circuit.Circuit {
	c := circuit.New(2)
	c.H(0).CX(0, 1)
	return c
}

func TestNew(t *testing.T) {
	sim := backend.NewSimulator(1)

	tests := []struct {
		name     string
		strategy string
		opts     []Option
		wantErr  bool
	}{
		{name: "exact", strategy: StrategyExact},
		{name: "sampling with default shots", strategy: StrategySampling},
		{name: "sampling with explicit shots", strategy: StrategySampling, opts: []Option{WithShots(128)}},
		{name: "sampling with zero shots", strategy: StrategySampling, opts: []Option{WithShots(0)}, wantErr: true},
		{name: "unknown strategy", strategy: "annealer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := New(tt.strategy, sim, tt.opts...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.strategy, est.Name())
		})
	}
}

func TestExactExpectation(t *testing.T) {
	sim := backend.NewSimulator(1)
	est, err := New(StrategyExact, sim)
	require.NoError(t, err)

	bell := bellCircuit()

	tests := []struct {
		name string
		obs  *operator.Sum
		want float64
	}{
		{
			name: "ZZ on Bell state",
			obs:  mustSum(t, 2, operator.NewTerm(1, 2, map[int]operator.Pauli{0: operator.Z, 1: operator.Z})),
			want: 1,
		},
		{
			name: "XX on Bell state",
			obs:  mustSum(t, 2, operator.NewTerm(1, 2, map[int]operator.Pauli{0: operator.X, 1: operator.X})),
			want: 1,
		},
		{
			name: "YY on Bell state",
			obs:  mustSum(t, 2, operator.NewTerm(1, 2, map[int]operator.Pauli{0: operator.Y, 1: operator.Y})),
			want: -1,
		},
		{
			name: "single Z marginal vanishes",
			obs:  mustSum(t, 2, operator.NewTerm(1, 2, map[int]operator.Pauli{0: operator.Z})),
			want: 0,
		},
		{
			name: "constant offset",
			obs: mustSum(t, 2,
				operator.Identity(0.5, 2),
				operator.NewTerm(0.25, 2, map[int]operator.Pauli{0: operator.Z, 1: operator.Z})),
			want: 0.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := est.Expectation(context.Background(), bell, tt.obs)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-10)
		})
	}
}

func TestExactExpectationRejectsBadInputs(t *testing.T) {
	sim := backend.NewSimulator(1)
	est, err := New(StrategyExact, sim)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("qubit mismatch", func(t *testing.T) {
		obs := mustSum(t, 3, operator.Identity(1, 3))
		_, err := est.Expectation(ctx, bellCircuit(), obs)
		assert.Error(t, err)
	})

	t.Run("non-Hermitian observable", func(t *testing.T) {
		obs := mustSum(t, 2, operator.NewTerm(1i, 2, map[int]operator.Pauli{0: operator.Z}))
		_, err := est.Expectation(ctx, bellCircuit(), obs)
		assert.Error(t, err)
	})

	t.Run("nil observable", func(t *testing.T) {
		_, err := est.Expectation(ctx, bellCircuit(), nil)
		assert.Error(t, err)
	})
}

func TestSamplingExpectation(t *testing.T) {
	sim := backend.NewSimulator(7)
	est, err := New(StrategySampling, sim, WithShots(20000))
	require.NoError(t, err)

	bell := bellCircuit()
	obs := mustSum(t, 2,
		operator.Identity(-0.5, 2),
		operator.NewTerm(0.5, 2, map[int]operator.Pauli{0: operator.Z, 1: operator.Z}),
		operator.NewTerm(0.5, 2, map[int]operator.Pauli{0: operator.X, 1: operator.X}),
		operator.NewTerm(0.5, 2, map[int]operator.Pauli{0: operator.Y, 1: operator.Y}),
	)

	// Exact value is -0.5 + 0.5 + 0.5 - 0.5 = 0; shot noise on each of the
	// three measured groups scales like 1/sqrt(shots).
	got, err := est.Expectation(context.Background(), bell, obs)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 0.05)
}

func TestSamplingMatchesExactOnEigenstate(t *testing.T) {
	// |11> is a Z eigenstate, so parity estimation is noiseless and
	// sampling must agree with the exact strategy bit for bit.
	sim := backend.NewSimulator(3)
	prep := circuit.New(2)
	prep.X(0).X(1)

	obs := mustSum(t, 2,
		operator.NewTerm(0.7, 2, map[int]operator.Pauli{0: operator.Z}),
		operator.NewTerm(-0.3, 2, map[int]operator.Pauli{0: operator.Z, 1: operator.Z}),
	)

	exact, err := New(StrategyExact, sim)
	require.NoError(t, err)
	sampling, err := New(StrategySampling, sim, WithShots(256))
	require.NoError(t, err)

	wantExact, err := exact.Expectation(context.Background(), prep, obs)
	require.NoError(t, err)
	wantSampled, err := sampling.Expectation(context.Background(), prep, obs)
	require.NoError(t, err)

	assert.InDelta(t, -0.7+(-0.3), wantExact, 1e-10)
	assert.True(t, math.Abs(wantExact-wantSampled) < 1e-10)
}

func TestSamplingDeterministicForSeed(t *testing.T) {
	obs := mustSum(t, 2,
		operator.NewTerm(1, 2, map[int]operator.Pauli{0: operator.X, 1: operator.X}))

	run := func(seed int64) float64 {
		est, err := New(StrategySampling, backend.NewSimulator(seed), WithShots(512))
		require.NoError(t, err)
		got, err := est.Expectation(context.Background(), bellCircuit(), obs)
		require.NoError(t, err)
		return got
	}

	assert.Equal(t, run(42), run(42))
}

func TestSupportMask(t *testing.T) {
	tm := operator.NewTerm(1, 4, map[int]operator.Pauli{1: operator.X, 3: operator.Z})
	assert.Equal(t, uint64(0b1010), supportMask(tm))
}
