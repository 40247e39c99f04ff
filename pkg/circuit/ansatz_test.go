package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHartreeFock(t *testing.T) {
	c, err := HartreeFock(4, []int{0, 1})
	require.NoError(t, err)
	require.Len(t, c.Instructions, 2)
	for _, in := range c.Instructions {
		assert.Equal(t, GateX, in.Gate)
	}

	_, err = HartreeFock(2, []int{5})
	assert.Error(t, err)
}

func TestUCCDoubles(t *testing.T) {
	c, err := UCCDoubles()
	require.NoError(t, err)
	assert.Equal(t, 4, c.NumQubits)
	assert.Equal(t, 1, c.NumParams)
	assert.NoError(t, c.Validate())
}

func TestTwoLocalParamCount(t *testing.T) {
	tests := []struct {
		nq, reps int
		params   int
	}{
		{nq: 2, reps: 1, params: 4},
		{nq: 4, reps: 2, params: 12},
		{nq: 1, reps: 3, params: 4},
	}
	for _, tc := range tests {
		c, err := TwoLocal(tc.nq, tc.reps)
		require.NoError(t, err)
		assert.Equal(t, tc.params, c.NumParams)
		assert.NoError(t, c.Validate())
	}
}

func TestBuildAnsatz(t *testing.T) {
	_, err := BuildAnsatz(AnsatzUCCDoubles, 4, 0)
	assert.NoError(t, err)

	_, err = BuildAnsatz(AnsatzUCCDoubles, 6, 0)
	assert.Error(t, err, "ucc-doubles is a 4-qubit ansatz")

	_, err = BuildAnsatz(AnsatzTwoLocal, 4, 2)
	assert.NoError(t, err)

	_, err = BuildAnsatz(AnsatzKind("bogus"), 4, 1)
	assert.Error(t, err)
}
