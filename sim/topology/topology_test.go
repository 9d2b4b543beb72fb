package topology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBrite = `Topology: ( 3 Nodes, 2 Edges )
Model (1 - RT, 2 - Waxman, 3 - Barabasi): 2

Nodes: ( 3 )
0	10	20	1	1	-1	RT_NODE
1	30	40	1	1	-1	RT_NODE
2	50	60	1	1	-1	RT_NODE

Edges: ( 2 )
0	0	1	100.5	2.0	1000.0	-1	-1	U	RT_EDGE
1	1	2	50.25	4.5	2000.0	-1	-1	U	RT_EDGE
`

func TestParse_ReadsNodesAndEdges(t *testing.T) {
	nt, err := Parse(strings.NewReader(sampleBrite))
	require.NoError(t, err)
	assert.Equal(t, 3, nt.NumNodes)
	assert.InDelta(t, 2.0, nt.Delay(0, 1), 1e-9)
	assert.InDelta(t, 1000.0, nt.Bandwidth(0, 1), 1e-9)
	assert.InDelta(t, 4.5, nt.Delay(1, 2), 1e-9)
	// lookup is symmetric regardless of argument order.
	assert.InDelta(t, 4.5, nt.Delay(2, 1), 1e-9)
	assert.Equal(t, 0.0, nt.Delay(0, 2))
}
