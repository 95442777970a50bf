package pysrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMethodCalls(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		method string
		count  int
	}{
		{"simple method", "predictor.deploy(initial_instance_count=1)\n", "deploy", 1},
		{"chained receiver", "get_predictor().deploy(x=1)\n", "deploy", 1},
		{"bare function not matched", "deploy(x=1)\n", "deploy", 0},
		{"longer name not matched", "p.deploy_model(x=1)\n", "deploy", 0},
		{"inside string ignored", "s = 'p.deploy(x=1)'\n", "deploy", 0},
		{"attribute access only", "fn = p.deploy\n", "deploy", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, FindMethodCalls(tt.src, tt.method), tt.count)
		})
	}
}

func TestCallHasArgs(t *testing.T) {
	src := "a.delete_endpoint()\nb.delete_endpoint( )\nc.delete_endpoint('name')\n"
	calls := FindMethodCalls(src, "delete_endpoint")
	require.Len(t, calls, 3)
	assert.False(t, CallHasArgs(src, calls[0]))
	assert.False(t, CallHasArgs(src, calls[1]))
	assert.True(t, CallHasArgs(src, calls[2]))
}
