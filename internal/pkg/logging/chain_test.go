package logging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorChain_WalksWrappedErrors(t *testing.T) {
	root := errors.New("connection refused")
	mid := fmt.Errorf("insert book: %w", root)
	top := fmt.Errorf("create book: %w", mid)

	chain := ErrorChain(top)
	require.Len(t, chain, 3)

	assert.Equal(t, 0, chain[0].Level)
	assert.Equal(t, "create book: insert book: connection refused", chain[0].Message)
	assert.Equal(t, "*fmt.wrapError", chain[0].Source)

	assert.Equal(t, 2, chain[2].Level)
	assert.Equal(t, "connection refused", chain[2].Message)
	assert.Equal(t, "*errors.errorString", chain[2].Source)
}

func TestErrorChain_Joined(t *testing.T) {
	err := errors.Join(errors.New("a"), errors.New("b"))

	chain := ErrorChain(err)
	require.Len(t, chain, 3)
	assert.Equal(t, "a", chain[1].Message)
	assert.Equal(t, "b", chain[2].Message)
	assert.Equal(t, 1, chain[2].Level)
}

func TestErrorChain_Nil(t *testing.T) {
	assert.Empty(t, ErrorChain(nil))
}

func TestLogError_WritesEveryCause(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter("prod", &buf)

	LogError(context.Background(), l, "update failed", fmt.Errorf("outer: %w", errors.New("inner")))

	out := buf.String()
	assert.Contains(t, out, `"msg":"update failed"`)
	assert.Contains(t, out, `"cause_0"`)
	assert.Contains(t, out, `"cause_1":{"source":"*errors.errorString","message":"inner"}`)
}
