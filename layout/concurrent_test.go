package layout

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ByLCY/mathbox/fontdata/tex"
	"github.com/ByLCY/mathbox/notation"
)

func fencedFraction() *notation.Node {
	return mathRoot(
		mo("("),
		node(notation.KindFrac, nil, mn("1"), node(notation.KindSqrt, nil, mi("x"))),
		mo(")"),
	)
}

// 共享 Assembler 的并发布局结果与串行一致，且不遗留 goroutine。
func TestConcurrentBuildsShareAssembler(t *testing.T) {
	defer goleak.VerifyNone(t)

	store, err := tex.Store()
	require.NoError(t, err)
	asm := NewAssembler(store, 0, 0)
	opts := Options{Store: store, Assembler: asm, Display: true}

	want := build(t, fencedFraction(), opts).Box()

	const workers = 8
	boxes := make([]BBox, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := Build(fencedFraction(), opts)
			if err == nil {
				boxes[i] = res.Box()
			}
		}(i)
	}
	wg.Wait()

	for i, b := range boxes {
		assert.Equal(t, want, b, "worker %d", i)
	}
}
