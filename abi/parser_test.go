package abi

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParserCaches(t *testing.T) {
	p, err := NewParser(2)
	require.NoError(t, err)

	a, err := p.TypeOf("(uint64,string)")
	require.NoError(t, err)
	b, err := p.TypeOf("(uint64,string)")
	require.NoError(t, err)
	require.True(t, a.Equal(b))
	require.Equal(t, 1, p.Len())

	_, err = p.TypeOf("uint7")
	require.Error(t, err, "invalid signature should fail")
	require.Equal(t, 1, p.Len(), "failed parse was cached")

	for _, sig := range []string{"bool", "byte", "address"} {
		_, err := p.TypeOf(sig)
		require.NoError(t, err)
	}
	require.Equal(t, 2, p.Len())

	p.Purge()
	require.Zero(t, p.Len())
}

func TestParserLogsMissesAndEvictions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	p, err := NewParser(1)
	require.NoError(t, err)

	for _, sig := range []string{"uint64", "uint64", "bool"} {
		_, err := p.TypeOf(sig)
		require.NoError(t, err)
	}

	misses := logs.FilterMessage("type cache miss").All()
	require.Len(t, misses, 2)
	require.Equal(t, "uint64", misses[0].ContextMap()["signature"])
	require.Equal(t, "bool", misses[1].ContextMap()["signature"])
	require.Equal(t, 1, logs.FilterMessage("type cache eviction").Len())
}

func TestParserConcurrent(t *testing.T) {
	p, err := NewParser(0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				sig := fmt.Sprintf("uint%d[%d]", 8*(1+i%8), g)
				typ, err := p.TypeOf(sig)
				if err != nil {
					errs <- err
					return
				}
				if typ.String() != sig {
					errs <- fmt.Errorf("got %s for %s", typ, sig)
					return
				}
			}
		}(g)
	}

	// swapping the logger mid-flight must not race with TypeOf
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			SetLogger(zap.NewNop())
			SetLogger(nil)
		}
	}()

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestSetLoggerNilRestoresNop(t *testing.T) {
	SetLogger(nil)
	require.NotNil(t, Logger())

	l := zap.NewExample()
	SetLogger(l)
	require.Same(t, l, Logger())

	SetLogger(nil)
	require.NotSame(t, l, Logger())
}
