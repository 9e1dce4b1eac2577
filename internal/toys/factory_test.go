package toys

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

func newDefaultFactory(t *testing.T) *Factory {
	t.Helper()
	f, err := NewFactory(DefaultCatalog())
	require.NoError(t, err)
	return f
}

func TestFactoryProduce_AgePartition(t *testing.T) {
	f := newDefaultFactory(t)

	tests := []struct {
		name string
		ages []int
		want types.Kind
		rule string
	}{
		{name: "0 to 6 is train", ages: []int{0, 1, 3, 6}, want: types.KindTrain, rule: "toddler"},
		{name: "7 to 9 is trampoline", ages: []int{7, 8, 9}, want: types.KindTrampoline, rule: "child"},
		{name: "10 to 18 is ball", ages: []int{10, 14, 18}, want: types.KindBall, rule: "teen"},
		{name: "over 18 is nintendo switch", ages: []int{19, 40, 1000}, want: types.KindNintendoSwitch, rule: "adult"},
		{name: "negative falls to default ball", ages: []int{-1, -30}, want: types.KindBall, rule: DefaultRuleName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, age := range tt.ages {
				toy := f.Produce(age)
				require.NotNil(t, toy, "age %d", age)
				assert.Equal(t, tt.want, toy.Kind(), "age %d", age)
				assert.Equal(t, tt.rule, f.Classify(age), "age %d", age)

				toy, rule := f.ProduceWithRule(age)
				assert.Equal(t, tt.want, toy.Kind(), "age %d", age)
				assert.Equal(t, tt.rule, rule, "age %d", age)
			}
		})
	}
}

func TestFactoryProduce_Scenarios(t *testing.T) {
	f := newDefaultFactory(t)

	var buf bytes.Buffer
	require.NoError(t, f.Produce(19).Play(&buf))
	assert.Equal(t, "Save Hyrule!\n", buf.String())

	buf.Reset()
	require.NoError(t, f.Produce(5).Play(&buf))
	assert.Equal(t, "choo choo\n", buf.String())
}

func TestFactoryProduce_IndependentInstances(t *testing.T) {
	f := newDefaultFactory(t)

	a := f.Produce(12)
	b := f.Produce(12)
	assert.Equal(t, a.Kind(), b.Kind())
	assert.NotSame(t, a, b)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestFactoryProduce_CustomCatalog(t *testing.T) {
	c := Catalog{
		Ranges: []AgeRange{
			{Name: "gap-left", Kind: types.KindTrain, MinAge: intPtr(0), MaxAge: intPtr(4)},
			{Name: "gap-right", Kind: types.KindTrampoline, MinAge: intPtr(10)},
		},
		Default: types.KindNintendoSwitch,
	}
	f, err := NewFactory(c)
	require.NoError(t, err)

	assert.Equal(t, types.KindTrain, f.Produce(2).Kind())
	assert.Equal(t, types.KindNintendoSwitch, f.Produce(7).Kind(), "gap falls to default")
	assert.Equal(t, types.KindTrampoline, f.Produce(10).Kind())
	assert.Equal(t, []string{"gap-left", "gap-right", DefaultRuleName}, f.Rules())
}

func TestNewFactory_InvalidCatalog(t *testing.T) {
	f, err := NewFactory(Catalog{Default: "kite"})
	assert.ErrorIs(t, err, types.ErrInvalidCatalog)
	assert.Nil(t, f)
}

func TestFactoryCatalog_ReturnsCopy(t *testing.T) {
	c := DefaultCatalog()
	f, err := NewFactory(c)
	require.NoError(t, err)

	*c.Ranges[0].MaxAge = 100
	assert.Equal(t, types.KindTrampoline, f.Produce(8).Kind(), "caller changes must not leak in")

	got := f.Catalog()
	*got.Ranges[0].MaxAge = 100
	assert.Equal(t, types.KindTrampoline, f.Produce(8).Kind(), "returned copy must not leak back")
}

func TestFactoryProduce_Concurrent(t *testing.T) {
	f := newDefaultFactory(t)

	var wg sync.WaitGroup
	for age := -10; age < 60; age++ {
		wg.Add(1)
		go func(age int) {
			defer wg.Done()
			assert.NotNil(t, f.Produce(age))
		}(age)
	}
	wg.Wait()
}

func TestFactoryProduceWithRule_SingleDecision(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f, err := NewFactory(DefaultCatalog(), WithLogger(zap.New(core)))
	require.NoError(t, err)

	toy, rule := f.ProduceWithRule(19)
	assert.Equal(t, types.KindNintendoSwitch, toy.Kind())
	assert.Equal(t, "adult", rule)
	assert.Equal(t, 1, logs.FilterMessage("rule matched").Len())
}

func TestFactoryProduce_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f, err := NewFactory(DefaultCatalog(), WithLogger(zap.New(core)))
	require.NoError(t, err)

	f.Produce(-3)

	entries := logs.FilterMessage("default rule used").All()
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultRuleName, entries[0].ContextMap()["rule"])
}
