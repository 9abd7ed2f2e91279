package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.GenerateRandomVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
	assert.LessOrEqual(t, v[0][0], float32(1.0))
	assert.GreaterOrEqual(t, v[1][0], float32(0.0))
}

func TestSeedReturnsConstructorValue(t *testing.T) {
	rng := NewRNG(123)
	assert.Equal(t, int64(123), rng.Seed())
}

func TestSameSeedProducesSameStream(t *testing.T) {
	a := NewRNG(99)
	b := NewRNG(99)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestIntnStaysInRange(t *testing.T) {
	rng := NewRNG(1)
	for i := 0; i < 100; i++ {
		v := rng.Intn(7)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 7)
	}
}

func TestFloat64StaysInUnitInterval(t *testing.T) {
	rng := NewRNG(2)
	for i := 0; i < 100; i++ {
		v := rng.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestPermIsAPermutation(t *testing.T) {
	rng := NewRNG(3)
	p := rng.Perm(10)
	seen := make(map[int]bool)
	for _, v := range p {
		assert.False(t, seen[v])
		seen[v] = true
	}
	assert.Len(t, seen, 10)
}

func TestShufflePreservesAllElements(t *testing.T) {
	rng := NewRNG(5)
	data := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	rng.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })

	seen := make(map[int]bool)
	for _, v := range data {
		seen[v] = true
	}
	assert.Len(t, seen, 10)
}
