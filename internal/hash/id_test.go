package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		id   uint64
	}{
		{"empty", []byte(""), 0xef46db3751d8e999},
		{"short", []byte("test"), 0x4fdcca5ddb678139},
		{"long", []byte("this is a longer test string to hash"), 0x69275f7f7ee59dbd},
		{"another", []byte("another test string"), 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, Bytes(tt.data))
		})
	}
}

func TestStringMatchesBytes(t *testing.T) {
	inputs := []string{"", "a", "packed tuple bytes", "0x01 0x02 escape test"}
	for _, s := range inputs {
		assert.Equal(t, Bytes([]byte(s)), String(s))
	}
}

func randString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range b {
		b[i] = letters[seededRand.Intn(len(letters))]
	}

	return string(b)
}

func BenchmarkBytes(b *testing.B) {
	randStr := []byte(randString(20))
	b.ResetTimer()
	for b.Loop() {
		Bytes(randStr)
	}
}
