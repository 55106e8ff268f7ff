package strength

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

const (
	// DefaultLength is used whenever a requested length is below MinLength
	DefaultLength = 12
	// MinLength is the shortest password the generator will produce
	MinLength = 8
	// MaxLength caps requested lengths
	MaxLength = 4096
)

const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars = "0123456789"
	allChars   = lowerChars + upperChars + digitChars + SpecialChars
)

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithSource draws all randomness from r. The generator serialises access,
// so r does not need to be goroutine-safe.
func WithSource(r *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		g.rng = r
		g.secure = false
	}
}

// WithSecureRandom backs the generator with crypto/rand instead of the
// default non-cryptographic source.
func WithSecureRandom() GeneratorOption {
	return func(g *Generator) {
		g.rng = rand.New(cryptoSource{})
		g.secure = true
	}
}

// Generator produces random passwords containing at least one lowercase
// letter, uppercase letter, digit and special character.
type Generator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	secure bool
}

// NewGenerator returns a generator using the math/rand/v2 global source
// unless an option overrides it.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = NewGenerator()

// Generate returns a password of the given length using the default generator.
func Generate(length int) string {
	return defaultGenerator.Generate(length)
}

// Secure reports whether the generator draws from crypto/rand.
func (g *Generator) Secure() bool {
	return g.secure
}

// EffectiveLength returns the length Generate will actually produce.
func EffectiveLength(length int) int {
	switch {
	case length < MinLength:
		return DefaultLength
	case length > MaxLength:
		return MaxLength
	default:
		return length
	}
}

// Generate returns a random password. Lengths below MinLength are silently
// replaced by DefaultLength, lengths above MaxLength are cut to MaxLength.
func (g *Generator) Generate(length int) string {
	length = EffectiveLength(length)

	if g.rng != nil {
		g.mu.Lock()
		defer g.mu.Unlock()
	}

	buf := make([]byte, 0, length)
	buf = append(buf,
		g.pick(lowerChars),
		g.pick(upperChars),
		g.pick(digitChars),
		g.pick(SpecialChars),
	)
	for i := 4; i < length; i++ {
		buf = append(buf, g.pick(allChars))
	}

	g.shuffle(len(buf), func(i, j int) {
		buf[i], buf[j] = buf[j], buf[i]
	})
	return string(buf)
}

func (g *Generator) pick(set string) byte {
	if g.rng != nil {
		return set[g.rng.IntN(len(set))]
	}
	return set[rand.IntN(len(set))]
}

func (g *Generator) shuffle(n int, swap func(i, j int)) {
	if g.rng != nil {
		g.rng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}

// cryptoSource adapts crypto/rand to rand.Source.
type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
