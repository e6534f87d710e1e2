package writer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/bftape/machine"
)

// runOn executes generated code and returns the bytes it prints.
func runOn(t *testing.T, code string) []byte {
	t.Helper()

	var out []byte
	m := machine.New(code)
	m.SetOutputSink(func(p []byte) {
		out = append(out, p...)
	})
	require.NoError(t, m.Run())
	return out
}

func TestGenerateZeroRepeat(t *testing.T) {
	assert := assert.New(t)

	// The cursor starts at 0, so three zero bytes need no value changes,
	// but each still gets its own '.'.
	code, err := New([]byte{0, 0, 0}).Generate()
	assert.NoError(err)
	assert.Equal("...", code)
	assert.Equal(3, strings.Count(code, "."))
	assert.Equal([]byte{0, 0, 0}, runOn(t, code))
}

func TestGenerateDelta(t *testing.T) {
	assert := assert.New(t)

	// From cursor 0 a single increment beats any zero-build.
	code, err := New([]byte{1}).Generate()
	assert.NoError(err)
	assert.Equal("+.", code)

	// Consecutive bytes reuse the cursor: 'A' then 'B' is one '+' apart.
	code, err = New([]byte{'A', 'B'}).Generate()
	assert.NoError(err)
	assert.True(strings.HasSuffix(code, "+."))
	assert.Equal([]byte{'A', 'B'}, runOn(t, code))
}

func TestGenerateWrapAwareDelta(t *testing.T) {
	assert := assert.New(t)

	// 250 is six decrements away from 0 on the 256 ring.
	code, err := New([]byte{250}).Generate()
	assert.NoError(err)
	assert.Equal("------.", code)
	assert.Equal([]byte{250}, runOn(t, code))
}

func TestGenerateRoundTrip(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		input []byte
	}){
		{"hello", []byte("Hello World!")},
		{"repeat", []byte("AAAAA")},
		{"extremes", []byte{0, 255, 1, 128, 0}},
		{"descending", []byte{200, 100, 50, 25, 0}},
		{"newlines", []byte("line one\nline two\n")},
	}

	for _, entry := range table {
		code, err := New(entry.input).Generate()
		assert.NoError(err, entry.name)
		assert.Equal(entry.input, runOn(t, code), entry.name)
	}
}

func TestGenerateWithoutLoops(t *testing.T) {
	assert := assert.New(t)

	options := Options{UseLoops: false, MaxLoopFactor: DefaultMaxLoopFactor, Wrapping: true}
	code, err := WithOptions([]byte{100}, options).Generate()
	assert.NoError(err)
	assert.NotContains(code, "[")
	assert.Equal([]byte{100}, runOn(t, code))
}

func TestGenerateNonWrapping(t *testing.T) {
	assert := assert.New(t)

	options := Options{UseLoops: true, MaxLoopFactor: DefaultMaxLoopFactor, Wrapping: false}
	code, err := WithOptions([]byte{250, 10}, options).Generate()
	assert.NoError(err)
	assert.Equal([]byte{250, 10}, runOn(t, code))
}

func TestGenerateLoopFactoring(t *testing.T) {
	assert := assert.New(t)

	// Large first bytes use the multiplicative zero-build, which needs a
	// temp cell and loops.
	code, err := New([]byte{200}).Generate()
	assert.NoError(err)
	assert.Contains(code, "[")
	assert.Less(len(code), 201) // beats a bare '+' run
	assert.Equal([]byte{200}, runOn(t, code))
}

func TestCheck(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(Check("++[>+<-]."))
	assert.Equal(ErrUnmatchedBracket{Pos: 0, Open: true}, Check("["))
	assert.Equal(ErrUnmatchedBracket{Pos: 1}, Check("+]"))
	assert.Equal(ErrInvalidCharacter{Ch: 'a', Pos: 1}, Check("+a"))
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	found := map[string]string{}
	for key, value := range Defines() {
		found[key] = value
	}
	assert.Equal("16", found["MAX_LOOP_FACTOR"])
}
