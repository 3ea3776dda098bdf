package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkersAreExclusive(t *testing.T) {
	for _, a := range All {
		for _, b := range All {
			if a == b {
				continue
			}
			assert.False(t, Contains([]byte(a), b), "%s must not contain %s", a, b)
		}
	}
}

func TestContains(t *testing.T) {
	content := []byte("MAX_VELOCITY = 5.00 #Changed by PathPirate[servos]\n")

	assert.True(t, Contains(content, Servos))
	assert.False(t, Contains(content, Encoder))
	assert.False(t, Contains(content, RapidSlider))
	assert.False(t, Contains(content, ""))
}

func TestComment(t *testing.T) {
	assert.Equal(t, "#Changed by PathPirate[encoder]", Encoder.Comment())
	assert.Equal(t, Marker("PathPirate[encoder]"), New("encoder"))
}

func TestAny(t *testing.T) {
	assert.False(t, Any([]byte("setp tormach-console.0.rapid-override-scale 960\n")))
	assert.True(t, Any([]byte("#setp x 960 #Changed by PathPirate[rapid-slider]\n")))
	assert.True(t, Any([]byte("#setp x 960 #Changed by PathPirate\n")), "legacy bare tag")
}

func TestFound(t *testing.T) {
	content := []byte("a #Changed by PathPirate[servos]\nb #Changed by PathPirate[encoder]\n")

	found := Found(content)
	assert.Equal(t, []Marker{Encoder, Servos}, found)
	assert.Equal(t, "PathPirate[encoder], PathPirate[servos]", Join(found))
	assert.Empty(t, Found([]byte("plain")))
}
