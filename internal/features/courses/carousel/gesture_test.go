package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySwipe(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		want       Swipe
	}{
		{"left swipe advances", 300, 240, SwipeNext},
		{"right swipe retreats", 240, 300, SwipePrev},
		{"short move is ignored", 300, 270, SwipeNone},
		{"exactly the threshold is ignored", 300, 250, SwipeNone},
		{"just past the threshold counts", 300, 249.5, SwipeNext},
		{"tap", 120, 120, SwipeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySwipe(tt.start, tt.end))
		})
	}
}

func TestTouchTracker(t *testing.T) {
	var tr touchTracker

	assert.Equal(t, SwipeNone, tr.end(), "end without start")

	tr.move(10)
	assert.False(t, tr.active, "move without start is ignored")

	tr.start(300)
	tr.move(280)
	tr.move(240)
	assert.Equal(t, SwipeNext, tr.end())
	assert.Equal(t, SwipeNone, tr.end(), "sequence is over")

	tr.start(100)
	assert.Equal(t, SwipeNone, tr.end(), "no movement")
}

func TestSwipeString(t *testing.T) {
	assert.Equal(t, "next", SwipeNext.String())
	assert.Equal(t, "prev", SwipePrev.String())
	assert.Equal(t, "none", SwipeNone.String())
}
