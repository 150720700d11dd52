package rack

import (
	"testing"
	"time"
)

func TestButtonQueue_FIFO(t *testing.T) {
	var q ButtonQueue
	q.Push(ButtonInput{Button: MouseButtonLeft, Action: Press})
	q.Push(ButtonInput{Button: MouseButtonLeft, Action: Release})
	q.Push(ButtonInput{Button: MouseButtonRight, Action: Press})

	want := []ButtonInput{
		{Button: MouseButtonLeft, Action: Press},
		{Button: MouseButtonLeft, Action: Release},
		{Button: MouseButtonRight, Action: Press},
	}
	for i, w := range want {
		got, ok := q.Pop()
		if !ok || got != w {
			t.Errorf("pop %d: expected %+v, got %+v (ok=%v)", i, w, got, ok)
		}
	}
	if _, ok := q.Pop(); ok || q.Len() != 0 {
		t.Error("Expected empty queue")
	}
}

func TestFramePacer(t *testing.T) {
	tests := []struct {
		name    string
		fps     float64
		elapsed time.Duration
		want    time.Duration
	}{
		{"desktop idle", 60, 0, time.Second / 60},
		{"embedded partial", 30, 10 * time.Millisecond, time.Second/30 - 10*time.Millisecond},
		{"overrun", 60, 40 * time.Millisecond, 0},
		{"default rate", 0, 0, time.Second / 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFramePacer(tt.fps).Next(tt.elapsed)
			if diff := got - tt.want; diff > time.Microsecond || diff < -time.Microsecond {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
