package shutdown

import (
	"context"
	"errors"
	"testing"
)

func TestStopRunsEveryTargetInOrder(t *testing.T) {
	var order []int
	first := errors.New("first")
	third := errors.New("third")

	err := Stop(context.Background(),
		Func(func(context.Context) error { order = append(order, 1); return first }),
		nil,
		Func(func(context.Context) error { order = append(order, 2); return nil }),
		Func(func(context.Context) error { order = append(order, 3); return third }),
	)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v", order)
	}
	if !errors.Is(err, first) || !errors.Is(err, third) {
		t.Errorf("err = %v, want both failures joined", err)
	}
}

func TestStopNoTargets(t *testing.T) {
	if err := Stop(context.Background()); err != nil {
		t.Errorf("Stop() = %v", err)
	}
}
