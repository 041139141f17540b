package tasks

import (
	"errors"
	"testing"
)

func TestFuture_FirstResolveWins(t *testing.T) {
	f := NewFuture()

	var got []error
	f.Then(func(err error) { got = append(got, err) })

	first := errors.New("first")
	if !f.Resolve(first) {
		t.Fatal("Resolve() = false on pending future, want true")
	}
	if f.Resolve(errors.New("second")) {
		t.Error("Resolve() = true on settled future, want false")
	}
	if !f.Settled() || f.Err() != first {
		t.Errorf("Settled(), Err() = %v, %v, want true, %v", f.Settled(), f.Err(), first)
	}
	if len(got) != 1 || got[0] != first {
		t.Errorf("waiters got %v, want [%v]", got, first)
	}
}

func TestFuture_ThenOnSettled(t *testing.T) {
	f := Resolved(nil)
	called := false
	f.Then(func(err error) {
		called = err == nil
	})
	if !called {
		t.Error("Then() on resolved future did not call function")
	}
}
