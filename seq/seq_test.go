package seq

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
)

func TestFromSlice_Collect(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 2, 3}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestEmpty(t *testing.T) {
	_, ok, err := Empty[string]().Next(context.Background())
	if ok || err != nil {
		t.Errorf("expected exhausted iterator, got ok=%v err=%v", ok, err)
	}
}

func TestFromSeq(t *testing.T) {
	it := FromSeq(slices.Values([]string{"a", "b"}))
	got, err := Collect(context.Background(), it)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestFromSeq_CloseBeforeExhaustion(t *testing.T) {
	produced := 0
	src := func(yield func(int) bool) {
		for i := range 10 {
			produced++
			if !yield(i) {
				return
			}
		}
	}
	it := FromSeq(src)
	if _, _, err := it.Next(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := it.Close(); err != nil {
		t.Fatal(err)
	}
	if produced != 1 {
		t.Errorf("expected 1 produced value, got %d", produced)
	}
	if _, ok, _ := it.Next(context.Background()); ok {
		t.Error("expected no values after Close")
	}
}

func TestFromFunc(t *testing.T) {
	n := 0
	it := FromFunc(func(_ context.Context) (int, bool, error) {
		if n == 3 {
			return 0, false, nil
		}
		n++
		return n, true, nil
	})
	got, err := Collect(context.Background(), it)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestMap(t *testing.T) {
	doubled := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	got, err := Collect(context.Background(), doubled)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{2, 4, 6}) {
		t.Errorf("got %v, want [2 4 6]", got)
	}
}

func TestMap_Error(t *testing.T) {
	boom := errors.New("bad value")
	fail := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	got, err := Collect(context.Background(), fail)
	if err != boom {
		t.Fatalf("expected the stage error unmodified, got %v", err)
	}
	if !slices.Equal(got, []int{1}) {
		t.Errorf("expected [1] before error, got %v", got)
	}
}

func TestMap_Lazy(t *testing.T) {
	calls := 0
	it := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (string, error) {
		calls++
		return fmt.Sprintf("#%d", n), nil
	})
	if calls != 0 {
		t.Fatalf("expected no calls before Next, got %d", calls)
	}
	v, ok, err := it.Next(context.Background())
	if err != nil || !ok || v != "#1" {
		t.Fatalf("unexpected first value %q ok=%v err=%v", v, ok, err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call after first Next, got %d", calls)
	}
}

func TestFilter(t *testing.T) {
	evens := Filter(FromSlice([]int{1, 2, 3, 4, 5, 6}), func(n int) bool { return n%2 == 0 })
	got, err := Collect(context.Background(), evens)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{2, 4, 6}) {
		t.Errorf("got %v, want [2 4 6]", got)
	}
}

func TestFilter_None(t *testing.T) {
	none := Filter(FromSlice([]int{1, 3, 5}), func(n int) bool { return n%2 == 0 })
	got, err := Collect(context.Background(), none)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestFilterE_Error(t *testing.T) {
	boom := errors.New("predicate failed")
	it := FilterE(FromSlice([]int{1, 2}), func(_ context.Context, n int) (bool, error) {
		if n == 2 {
			return false, boom
		}
		return true, nil
	})
	got, err := Collect(context.Background(), it)
	if err != boom {
		t.Fatalf("expected predicate error, got %v", err)
	}
	if !slices.Equal(got, []int{1}) {
		t.Errorf("expected [1] before error, got %v", got)
	}
}

func TestFlatten(t *testing.T) {
	nested := FromSlice([]Iterator[int]{
		FromSlice([]int{1, 2}),
		FromSlice([]int{3}),
		Empty[int](),
	})
	got, err := Collect(context.Background(), Flatten(nested))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestFlatMap(t *testing.T) {
	expanded := FlatMap(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (Iterator[int], error) {
		return FromSlice([]int{n, n * 10}), nil
	})
	got, err := Collect(context.Background(), expanded)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 10, 2, 20, 3, 30}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTap(t *testing.T) {
	var tapped []int
	it := Tap(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		tapped = append(tapped, n)
		return nil
	})
	got, err := Collect(context.Background(), it)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
	if !slices.Equal(tapped, []int{1, 2, 3}) {
		t.Errorf("tapped %v, want [1 2 3]", tapped)
	}
}

func TestTap_Error(t *testing.T) {
	it := Tap(FromSlice([]int{1, 2}), func(_ context.Context, n int) error {
		return errors.New("tap failed")
	})
	if _, err := Collect(context.Background(), it); err == nil {
		t.Fatal("expected error")
	}
}

func TestConcat(t *testing.T) {
	it := Concat(FromSlice([]int{1, 2}), Empty[int](), FromSlice([]int{3}))
	got, err := Collect(context.Background(), it)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestTake_DoesNotPullPastLimit(t *testing.T) {
	pulled := 0
	src := Tap(FromSlice([]int{1, 2, 3, 4}), func(_ context.Context, _ int) error {
		pulled++
		return nil
	})
	got, err := Collect(context.Background(), Take(src, 2))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
	if pulled != 2 {
		t.Errorf("expected 2 pulls, got %d", pulled)
	}
}

func TestForEach(t *testing.T) {
	sum := 0
	err := ForEach(context.Background(), FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		sum += n
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if sum != 6 {
		t.Errorf("expected 6, got %d", sum)
	}
}

func TestForEach_StopsOnError(t *testing.T) {
	seen := 0
	stop := errors.New("stop")
	err := ForEach(context.Background(), FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		seen++
		if n == 2 {
			return stop
		}
		return nil
	})
	if err != stop {
		t.Fatalf("expected stop error, got %v", err)
	}
	if seen != 2 {
		t.Errorf("expected 2 calls, got %d", seen)
	}
}

func TestAll(t *testing.T) {
	var got []int
	for v, err := range All(context.Background(), FromSlice([]int{1, 2, 3})) {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
}

func TestAll_YieldsError(t *testing.T) {
	boom := errors.New("boom")
	it := Map(FromSlice([]int{1, 2}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	var errs []error
	for _, err := range All(context.Background(), it) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) != 1 || errs[0] != boom {
		t.Errorf("expected exactly the boom error, got %v", errs)
	}
}
