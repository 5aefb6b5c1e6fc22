package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestFromSlice_Collect(t *testing.T) {
	p := FromSlice([]int{1, 2, 3})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 2, 3}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected non-nil empty slice, got %#v", got)
	}
}

func TestFromSlice_Rerun(t *testing.T) {
	p := FromSlice([]int{4, 5})
	for i := 0; i < 2; i++ {
		got, err := Collect(context.Background(), p)
		if err != nil {
			t.Fatal(err)
		}
		if !intSliceEqual(got, []int{4, 5}) {
			t.Errorf("run %d: got %v", i, got)
		}
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
	if want := []int{2, 4, 6}; !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMap_ErrorReturnsNoPartialResult(t *testing.T) {
	fail := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("bad value")
		}
		return n, nil
	})
	got, err := Collect(context.Background(), fail)
	if err == nil {
		t.Fatal("expected error")
	}
	if got != nil {
		t.Errorf("expected no partial result, got %v", got)
	}
}

func TestMap_TypeConversion(t *testing.T) {
	strs := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (string, error) {
		return fmt.Sprintf("#%d", n), nil
	})
	got, err := Collect(context.Background(), strs)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"#1", "#2", "#3"}; !strSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFlatMap(t *testing.T) {
	expanded := FlatMap(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) ([]int, error) {
		if n == 2 {
			return nil, nil
		}
		return []int{n, n * 10}, nil
	})
	got, err := Collect(context.Background(), expanded)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 10, 3, 30}; !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFlatMap_Error(t *testing.T) {
	expanded := FlatMap(FromSlice([]int{1}), func(context.Context, int) ([]int, error) {
		return nil, errors.New("split failed")
	})
	if _, err := Collect(context.Background(), expanded); err == nil {
		t.Fatal("expected error")
	}
}

func TestFilter(t *testing.T) {
	evens := Filter(FromSlice([]int{1, 2, 3, 4, 5, 6}), func(n int) bool { return n%2 == 0 })
	got, err := Collect(context.Background(), evens)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{2, 4, 6}; !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
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

func TestEnumerate(t *testing.T) {
	got, err := Collect(context.Background(), Enumerate(FromSlice([]string{"a", "b", "c"}), 10))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 values, got %d", len(got))
	}
	for i, v := range got {
		if v.Index != 10+i {
			t.Errorf("value %d: expected index %d, got %d", i, 10+i, v.Index)
		}
	}
	if got[1].Value != "b" {
		t.Errorf("expected b, got %s", got[1].Value)
	}
}

func TestLimit(t *testing.T) {
	pulled := 0
	src := Map(FromSlice([]int{1, 2, 3, 4}), func(_ context.Context, n int) (int, error) {
		pulled++
		return n, nil
	})
	got, err := Collect(context.Background(), Limit(src, 2))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
	if pulled != 2 {
		t.Errorf("expected source to be pulled twice, got %d", pulled)
	}
}

func TestLimit_BeyondLength(t *testing.T) {
	got, err := Collect(context.Background(), Limit(FromSlice([]int{1}), 5))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1}) {
		t.Errorf("got %v, want [1]", got)
	}
	got, err = Collect(context.Background(), Limit(FromSlice([]int{1}), 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestReduce(t *testing.T) {
	sum := Reduce(FromSlice([]int{1, 2, 3, 4}), 0, func(acc, n int) int { return acc + n })
	got, err := Collect(context.Background(), sum)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{10}) {
		t.Errorf("got %v, want [10]", got)
	}
}

func TestReduce_Empty(t *testing.T) {
	sum := Reduce(FromSlice([]int{}), 42, func(acc, n int) int { return acc + n })
	got, err := Collect(context.Background(), sum)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{42}) {
		t.Errorf("got %v, want [42]", got)
	}
}

func TestConcat(t *testing.T) {
	joined := Concat(FromSlice([]int{1, 2}), FromSlice([]int{}), FromSlice([]int{3}))
	got, err := Collect(context.Background(), joined)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestDrain_Run(t *testing.T) {
	var sum int
	err := Drain(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		sum += n
		return nil
	}).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum != 6 {
		t.Errorf("expected 6, got %d", sum)
	}
}

func TestForEach_SinkError(t *testing.T) {
	err := ForEach(context.Background(), FromSlice([]int{1, 2}), func(context.Context, int) error {
		return errors.New("sink full")
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestContext_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Collect(ctx, FromSlice([]int{1, 2, 3}))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestChained_Pipeline(t *testing.T) {
	celsius := Map(FromSlice([]float64{59, 57.2, 53.6, 55.4, 51.8, 53.6, 55.4}), func(_ context.Context, f float64) (float64, error) {
		return (f - 32) * 5 / 9, nil
	})
	warm := Filter(celsius, func(c float64) bool { return c >= 13 })
	got, err := Collect(context.Background(), warm)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Errorf("expected 4 values >= 13, got %v", got)
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func strSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
