package pool

import "testing"

func TestPool_PutRespectsCap(t *testing.T) {
	t.Parallel()

	p := New[int](2)
	if !p.Put(1) || !p.Put(2) {
		t.Fatal("Put() rejected entry under capacity")
	}
	if p.Put(3) {
		t.Error("Put() accepted entry over capacity")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestPool_GetFIFO(t *testing.T) {
	t.Parallel()

	p := New[string](3)
	p.Put("a")
	p.Put("b")

	if v, ok := p.Get(); !ok || v != "a" {
		t.Errorf("Get() = %q, %v; want a, true", v, ok)
	}
	if v, ok := p.Get(); !ok || v != "b" {
		t.Errorf("Get() = %q, %v; want b, true", v, ok)
	}
	if _, ok := p.Get(); ok {
		t.Error("Get() on empty pool reported ok")
	}
}

func TestPool_TakeFuncSkips(t *testing.T) {
	t.Parallel()

	p := New[int](4)
	for _, v := range []int{1, 2, 3, 4} {
		p.Put(v)
	}

	v, ok := p.TakeFunc(func(n int) bool { return n%2 == 0 })
	if !ok || v != 2 {
		t.Fatalf("TakeFunc() = %d, %v; want 2, true", v, ok)
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}

	if _, ok := p.TakeFunc(func(n int) bool { return n > 10 }); ok {
		t.Error("TakeFunc() matched nothing but reported ok")
	}
}

func TestPool_ShrinkDoesNotEvict(t *testing.T) {
	t.Parallel()

	p := New[int](3)
	p.Put(1)
	p.Put(2)
	p.Put(3)

	p.SetCap(1)
	if p.Len() != 3 {
		t.Errorf("Len() after shrink = %d, want 3", p.Len())
	}
	if p.Put(4) {
		t.Error("Put() accepted entry while over the new capacity")
	}

	p.SetCap(-5)
	if p.Cap() != 0 {
		t.Errorf("Cap() = %d, want 0", p.Cap())
	}
}

func TestPool_Drain(t *testing.T) {
	t.Parallel()

	p := New[int](3)
	p.Put(1)
	p.Put(2)

	var got []int
	p.Drain(func(v int) { got = append(got, v) })

	if len(got) != 2 || p.Len() != 0 {
		t.Errorf("Drain() visited %v, Len() = %d", got, p.Len())
	}
}
