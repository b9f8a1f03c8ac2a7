package model

import (
	"errors"
	"testing"
)

// fakeStorage records writes so tests can assert on persistence.
type fakeStorage struct {
	values map[string]string
	writes int
	err    error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{values: map[string]string{}}
}

func (f *fakeStorage) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeStorage) Set(key, value string) error {
	f.writes++
	if f.err != nil {
		return f.err
	}
	f.values[key] = value
	return nil
}

func TestNewCalculatorDefaults(t *testing.T) {
	c := NewCalculator()
	if c.Cost() != "" {
		t.Errorf("expected empty cost, got %q", c.Cost())
	}
	if c.Margin() != DefaultMargin {
		t.Errorf("expected margin %d, got %d", DefaultMargin, c.Margin())
	}
	if c.SellingPrice() != "0.00" {
		t.Errorf("expected 0.00, got %s", c.SellingPrice())
	}
}

func TestCalculatorFiftyAtSixty(t *testing.T) {
	c := NewCalculator()
	c.AppendDigit('5')
	c.AppendDigit('0')
	if got := c.SellingPrice(); got != "125.00" {
		t.Errorf("expected 125.00, got %s", got)
	}
}

func TestCalculatorResetClearsCost(t *testing.T) {
	c := NewCalculator()
	c.AppendDigit('7')
	c.Reset()
	if c.Cost() != "" {
		t.Errorf("expected empty cost after reset, got %q", c.Cost())
	}
	if c.SellingPrice() != "0.00" {
		t.Errorf("expected 0.00 after reset, got %s", c.SellingPrice())
	}
}

func TestSetMarginRejectsOutOfRange(t *testing.T) {
	store := newFakeStorage()
	c := NewCalculator(WithStorage(store, ""))

	for _, v := range []int{0, -5, 100, 150} {
		if c.SetMargin(v) {
			t.Errorf("SetMargin(%d) should be rejected", v)
		}
	}
	if c.Margin() != DefaultMargin {
		t.Errorf("expected margin unchanged at %d, got %d", DefaultMargin, c.Margin())
	}
	if store.writes != 0 {
		t.Errorf("rejected margins must not be persisted, got %d writes", store.writes)
	}
}

func TestSetMarginPersists(t *testing.T) {
	store := newFakeStorage()
	c := NewCalculator(WithStorage(store, "grossMargin"))

	if !c.SetMargin(35) {
		t.Fatal("SetMargin(35) should be accepted")
	}
	if store.values["grossMargin"] != "35" {
		t.Errorf("expected persisted 35, got %q", store.values["grossMargin"])
	}
}

func TestSetMarginStorageErrorIsNotFatal(t *testing.T) {
	store := newFakeStorage()
	store.err = errors.New("disk full")
	c := NewCalculator(WithStorage(store, ""))

	if !c.SetMargin(20) {
		t.Fatal("storage failure must not reject the margin")
	}
	if c.Margin() != 20 {
		t.Errorf("expected margin 20, got %d", c.Margin())
	}
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		has    bool
		policy RestorePolicy
		want   int
	}{
		{"absent", "", false, RestoreFallback, DefaultMargin},
		{"valid", "42", true, RestoreFallback, 42},
		{"out of range falls back", "150", true, RestoreFallback, DefaultMargin},
		{"zero falls back", "0", true, RestoreFallback, DefaultMargin},
		{"unparsable", "abc", true, RestoreFallback, DefaultMargin},
		{"out of range clamps", "150", true, RestoreClamp, MaxMargin},
		{"negative clamps", "-3", true, RestoreClamp, MinMargin},
		{"unparsable ignores clamp", "12abc", true, RestoreClamp, DefaultMargin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStorage()
			if tt.has {
				store.values[DefaultStorageKey] = tt.stored
			}
			c := NewCalculator(WithStorage(store, ""), WithRestorePolicy(tt.policy))
			c.Restore()
			if c.Margin() != tt.want {
				t.Errorf("expected margin %d, got %d", tt.want, c.Margin())
			}
			if store.writes != 0 {
				t.Errorf("restore must not write, got %d writes", store.writes)
			}
		})
	}
}

func TestOnChangeReceivesView(t *testing.T) {
	c := NewCalculator()
	var views []View
	c.OnChange(func(v View) { views = append(views, v) })

	c.AppendDigit('5')
	c.AppendDigit('0')
	c.SetMargin(60) // unchanged, no notification
	c.SetMargin(50)
	c.AppendDigit('.')
	c.AppendDigit('.') // rejected

	if len(views) != 4 {
		t.Fatalf("expected 4 notifications, got %d", len(views))
	}
	last := views[len(views)-1]
	if last.Cost != "50." || last.Margin != 50 || last.Price != "100.00" {
		t.Errorf("unexpected last view %+v", last)
	}
}

func TestLoadRestoresSnapshot(t *testing.T) {
	store := newFakeStorage()
	c := NewCalculator(WithStorage(store, ""))
	c.Load("12.5", 75)

	if c.Cost() != "12.5" || c.Margin() != 75 {
		t.Errorf("expected 12.5 @ 75, got %s @ %d", c.Cost(), c.Margin())
	}
	if store.values[DefaultStorageKey] != "75" {
		t.Errorf("expected margin persisted, got %q", store.values[DefaultStorageKey])
	}

	c.Load("3", 0)
	if c.Margin() != 75 {
		t.Errorf("invalid margin should keep 75, got %d", c.Margin())
	}
}
