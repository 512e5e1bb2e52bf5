package snapopt

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestIntFlag(t *testing.T) {
	var f IntFlag
	if err := f.SetFlag(5); err != nil {
		t.Fatalf("SetFlag: %v", err)
	}
	if f.Value() != 5 {
		t.Errorf("expected 5, got %d", f.Value())
	}

	var nilFlag *IntFlag
	if err := nilFlag.SetFlag(1); !errors.Is(err, ErrNilFlagTarget) {
		t.Errorf("expected ErrNilFlagTarget, got %v", err)
	}
	if nilFlag.Value() != 0 {
		t.Errorf("nil flag should read 0")
	}
}

func TestFlagFunc(t *testing.T) {
	var got []int
	fn := FlagFunc(func(v int) error {
		got = append(got, v)
		return nil
	})
	_ = fn.SetFlag(1)
	_ = fn.SetFlag(2)
	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("expected [1 2], got %v", got)
	}

	var nilFn FlagFunc
	if err := nilFn.SetFlag(1); !errors.Is(err, ErrNilFlagTarget) {
		t.Errorf("expected ErrNilFlagTarget, got %v", err)
	}
}

func TestFlagSet(t *testing.T) {
	fs := NewFlagSet()
	verbose := fs.Target("verbose")
	mode := fs.Target("mode")
	again := fs.Target("verbose")

	if !slices.Equal(fs.Names(), []string{"verbose", "mode"}) {
		t.Errorf("unexpected names %v", fs.Names())
	}
	if v, ok := fs.Value("verbose"); !ok || v != 0 {
		t.Errorf("expected registered zero value, got %d %t", v, ok)
	}

	_ = verbose.SetFlag(1)
	_ = again.SetFlag(3)
	_ = mode.SetFlag(2)

	snapshot := fs.Snapshot()
	if snapshot["verbose"] != 3 || snapshot["mode"] != 2 {
		t.Errorf("unexpected snapshot %v", snapshot)
	}
	if _, ok := fs.Value("missing"); ok {
		t.Error("unregistered names should not exist")
	}

	fs.Reset()
	if v, _ := fs.Value("verbose"); v != 0 {
		t.Errorf("expected reset to zero, got %d", v)
	}
}

func TestFlagSetWithParser(t *testing.T) {
	fs := NewFlagSet()
	defs := []Definition{
		{Short: "v", Long: []string{"verbose"}, Flag: fs.Target("level"), FlagValue: 1},
		{Short: "q", Long: []string{"quiet"}, Flag: fs.Target("level"), FlagValue: -1},
		{Short: "d", Flag: fs.Target("debug"), FlagValue: 1},
	}
	results := Parse([]string{"-vd", "--quiet", "--verb"}, defs, SortClassic, true)
	if len(results) != 0 {
		t.Errorf("flag-only options must not produce results, got %v", results)
	}
	if v, _ := fs.Value("level"); v != 1 {
		t.Errorf("expected last write to win (1), got %d", v)
	}
	if v, _ := fs.Value("debug"); v != 1 {
		t.Errorf("expected debug 1, got %d", v)
	}
}

func TestFlagSetConcurrentTargets(t *testing.T) {
	fs := NewFlagSet()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			target := fs.Target("shared")
			for j := 0; j < 100; j++ {
				_ = target.SetFlag(n*100 + j)
			}
		}(i)
	}
	wg.Wait()
	if names := fs.Names(); len(names) != 1 {
		t.Errorf("expected one registered name, got %v", names)
	}
}

func TestDefinitionIsNonOption(t *testing.T) {
	if !(&Definition{Return: "x"}).IsNonOption() {
		t.Error("definition without forms is the non-option definition")
	}
	if (&Definition{Short: "a"}).IsNonOption() || (&Definition{Long: []string{"a"}}).IsNonOption() {
		t.Error("definitions with forms are options")
	}
}
