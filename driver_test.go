package kscope

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
)

func TestCollectRecovers(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "errors.ks"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	forms, errs := Collect(f, nil, nil)

	var got []string
	for _, form := range forms {
		got = append(got, form.String())
	}
	// Each failure drops exactly one token, so leftovers of a broken form
	// surface as forms of their own: the failed extern swallows the next
	// "def" and "last() 42" parses as two top-level expressions.
	want := []string{
		"(def (ok x) (+ x 1))",
		"(toplevel x)",
		"(toplevel x)",
		"(toplevel (call last))",
		"(toplevel 42)",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("forms mismatch:\n got %v\nwant %v", got, want)
	}

	wantKinds := []error{ErrPrototype, ErrExpectedExpr, ErrExpectedExpr, ErrPrototype}
	if len(errs) != len(wantKinds) {
		t.Fatalf("error count mismatch: %d: %v", len(errs), errs)
	}
	for i, kind := range wantKinds {
		if !errors.Is(errs[i], kind) {
			t.Fatalf("error %d: expected %v, got %v", i, kind, errs[i])
		}
	}
}

func TestDriverSkipsOneTokenPerFailure(t *testing.T) {
	var skipped []Token
	p := NewParser(strings.NewReader(") ) 1"), nil, nil)
	d := &Driver{
		Parser: p,
		OnError: func(err error) error {
			skipped = append(skipped, p.Current())
			return nil
		},
	}

	var forms []Form
	d.OnForm = func(f Form) error {
		forms = append(forms, f)
		return nil
	}
	if err := d.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(skipped) != 2 || !skipped[0].Is(')') || skipped[1].Col != 3 {
		t.Fatalf("unexpected skipped tokens: %v", skipped)
	}
	if len(forms) != 1 || forms[0].String() != "(toplevel 1)" {
		t.Fatalf("unexpected forms: %v", forms)
	}
}

func TestDriverCallbackStops(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	d := &Driver{
		Parser: NewParser(strings.NewReader("1 2 3"), nil, nil),
		OnForm: func(Form) error {
			calls++
			if calls == 2 {
				return stop
			}
			return nil
		},
	}
	if err := d.Run(); !errors.Is(err, stop) {
		t.Fatalf("expected stop, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestDriverReturnsReadError(t *testing.T) {
	boom := errors.New("boom")
	d := &Driver{Parser: NewParser(iotest.ErrReader(boom), nil, nil)}
	if err := d.Run(); !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
}
