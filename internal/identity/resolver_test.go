package identity

import (
	"context"
	"errors"
	"testing"
)

func TestResolver_ConfiguredValuesWin(t *testing.T) {
	calls := 0
	r := &Resolver{
		Author: "Configured",
		Email:  "conf@x.io",
		Lookup: LookupFunc(func(context.Context, string, Attribute) (string, error) {
			calls++
			return "looked-up", nil
		}),
	}

	got := r.Resolve(context.Background(), "")
	if got != (Identity{Name: "Configured", Email: "conf@x.io"}) {
		t.Fatalf("Resolve = %+v", got)
	}
	if calls != 0 {
		t.Fatalf("lookup should not run when both values are configured, ran %d times", calls)
	}
}

func TestResolver_FallsBackPerAttribute(t *testing.T) {
	r := &Resolver{
		Author: "Configured",
		Lookup: LookupFunc(func(_ context.Context, _ string, attr Attribute) (string, error) {
			if attr == AttrEmail {
				return "git@x.io", nil
			}
			return "git-name", nil
		}),
	}

	got := r.Resolve(context.Background(), "")
	if got != (Identity{Name: "Configured", Email: "git@x.io"}) {
		t.Fatalf("Resolve = %+v", got)
	}
}

func TestResolver_LookupFailureYieldsEmpty(t *testing.T) {
	r := &Resolver{
		Lookup: LookupFunc(func(context.Context, string, Attribute) (string, error) {
			return "", errors.New("git not installed")
		}),
	}
	if got := r.Resolve(context.Background(), ""); got != (Identity{}) {
		t.Fatalf("Resolve = %+v, want empty identity", got)
	}
	if got := (&Resolver{}).Name(context.Background(), ""); got != "" {
		t.Fatalf("Name without lookup = %q", got)
	}
}

func TestResolver_NotCached(t *testing.T) {
	calls := 0
	r := &Resolver{Lookup: LookupFunc(func(context.Context, string, Attribute) (string, error) {
		calls++
		return "v", nil
	})}
	r.Resolve(context.Background(), "")
	r.Resolve(context.Background(), "")
	if calls != 4 {
		t.Fatalf("lookup ran %d times, want 4", calls)
	}
}
