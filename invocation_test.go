package browserrun

import (
	"strings"
	"testing"
)

func TestNewInvocation(t *testing.T) {
	inv, err := NewInvocation("m",
		WithArgs("--filter", "foo"),
		WithTests("a", "b"),
		WithTests("c"),
	)
	if err != nil {
		t.Fatalf("NewInvocation() error = %v", err)
	}

	if inv.Module() != "m" {
		t.Errorf("Module() = %q, want %q", inv.Module(), "m")
	}
	if got := strings.Join(inv.Args(), " "); got != "--filter foo" {
		t.Errorf("Args() = %q, want %q", got, "--filter foo")
	}
	if got := strings.Join(inv.Tests(), ","); got != "a,b,c" {
		t.Errorf("Tests() = %q, want %q", got, "a,b,c")
	}
	if inv.BinaryName() != "m_bg.wasm" {
		t.Errorf("BinaryName() = %q, want %q", inv.BinaryName(), "m_bg.wasm")
	}
}

func TestNewInvocation_Validation(t *testing.T) {
	tests := []struct {
		name    string
		module  string
		opts    []InvocationOption
		wantErr string
	}{
		{"empty module", "", nil, "invalid module name"},
		{"module with path", "dir/m", nil, "invalid module name"},
		{"module with quote", "m'", nil, "invalid module name"},
		{"test with space", "m", []InvocationOption{WithTests("a b")}, "invalid test name"},
		{"test with quote", "m", []InvocationOption{WithTests("ok", "x');")}, "invalid test name"},
		{"duplicate test", "m", []InvocationOption{WithTests("a", "b", "a")}, "duplicate test"},
		{"duplicate across options", "m", []InvocationOption{WithTests("a"), WithTests("a")}, "duplicate test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvocation(tt.module, tt.opts...)
			if err == nil {
				t.Fatal("NewInvocation() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestInvocation_GettersReturnCopies(t *testing.T) {
	inv, err := NewInvocation("m", WithArgs("x"), WithTests("a"))
	if err != nil {
		t.Fatalf("NewInvocation() error = %v", err)
	}

	inv.Args()[0] = "mutated"
	inv.Tests()[0] = "mutated"

	if inv.Args()[0] != "x" {
		t.Error("Args() exposed internal slice")
	}
	if inv.Tests()[0] != "a" {
		t.Error("Tests() exposed internal slice")
	}
}

func TestInvocation_ArgsNotValidated(t *testing.T) {
	inv, err := NewInvocation("m", WithArgs(`has "quotes"`, "</script>", ""))
	if err != nil {
		t.Fatalf("NewInvocation() error = %v", err)
	}
	if len(inv.Args()) != 3 {
		t.Errorf("len(Args()) = %d, want 3", len(inv.Args()))
	}
}
