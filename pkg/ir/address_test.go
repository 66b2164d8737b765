package ir

import "testing"

func TestAddressNames(t *testing.T) {
	tests := []struct {
		addr Address
		want string
	}{
		{&Global{W: WInt, Ident: "x"}, "g4_x"},
		{&Global{W: WFunc, Ident: "main"}, "gf_main"},
		{&Module{W: WChar, Ident: "c"}, "m1_c"},
		{&Module{W: WFunc, Ident: "helper"}, "mf_helper"},
		{&Local{W: WInt, Offset: 8}, "l4@8"},
		{&Local{W: WAggregate, Offset: 12}, "l0@12"},
		{&Param{W: WChar, Offset: 4}, "p1@4"},
		{&Temp{W: WInt, ID: 3}, "t4_3"},
		{&IntLit{Value: -7}, "-7"},
		{&StringLit{ID: 2}, "S0_2"},
		{&Indexed{W: WInt, Base: &Temp{W: WInt, ID: 1}, Index: &IntLit{Value: 2}}, "t4_1[2]"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.addr.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddressNamesDistinct(t *testing.T) {
	// Same discriminator, different kind or width.
	addrs := []Address{
		&Global{W: WInt, Ident: "a"},
		&Global{W: WChar, Ident: "a"},
		&Global{W: WAggregate, Ident: "a"},
		&Global{W: WFunc, Ident: "a"},
		&Module{W: WInt, Ident: "a"},
		&Local{W: WInt, Offset: 4},
		&Local{W: WChar, Offset: 4},
		&Param{W: WInt, Offset: 4},
		&Temp{W: WInt, ID: 4},
		&Temp{W: WChar, ID: 4},
		&IntLit{Value: 4},
		&StringLit{ID: 4},
	}
	seen := make(map[string]AddrKind)
	for _, a := range addrs {
		if k, dup := seen[a.Name()]; dup {
			t.Errorf("%s: %s and %s share a name", a.Name(), k, a.Kind())
		}
		seen[a.Name()] = a.Kind()
	}
}

func TestIsFunc(t *testing.T) {
	if !IsFunc(&Global{W: WFunc, Ident: "f"}) {
		t.Error("gf_f should be a function")
	}
	if IsFunc(&Global{W: WInt, Ident: "f"}) {
		t.Error("g4_f should not be a function")
	}
	if IsFunc(nil) {
		t.Error("nil should not be a function")
	}
}

func TestRelOpNegate(t *testing.T) {
	tests := []struct {
		op   RelOp
		want RelOp
	}{
		{RelLt, RelGe},
		{RelLe, RelGt},
		{RelGt, RelLe},
		{RelGe, RelLt},
		{RelEq, RelNe},
		{RelNe, RelEq},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got := tt.op.Negate()
			if got != tt.want {
				t.Errorf("%s.Negate() = %s, want %s", tt.op, got, tt.want)
			}
			if got == tt.op {
				t.Errorf("%s.Negate() returned itself", tt.op)
			}
			if back := got.Negate(); back != tt.op {
				t.Errorf("%s.Negate().Negate() = %s", tt.op, back)
			}
		})
	}
}

func TestBinaryOpRel(t *testing.T) {
	for _, s := range []string{"<", "<=", ">", ">=", "==", "!="} {
		op, ok := ParseBinaryOp(s)
		if !ok {
			t.Fatalf("ParseBinaryOp(%q) failed", s)
		}
		rel, ok := op.Rel()
		if !ok || rel.String() != s {
			t.Errorf("%s.Rel() = %s, %v", op, rel, ok)
		}
	}
	for _, s := range []string{"+", "-", "*", "/", "%", "&&", "||"} {
		op, ok := ParseBinaryOp(s)
		if !ok {
			t.Fatalf("ParseBinaryOp(%q) failed", s)
		}
		if _, ok := op.Rel(); ok {
			t.Errorf("%s.Rel() should fail", op)
		}
	}
	if _, ok := ParseBinaryOp("**"); ok {
		t.Error("ParseBinaryOp(**) should fail")
	}
}
