package frontend

import (
	"testing"

	"github.com/SNSystems/toy-tools/internal/instruction"
)

func TestParse_SimpleProcedure(t *testing.T) {
	prog, err := Parse(`main { 1 2 add }`, Options{SourceFile: "a.toy"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Names) != 1 || prog.Names[0] != "main" {
		t.Fatalf("Names = %v, want [main]", prog.Names)
	}
	body := prog.Procs["main"].Body
	if len(body) != 3 {
		t.Fatalf("body has %d instructions, want 3", len(body))
	}
	if n, ok := body[0].(*instruction.Number); !ok || n.V != 1 {
		t.Errorf("body[0] = %#v, want Number(1)", body[0])
	}
	if n, ok := body[1].(*instruction.Number); !ok || n.V != 2 {
		t.Errorf("body[1] = %#v, want Number(2)", body[1])
	}
	if o, ok := body[2].(*instruction.Operator); !ok || o.V != "add" {
		t.Errorf("body[2] = %#v, want Operator(add)", body[2])
	}
}

func TestParse_MultipleProceduresInDeclarationOrder(t *testing.T) {
	prog, err := Parse(`b { } a { } c { }`, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"b", "a", "c"}
	for i, name := range want {
		if prog.Names[i] != name {
			t.Errorf("Names[%d] = %q, want %q", i, prog.Names[i], name)
		}
	}
}

func TestParse_BooleansStringsAndNesting(t *testing.T) {
	prog, err := Parse(`main { true false "hi" { dup } }`, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	body := prog.Procs["main"].Body
	if len(body) != 4 {
		t.Fatalf("body has %d instructions, want 4", len(body))
	}
	if b, ok := body[0].(*instruction.Boolean); !ok || b.V != true {
		t.Errorf("body[0] = %#v, want Boolean(true)", body[0])
	}
	if b, ok := body[1].(*instruction.Boolean); !ok || b.V != false {
		t.Errorf("body[1] = %#v, want Boolean(false)", body[1])
	}
	if s, ok := body[2].(*instruction.String); !ok || s.V != "hi" {
		t.Errorf("body[2] = %#v, want String(hi)", body[2])
	}
	nested, ok := body[3].(*instruction.Procedure)
	if !ok || len(nested.Body) != 1 {
		t.Fatalf("body[3] = %#v, want a one-instruction nested Procedure", body[3])
	}
}

func TestParse_StringEscapes(t *testing.T) {
	prog, err := Parse(`main { "a\nb\tc\"d\\e" }`, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := prog.Procs["main"].Body[0].(*instruction.String).V
	want := "a\nb\tc\"d\\e"
	if got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}

func TestParse_Comments(t *testing.T) {
	prog, err := Parse("main { # a comment\n 1 }", Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Procs["main"].Body) != 1 {
		t.Fatalf("body = %v, want a single instruction", prog.Procs["main"].Body)
	}
}

func TestParse_Numbers(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"main { 1 }", 1},
		{"main { -1 }", -1},
		{"main { 1.5 }", 1.5},
		{"main { -1.5e2 }", -150},
		{"main { 1E-2 }", 0.01},
	}
	for _, tt := range tests {
		prog, err := Parse(tt.src, Options{})
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.src, err)
		}
		got := prog.Procs["main"].Body[0].(*instruction.Number).V
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestParse_OperatorIdentifiersWithSymbols(t *testing.T) {
	prog, err := Parse(`main { == != <= }`, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	body := prog.Procs["main"].Body
	names := []string{"==", "!=", "<="}
	if len(body) != len(names) {
		t.Fatalf("body has %d instructions, want %d", len(body), len(names))
	}
	for i, name := range names {
		if op, ok := body[i].(*instruction.Operator); !ok || op.V != name {
			t.Errorf("body[%d] = %#v, want Operator(%s)", i, body[i], name)
		}
	}
}

func TestParse_DebugInfoToggle(t *testing.T) {
	t.Run("disabled leaves every instruction unlocated", func(t *testing.T) {
		prog, err := Parse(`main { 1 }`, Options{SourceFile: "a.toy", DebugInfo: false})
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if loc := prog.Procs["main"].Body[0].Location(); loc != nil {
			t.Errorf("Location = %v, want nil", loc)
		}
		if loc := prog.Procs["main"].Location(); loc != nil {
			t.Errorf("procedure Location = %v, want nil", loc)
		}
	})

	t.Run("enabled attaches file, line, and column", func(t *testing.T) {
		prog, err := Parse("main {\n  1\n}", Options{SourceFile: "a.toy", DebugInfo: true})
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		loc := prog.Procs["main"].Body[0].Location()
		if loc == nil {
			t.Fatal("Location = nil, want a location")
		}
		if loc.SrcFile != "a.toy" || loc.Line != 2 || loc.Column != 3 {
			t.Errorf("Location = %+v, want {a.toy 2 3}", loc)
		}
	})
}

func TestParse_RedefinitionIsAnError(t *testing.T) {
	_, err := Parse(`main { } main { }`, Options{})
	if err == nil {
		t.Fatal("expected an error for a redefined procedure")
	}
}

func TestParse_ErrorCases(t *testing.T) {
	tests := []string{
		`main { `,               // unterminated body
		`main 1 }`,              // missing '{'
		`main { "unterminated`,  // unterminated string
		`main { $ }`,            // unexpected character
		`{ 1 }`,                 // missing procedure name
	}
	for _, src := range tests {
		if _, err := Parse(src, Options{}); err == nil {
			t.Errorf("Parse(%q): expected an error, got nil", src)
		}
	}
}
