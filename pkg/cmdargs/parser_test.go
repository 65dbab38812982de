// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdargs

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/cmdargs/pkg/coerce"
)

type recorder struct {
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	reports []string
}

func newTestParser(args ...string) (*Parser, *recorder) {
	r := &recorder{}
	p := New(args, "prog", "1.2.3")
	p.Stdout = &r.stdout
	p.Stderr = &r.stderr
	p.ReportError = func(msg string) {
		r.reports = append(r.reports, msg)
	}
	return p, r
}

func ptr[T any](v T) *T { return &v }

type mode int

const (
	easy mode = iota
	medium
	hard
)

var modes = map[string]mode{"e": easy, "m": medium, "h": hard}

type stressArgs struct {
	o  *Arg[*string]
	d  *Arg[*float64]
	i  *Arg[*int]
	l  *Arg[*int64]
	s  *Arg[*mode]
	o2 *Arg[string]
	d2 *Arg[float64]
	i2 *Arg[int]
	l2 *Arg[int64]
	s2 *Arg[mode]
	o3 *Arg[string]
	d3 *Arg[float64]
	i3 *Arg[int]
	l3 *Arg[int64]
	s3 *Arg[mode]

	f, f2, f3, f4, f5, f6 *Arg[bool]

	src, dest *Arg[string]
}

func (a *stressArgs) HelpConfig() HelpConfig {
	return HelpConfig{Prologue: "my prologue", Epilogue: "my epilogue"}
}

func declareStress(p *Parser) *stressArgs {
	return &stressArgs{
		o:  Optional(p, []string{"-o", "--opt-string"}, "OPT_O", "Optional O hint", coerce.String),
		d:  Optional(p, []string{"-d"}, "OPT_D", "Optional D hint", coerce.Float64),
		i:  Optional(p, []string{"-i"}, "OPT_I", "Optional I hint", coerce.Int),
		l:  Optional(p, []string{"-l"}, "OPT_L", "Optional L hint", coerce.Int64),
		s:  OptionalMapped(p, []string{"-s", "--mode"}, "DIFFICULTY", "set difficulty of the game", modes),
		o2: OptionalDefault(p, []string{"-O"}, "0 Default value", "OPT_O_2", "Optional O hint 2", coerce.String),
		d2: OptionalDefault(p, []string{"-D", "--opt-double"}, 101.0, "OPT_D_2", "Optional D hint 2", coerce.Float64),
		i2: OptionalDefault(p, []string{"-I"}, 99, "OPT_I_2", "Optional I hint 2", coerce.Int),
		l2: OptionalDefault(p, []string{"-L"}, int64(123), "OPT_L_2", "Optional L hint 2", coerce.Int64),
		s2: OptionalMappedDefault(p, []string{"-S"}, medium, "DIFFICULTY", "set difficulty of the game", modes),
		o3: Required(p, []string{"--required-s"}, "REQ_O_3", "Required O hint 3", coerce.String),
		d3: Required(p, []string{"--required-d"}, "REQ_D_3", "Required D hint 3", coerce.Float64),
		i3: Required(p, []string{"--required-i", "--req-i"}, "REQ_I_3", "Required I hint 3", coerce.Int),
		l3: Required(p, []string{"--required-l", "-Z"}, "REQ_L_3", "Required L hint 3", coerce.Int64),
		s3: RequiredMapped(p, []string{"--serializable"}, "DIFFICULTY", "set difficulty of the game", modes),
		f:  p.Flag([]string{"-f"}, "Flag", false),
		f2: p.Flag([]string{"-F"}, "Flag 2", false),
		f3: p.Flag([]string{"--flag"}, "Flag 3", false),
		f4: p.Flag([]string{"--flagg"}, "Flag 4", false),
		f5: p.Flag([]string{"--noflag-five"}, "Flag 5", true),
		f6: p.Flag([]string{"--noflag-six"}, "Flag 6", true),

		src:  Positional(p, "SRC", "source positional hint", coerce.String),
		dest: Positional(p, "DEST", "dest positional hint", coerce.String),
	}
}

type stressValues struct {
	O  *string
	D  *float64
	I  *int
	L  *int64
	S  *mode
	O2 string
	D2 float64
	I2 int
	L2 int64
	S2 mode
	O3 string
	D3 float64
	I3 int
	L3 int64
	S3 mode
	F  [6]bool
	Src, Dest string
}

func (a *stressArgs) values() stressValues {
	return stressValues{
		O: a.o.Value(), D: a.d.Value(), I: a.i.Value(), L: a.l.Value(), S: a.s.Value(),
		O2: a.o2.Value(), D2: a.d2.Value(), I2: a.i2.Value(), L2: a.l2.Value(), S2: a.s2.Value(),
		O3: a.o3.Value(), D3: a.d3.Value(), I3: a.i3.Value(), L3: a.l3.Value(), S3: a.s3.Value(),
		F:   [6]bool{a.f.Value(), a.f2.Value(), a.f3.Value(), a.f4.Value(), a.f5.Value(), a.f6.Value()},
		Src: a.src.Value(), Dest: a.dest.Value(),
	}
}

func TestParseStress(t *testing.T) {
	want := stressValues{
		O: ptr("optional string value"), D: ptr(4.5), S: ptr(easy),
		O2: "0 Default value", D2: 2.3, I2: 99, L2: 144, S2: hard,
		O3: "My required string", D3: 32, I3: 24, L3: 1983, S3: medium,
		F:   [6]bool{true, true, false, true, true, false},
		Src: "boga.txt", Dest: "noga.txt",
	}
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "separate values",
			args: []string{
				"-o", "optional string value", "-d", "4.5", "--mode", "e",
				"-D", "2.3", "-L", "144", "-S", "h",
				"--required-s", "My required string", "--required-d", "32", "--req-i", "24", "-Z", "1983", "--serializable", "m",
				"-fF", "--flagg", "--noflag-six",
				"--", "boga.txt", "noga.txt",
			},
		},
		{
			name: "inline values",
			args: []string{
				"-o=optional string value", "-d4.5", "--mode", "e",
				"-D", "2.3", "-L144", "-S=h",
				"--required-s", "My required string", "--required-d=32", "--req-i", "24", "-Z1983", "--serializable=m",
				"-fF", "--flagg", "--noflag-six",
				"--", "boga.txt", "noga.txt",
			},
		},
		{
			name: "no separator",
			args: []string{
				"--opt-string", "optional string value", "-d", "4.5", "-s", "e",
				"--opt-double", "2.3", "-L", "144", "-S", "h",
				"--required-s", "My required string", "--required-d", "32", "--required-i", "24", "--required-l", "1983", "--serializable", "m",
				"-F", "-f", "--flagg", "--noflag-six",
				"boga.txt", "noga.txt",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, r := newTestParser(tt.args...)
			args, err := Parse(p, declareStress)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(want, args.values()); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
			if len(r.reports) != 0 {
				t.Errorf("reports = %q, want none", r.reports)
			}
		})
	}
}

// The positional/required schema used by several tests: a mapped -w, an
// optional -v, required -x and -z.
type reqArgs struct {
	w *Arg[*string]
	v *Arg[*string]
	x *Arg[int]
	z *Arg[float64]
}

func declareReq(p *Parser) *reqArgs {
	return &reqArgs{
		w: OptionalMapped(p, []string{"--mode"}, "MODE", "", map[string]string{"e": "easy", "h": "hard"}),
		v: Optional(p, []string{"-v"}, "V", "", coerce.String),
		x: Required(p, []string{"-x"}, "X", "", coerce.Int),
		z: Required(p, []string{"-z"}, "Z", "", coerce.Float64),
	}
}

func TestRequired(t *testing.T) {
	t.Run("declared", func(t *testing.T) {
		p, _ := newTestParser("--mode=e", "-vtest", "-x345", "-z", "7.89")
		a, err := Parse(p, declareReq)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got := *a.w.Value(); got != "easy" {
			t.Errorf("w = %q, want %q", got, "easy")
		}
		if got := *a.v.Value(); got != "test" {
			t.Errorf("v = %q, want %q", got, "test")
		}
		if got := a.x.Value(); got != 345 {
			t.Errorf("x = %d, want 345", got)
		}
		if got := a.z.Value(); got != 7.89 {
			t.Errorf("z = %v, want 7.89", got)
		}
	})

	t.Run("last occurrence wins", func(t *testing.T) {
		p, _ := newTestParser("--mode=e", "-vtest", "-x345", "-x", "888", "-z", "7.89")
		a, err := Parse(p, declareReq)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got := a.x.Value(); got != 888 {
			t.Errorf("x = %d, want 888", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		p, r := newTestParser("--mode=e", "-vtest", "-z", "7.89")
		_, err := Parse(p, declareReq)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Parse() error = %v, want *ParseError", err)
		}
		if pe.Binding != "[-x]" {
			t.Errorf("Binding = %q, want %q", pe.Binding, "[-x]")
		}
		if !errors.Is(err, ErrRequiredMissing) {
			t.Errorf("errors.Is(err, ErrRequiredMissing) = false for %v", err)
		}
		want := []string{"[-x] required value not found"}
		if diff := cmp.Diff(want, r.reports); diff != "" {
			t.Errorf("reports mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRequiredMissingNamesFirstBinding(t *testing.T) {
	p, _ := newTestParser("-z", "7.89")
	_, err := Parse(p, func(p *Parser) *reqArgs {
		return &reqArgs{
			v: nil,
			x: Required(p, []string{"-v"}, "V", "", coerce.Int),
			z: Required(p, []string{"-z"}, "Z", "", coerce.Float64),
		}
	})
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Binding != "[-v]" {
		t.Fatalf("Parse() error = %v, want ParseError naming [-v]", err)
	}
}

func TestMalformed(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unexpected arg", []string{"--mode=e", "-vtest", "illegal_input", "-x345", "-z", "7.89"}, "unexpected arg: illegal_input"},
		{"value looks like key", []string{"--mode=e", "-vtest", "-x", "-z", "7.89"}, "no value specified for arg -x"},
		{"no value at end", []string{"--mode=e", "-vtest", "-x345", "-z"}, "no value specified for arg -z"},
		{"option before option", []string{"--mode=e", "-v", "-x345", "-z", "7.89"}, "no value specified for arg -v"},
		{"option before long", []string{"-x345", "-v", "--mode=e", "-z", "7.89"}, "no value specified for arg -v"},
		{"separator as value", []string{"--mode=e", "-vtest", "-x", "--", "-z", "7.89"}, "no value specified for arg -x"},
		{"unknown short", []string{"-q1", "-x1", "-z1"}, "no key found for arg -q1"},
		{"unknown long", []string{"--nope", "1", "-x1", "-z1"}, "no key found for arg --nope"},
		{"long at end", []string{"-x1", "-z1", "--mode"}, "no value specified for arg --mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, r := newTestParser(tt.args...)
			_, err := Parse(p, declareReq)
			var me *MalformedArgsError
			if !errors.As(err, &me) {
				t.Fatalf("Parse() error = %v, want *MalformedArgsError", err)
			}
			if me.Msg != tt.want {
				t.Errorf("Msg = %q, want %q", me.Msg, tt.want)
			}
			if len(r.reports) != 1 || r.reports[0] != tt.want {
				t.Errorf("reports = %q, want [%q]", r.reports, tt.want)
			}
		})
	}
}

func TestNegativeNumberValue(t *testing.T) {
	p, _ := newTestParser("-x", "-5", "-z", "-3.14")
	a, err := Parse(p, declareReq)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if a.x.Value() != -5 || a.z.Value() != -3.14 {
		t.Errorf("x, z = %d, %v, want -5, -3.14", a.x.Value(), a.z.Value())
	}
}

func TestLongOptionConsumesDashValue(t *testing.T) {
	p, _ := newTestParser("--name", "-v")
	var name *Arg[string]
	var v *Arg[bool]
	_, err := Parse(p, func(p *Parser) struct{} {
		name = Required(p, []string{"--name"}, "NAME", "", coerce.String)
		v = p.Flag([]string{"-v"}, "", false)
		return struct{}{}
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if name.Value() != "-v" || v.Value() {
		t.Errorf("name, v = %q, %v, want %q, false", name.Value(), v.Value(), "-v")
	}
}

type flagArgs struct {
	w, x, y *Arg[bool]
}

func declareFlags(p *Parser) *flagArgs {
	return &flagArgs{
		w: p.Flag([]string{"-w"}, "", false),
		x: p.Flag([]string{"-x"}, "", true),
		y: p.Flag([]string{"-y"}, "", false),
	}
}

func TestStackedFlags(t *testing.T) {
	tests := []struct {
		arg     string
		want    [3]bool
		wantErr string
	}{
		{arg: "-wxy", want: [3]bool{true, false, true}},
		{arg: "-wxxy", want: [3]bool{true, false, true}},
		{arg: "-w", want: [3]bool{true, true, false}},
		{arg: "-wxzy", wantErr: "unknown flag specified: z"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			p, _ := newTestParser(tt.arg)
			a, err := Parse(p, declareFlags)
			if tt.wantErr != "" {
				var me *MalformedArgsError
				if !errors.As(err, &me) || me.Msg != tt.wantErr {
					t.Fatalf("Parse() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			got := [3]bool{a.w.Value(), a.x.Value(), a.y.Value()}
			if got != tt.want {
				t.Errorf("w, x, y = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlagWithEquals(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"--verbose=true", true},
		{"--verbose=false", false},
		{"--other=1", false},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			p, _ := newTestParser(tt.arg)
			v, err := Parse(p, func(p *Parser) *Arg[bool] {
				return p.Flag([]string{"--verbose"}, "", false)
			})
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := v.Value(); got != tt.want {
				t.Errorf("verbose = %v, want %v", got, tt.want)
			}
		})
	}
}

type posArgs struct {
	w *Arg[*string]
	x *Arg[string]
	y *Arg[int]
	z *Arg[float64]
}

func declarePos(p *Parser) *posArgs {
	return &posArgs{
		w: Optional(p, []string{"-v"}, "V", "", coerce.String),
		x: Positional(p, "X", "", coerce.String),
		y: Positional(p, "Y", "", coerce.Int),
		z: Positional(p, "Z", "", coerce.Float64),
	}
}

func TestPositionals(t *testing.T) {
	t.Run("parsed", func(t *testing.T) {
		p, _ := newTestParser("-v=value", "test", "345", "29.87")
		a, err := Parse(p, declarePos)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if a.x.Value() != "test" || a.y.Value() != 345 || a.z.Value() != 29.87 {
			t.Errorf("x, y, z = %q, %d, %v", a.x.Value(), a.y.Value(), a.z.Value())
		}
	})

	t.Run("separator", func(t *testing.T) {
		p, _ := newTestParser("-v=value", "--", "-t", "9999", "22.9")
		a, err := Parse(p, declarePos)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if *a.w.Value() != "value" || a.x.Value() != "-t" || a.y.Value() != 9999 || a.z.Value() != 22.9 {
			t.Errorf("w, x, y, z = %q, %q, %d, %v", *a.w.Value(), a.x.Value(), a.y.Value(), a.z.Value())
		}
	})

	t.Run("single dash is positional", func(t *testing.T) {
		p, _ := newTestParser("-", "1", "2")
		a, err := Parse(p, declarePos)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if a.x.Value() != "-" {
			t.Errorf("x = %q, want %q", a.x.Value(), "-")
		}
	})

	errTests := []struct {
		name string
		args []string
		want string
	}{
		{"missing one", []string{"-v=value", "test", "345"}, "positional arg(s) not provided: Z"},
		{"missing two", []string{"-v=value", "test"}, "positional arg(s) not provided: Y, Z"},
		{"no separator", []string{"-v=value", "-t", "9999", "22.9"}, "no key found for arg -t"},
		{"separator and missing", []string{"-v=value", "--", "-t", "9999"}, "positional arg(s) not provided: Z"},
		{"too many", []string{"a", "1", "2", "extra"}, "unexpected arg: extra"},
		{"blank", []string{"a", " ", "2"}, "positional arg Y must not be blank"},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestParser(tt.args...)
			_, err := Parse(p, declarePos)
			var me *MalformedArgsError
			if !errors.As(err, &me) {
				t.Fatalf("Parse() error = %v, want *MalformedArgsError", err)
			}
			if me.Msg != tt.want {
				t.Errorf("Msg = %q, want %q", me.Msg, tt.want)
			}
		})
	}

	t.Run("coercion failure", func(t *testing.T) {
		p, _ := newTestParser("a", "abc", "2")
		_, err := Parse(p, declarePos)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Parse() error = %v, want *ParseError", err)
		}
		if pe.Binding != "Y" || pe.Value != "abc" {
			t.Errorf("Binding, Value = %q, %q, want %q, %q", pe.Binding, pe.Value, "Y", "abc")
		}
	})
}

func TestMappedNotFound(t *testing.T) {
	p, r := newTestParser("-s", "x")
	_, err := Parse(p, func(p *Parser) *Arg[*mode] {
		return OptionalMapped(p, []string{"-s"}, "DIFFICULTY", "", modes)
	})
	if !errors.Is(err, ErrMappingNotFound) {
		t.Fatalf("Parse() error = %v, want ErrMappingNotFound", err)
	}
	want := `[-s] mapping not found for value "x", expected one of {e,h,m}`
	if len(r.reports) != 1 || r.reports[0] != want {
		t.Errorf("reports = %q, want [%q]", r.reports, want)
	}
}

func TestCastWithoutCoercion(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		p, _ := newTestParser("-o", "hi")
		o, err := Parse(p, func(p *Parser) *Arg[*string] {
			return Optional[string](p, []string{"-o"}, "O", "", nil)
		})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got := *o.Value(); got != "hi" {
			t.Errorf("o = %q, want %q", got, "hi")
		}
	})
	t.Run("int", func(t *testing.T) {
		p, _ := newTestParser("-o", "1")
		_, err := Parse(p, func(p *Parser) *Arg[*int] {
			return Optional[int](p, []string{"-o"}, "O", "", nil)
		})
		var pe *ParseError
		if !errors.As(err, &pe) || !errors.Is(err, ErrCast) {
			t.Fatalf("Parse() error = %v, want ParseError wrapping ErrCast", err)
		}
	})
}

func TestCoercionPanic(t *testing.T) {
	p, _ := newTestParser("-n", "0")
	_, err := Parse(p, func(p *Parser) *Arg[int] {
		return OptionalDefault(p, []string{"-n"}, 3, "N", "", func(s string) (int, error) {
			n, _ := strconv.Atoi(s)
			if n <= 0 {
				panic("lives must be > 0")
			}
			return n, nil
		})
	})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if !strings.Contains(pe.Error(), "lives must be > 0") {
		t.Errorf("error = %q, want panic message", pe.Error())
	}
}

func TestCoercionRunsOnce(t *testing.T) {
	calls := 0
	count := func(s string) (int, error) {
		calls++
		return strconv.Atoi(s)
	}
	p, _ := newTestParser("-n", "5")
	n, err := Parse(p, func(p *Parser) *Arg[int] {
		return Required(p, []string{"-n"}, "N", "", count)
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for range 3 {
		if v, err := n.Get(); v != 5 || err != nil {
			t.Fatalf("Get() = %d, %v, want 5, nil", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("coercion calls = %d, want 1", calls)
	}
}

func TestParseMemoized(t *testing.T) {
	builds := 0
	p, r := newTestParser("-x")
	build := func(p *Parser) int {
		builds++
		Required(p, []string{"-x"}, "X", "", coerce.Int)
		return builds
	}
	_, err1 := Parse(p, build)
	_, err2 := Parse(p, build)
	if err1 == nil || err1 != err2 {
		t.Errorf("errors = %v, %v, want the same non-nil error", err1, err2)
	}
	if builds != 1 {
		t.Errorf("builds = %d, want 1", builds)
	}
	if len(r.reports) != 1 {
		t.Errorf("reports = %q, want one", r.reports)
	}
}

func TestParseTypeMismatch(t *testing.T) {
	p, _ := newTestParser("a")
	if _, err := Parse(p, func(p *Parser) int {
		Positional(p, "A", "", coerce.String)
		return 1
	}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := Parse(p, func(p *Parser) string { return "" }); err == nil {
		t.Error("Parse() with a different result type succeeded")
	}
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		args       []string
		want       string
		wantStdout string
	}{
		{nil, "help", "Usage: prog"},
		{[]string{"help"}, "help", "Usage: prog"},
		{[]string{"--help", "-x", "nope"}, "help", "Usage: prog"},
		{[]string{"version"}, "version", "prog v1.2.3\n"},
		{[]string{"--version"}, "version", "prog v1.2.3\n"},
		{[]string{"q"}, "quit", ""},
		{[]string{"quit"}, "quit", ""},
		{[]string{"exit"}, "quit", ""},
		{[]string{"--quit"}, "quit", ""},
		{[]string{"--exit"}, "quit", ""},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			p, r := newTestParser(tt.args...)
			a, err := Parse(p, declareReq)
			var be *BuiltinCommandError
			if !errors.As(err, &be) {
				t.Fatalf("Parse() error = %v, want *BuiltinCommandError", err)
			}
			if be.Command != tt.want {
				t.Errorf("Command = %q, want %q", be.Command, tt.want)
			}
			if !errors.Is(err, ErrBuiltinCommand) {
				t.Error("errors.Is(err, ErrBuiltinCommand) = false")
			}
			if a != nil {
				t.Errorf("result = %v, want nil", a)
			}
			if !strings.HasPrefix(r.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want prefix %q", r.stdout.String(), tt.wantStdout)
			}
			if len(r.reports) != 0 {
				t.Errorf("reports = %q, want none", r.reports)
			}
		})
	}
}

func TestBuiltinsSkipResolution(t *testing.T) {
	p, _ := newTestParser("--help")
	var x *Arg[int]
	_, err := Parse(p, func(p *Parser) struct{} {
		x = Required(p, []string{"-x"}, "X", "", coerce.Int)
		return struct{}{}
	})
	if !errors.Is(err, ErrBuiltinCommand) {
		t.Fatalf("Parse() error = %v", err)
	}
	if x.Evaluated() {
		t.Error("binding was evaluated by a builtin command")
	}
}

func TestVersionText(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.2.3", "tool v1.2.3"},
		{"v2.0.0", "tool v2.0.0"},
		{"1.0.0-rc.1", "tool v1.0.0-rc.1"},
		{"nightly 2025-01-02", "nightly 2025-01-02"},
		{"", "tool version unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := New(nil, "tool", tt.version).versionText(); got != tt.want {
				t.Errorf("versionText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetBeforeParse(t *testing.T) {
	p, _ := newTestParser("-x", "1")
	x := Required(p, []string{"-x"}, "X", "", coerce.Int)
	if _, err := x.Get(); !errors.Is(err, ErrNotParsed) {
		t.Fatalf("Get() error = %v, want ErrNotParsed", err)
	}
	if x.Evaluated() {
		t.Error("Get before Parse evaluated the binding")
	}
	if _, err := Parse(p, func(p *Parser) *Arg[int] { return x }); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := x.Value(); got != 1 {
		t.Errorf("x = %d, want 1", got)
	}
}

func TestDefaultErrorReporter(t *testing.T) {
	p := New([]string{"-x"}, "prog", "")
	var stderr bytes.Buffer
	p.Stderr = &stderr
	_, err := Parse(p, func(p *Parser) *Arg[int] {
		return Required(p, []string{"-x"}, "X", "", coerce.Int)
	})
	if err == nil {
		t.Fatal("Parse() error = nil")
	}
	if got, want := stderr.String(), "error: no value specified for arg -x\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestLogf(t *testing.T) {
	p, _ := newTestParser("-x", "1", "-x", "2")
	var logs []string
	p.Logf = func(format string, args ...any) {
		logs = append(logs, format)
	}
	if _, err := Parse(p, func(p *Parser) *Arg[int] {
		return Required(p, []string{"-x"}, "X", "", coerce.Int)
	}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(logs) == 0 {
		t.Error("no debug logs written")
	}
}
