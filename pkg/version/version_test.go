package version

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr error
	}{
		{in: "1", want: Version{Major: 1, Precision: 1}},
		{in: "v1", want: Version{Major: 1, Precision: 1}},
		{in: " v1.2 ", want: Version{Major: 1, Minor: 2, Precision: 2}},
		{in: "1.2.3", want: Version{Major: 1, Minor: 2, Patch: 3, Precision: 3}},
		{in: "v2.0.1-rc.1", want: Version{Major: 2, Patch: 1, Precision: 3, Extras: "-rc.1"}},
		{in: "1.4+build.7", want: Version{Major: 1, Minor: 4, Precision: 2, Extras: "+build.7"}},
		{in: "", wantErr: ErrEmptyVersion},
		{in: "v", wantErr: ErrNonNumeric},
		{in: "1.2.3.4", wantErr: ErrTooManyComponents},
		{in: "1..2", wantErr: ErrNonNumeric},
		{in: "a.b", wantErr: ErrNonNumeric},
		{in: "-1", wantErr: ErrNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	for in, want := range map[string]string{
		"1":       "v1",
		"v1.2":    "v1.2",
		"1.2.3-x": "v1.2.3",
	} {
		if got := MustParse(in).String(); got != want {
			t.Errorf("MustParse(%q).String() = %q, want %q", in, got, want)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"v1", "v1.4", 0},
		{"v1.2", "v1.3", -1},
		{"v1.3.1", "v1.3.0", 1},
		{"v2", "v1.9.9", 1},
		{"v1.0.0", "v1.0.0", 0},
	}
	for _, tt := range tests {
		if got := MustParse(tt.a).Compare(MustParse(tt.b)); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompatible(t *testing.T) {
	if !MustParse("v1.3").Compatible(MustParse("v1")) {
		t.Error("expected v1.3 to be compatible with v1")
	}
	if MustParse("v2").Compatible(MustParse("v1")) {
		t.Error("expected v2 to be incompatible with v1")
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParse("not-a-version")
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{"1", "v1.2", "1.2.3", "", ".", "1.", "1..2", "v", "-1", "1.2.3.4", "1.2.3-rc"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v, err := Parse(input)
		if err != nil {
			return
		}
		if v.Precision < 1 || v.Precision > 3 || v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
			t.Fatalf("Parse(%q) returned invalid version %+v", input, v)
		}
		again, err := Parse(v.String())
		if err != nil {
			t.Fatalf("re-parsing %q (from %q) failed: %v", v.String(), input, err)
		}
		if again.Compare(v) != 0 || again.Precision != v.Precision {
			t.Fatalf("round trip mismatch for %q: %+v != %+v", input, v, again)
		}
	})
}
