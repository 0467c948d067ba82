package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bft-labs/qiimemanifest/internal/domain"
)

var (
	r1 = MustParseTag("*R1.fastq")
	r2 = MustParseTag("*R2.fastq")
)

func TestBuild_TwoSamples(t *testing.T) {
	m, err := Build(
		[]string{"./B_R1.fastq", "./A_R1.fastq"},
		[]string{"./A_R2.fastq", "./B_R2.fastq"},
		r1, r2,
	)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	want := "sample-id\tforward-absolute-filepath\treverse-absolute-filepath\n" +
		"A\t./A_R1.fastq\t./A_R2.fastq\n" +
		"B\t./B_R1.fastq\t./B_R2.fastq"
	if got := m.String(); got != want {
		t.Errorf("manifest =\n%s\nwant\n%s", got, want)
	}
}

func TestBuild_EverySampleOnce(t *testing.T) {
	ids := []string{"S10", "S2", "S1", "control", "blank-3"}
	var fwd, rev []string
	for _, id := range ids {
		fwd = append(fwd, "reads/"+id+"_R1.fastq")
		rev = append(rev, "reads/"+id+"_R2.fastq")
	}

	m, err := Build(fwd, rev, r1, r2)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	lines := strings.Split(m.String(), "\n")
	if len(lines) != len(ids)+1 {
		t.Fatalf("got %d lines, want %d", len(lines), len(ids)+1)
	}

	seen := map[string]int{}
	for _, line := range lines[1:] {
		cols := strings.Split(line, "\t")
		if len(cols) != 3 {
			t.Fatalf("row %q has %d columns, want 3", line, len(cols))
		}
		seen[cols[0]]++
		if cols[1] != "reads/"+cols[0]+"_R1.fastq" || cols[2] != "reads/"+cols[0]+"_R2.fastq" {
			t.Errorf("row %q pairs the wrong files", line)
		}
	}
	for _, id := range ids {
		if seen[id] != 1 {
			t.Errorf("sample %q appears %d times, want 1", id, seen[id])
		}
	}
}

func TestBuild_PairsByIdentifierNotPosition(t *testing.T) {
	// Sorted positionally, B_R1 would line up with Aa_R2.
	res, err := New(r1, r2).Build(
		[]string{"A_R1.fastq", "B_R1.fastq"},
		[]string{"A_R2.fastq", "Aa_R2.fastq", "B_R2.fastq"},
	)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	pairs := res.Manifest.Pairs
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[1].SampleID != "B" || pairs[1].Reverse.Path != "B_R2.fastq" {
		t.Errorf("pair[1] = %+v, want B paired with B_R2.fastq", pairs[1])
	}
	if len(res.Orphans) != 1 || res.Orphans[0].SampleID != "Aa" {
		t.Errorf("Orphans = %+v, want [Aa]", res.Orphans)
	}
}

func TestBuild_MissingMate(t *testing.T) {
	m, err := Build(
		[]string{"A_R1.fastq", "B_R1.fastq"},
		[]string{"A_R2.fastq"},
		r1, r2,
	)
	if m != nil {
		t.Error("Build() returned a partial manifest")
	}

	var mm *domain.MissingMateError
	if !errors.As(err, &mm) {
		t.Fatalf("Build() error = %v, want MissingMateError", err)
	}
	if mm.SampleID != "B" {
		t.Errorf("SampleID = %q, want B", mm.SampleID)
	}
}

func TestBuild_DuplicateIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		forward  []string
		reverse  []string
		wantSide domain.Side
	}{
		{
			name:     "forward separators collapse",
			forward:  []string{"A_R1.fastq", "A-R1.fastq"},
			reverse:  []string{"A_R2.fastq"},
			wantSide: domain.Forward,
		},
		{
			name:     "reverse in two directories",
			forward:  []string{"run1/A_R1.fastq"},
			reverse:  []string{"run1/A_R2.fastq", "run2/A_R2.fastq"},
			wantSide: domain.Reverse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.forward, tt.reverse, r1, r2)

			var dup *domain.DuplicateIdentifierError
			if !errors.As(err, &dup) {
				t.Fatalf("Build() error = %v, want DuplicateIdentifierError", err)
			}
			if dup.Side != tt.wantSide || dup.SampleID != "A" {
				t.Errorf("got side %s id %q, want side %s id A", dup.Side, dup.SampleID, tt.wantSide)
			}
		})
	}
}

func TestBuild_Empty(t *testing.T) {
	_, err := Build(nil, nil, r1, r2)
	if !errors.Is(err, domain.ErrInputNotFound) {
		t.Errorf("Build() error = %v, want ErrInputNotFound", err)
	}

	res, err := New(r1, r2, WithAllowEmpty(true)).Build(nil, nil)
	if err != nil {
		t.Fatalf("Build() with allow-empty unexpected error: %v", err)
	}
	if got := res.Manifest.String(); got != domain.Header {
		t.Errorf("manifest = %q, want header only", got)
	}
}

func TestBuild_DoesNotModifyInput(t *testing.T) {
	fwd := []string{"B_R1.fastq", "A_R1.fastq"}
	rev := []string{"B_R2.fastq", "A_R2.fastq"}

	if _, err := Build(fwd, rev, r1, r2); err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(fwd, []string{"B_R1.fastq", "A_R1.fastq"}) {
		t.Errorf("forward input reordered: %v", fwd)
	}
	if !reflect.DeepEqual(rev, []string{"B_R2.fastq", "A_R2.fastq"}) {
		t.Errorf("reverse input reordered: %v", rev)
	}
}

func TestBuild_AbsolutePaths(t *testing.T) {
	res, err := New(r1, r2, WithAbsolutePaths(true)).Build(
		[]string{"reads/A_R1.fastq"},
		[]string{"reads/A_R2.fastq"},
	)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	p := res.Manifest.Pairs[0]
	if p.Forward.Path != filepath.Join(wd, "reads", "A_R1.fastq") {
		t.Errorf("Forward.Path = %q, want absolute", p.Forward.Path)
	}
	if !filepath.IsAbs(p.Reverse.Path) {
		t.Errorf("Reverse.Path = %q, want absolute", p.Reverse.Path)
	}
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("@r\nACGT\n+\nIIII\n"), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", n, err)
		}
	}
}

func TestBuildDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "S2_R1.fastq", "S2_R2.fastq", "S1_R1.fastq", "S1_R2.fastq", "notes.txt")

	res, err := New(r1, r2).BuildDir(dir)
	if err != nil {
		t.Fatalf("BuildDir() unexpected error: %v", err)
	}

	want := domain.Header + "\n" +
		"S1\t" + filepath.Join(dir, "S1_R1.fastq") + "\t" + filepath.Join(dir, "S1_R2.fastq") + "\n" +
		"S2\t" + filepath.Join(dir, "S2_R1.fastq") + "\t" + filepath.Join(dir, "S2_R2.fastq")
	if got := res.Manifest.String(); got != want {
		t.Errorf("manifest =\n%s\nwant\n%s", got, want)
	}
}

// chdir changes the working directory for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestBuildDir_KeepsRelativePrefix(t *testing.T) {
	root := t.TempDir()
	reads := filepath.Join(root, "reads")
	if err := os.Mkdir(reads, 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, reads, "A_R1.fastq", "A_R2.fastq", "B_R1.fastq", "B_R2.fastq")

	tests := []struct {
		name   string
		wd     string
		dir    string
		prefix string
	}{
		{name: "current dir with slash", wd: reads, dir: "./", prefix: "./"},
		{name: "current dir", wd: reads, dir: ".", prefix: "./"},
		{name: "dotted subdir", wd: root, dir: "./reads/", prefix: "./reads/"},
		{name: "plain subdir", wd: root, dir: "reads", prefix: "reads/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, tt.wd)

			res, err := New(r1, r2).BuildDir(tt.dir)
			if err != nil {
				t.Fatalf("BuildDir(%q) unexpected error: %v", tt.dir, err)
			}

			want := domain.Header + "\n" +
				"A\t" + tt.prefix + "A_R1.fastq\t" + tt.prefix + "A_R2.fastq\n" +
				"B\t" + tt.prefix + "B_R1.fastq\t" + tt.prefix + "B_R2.fastq"
			if got := res.Manifest.String(); got != want {
				t.Errorf("manifest =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestBuildDir_MidPatternWildcardRejected(t *testing.T) {
	// A wildcard after literal text would leave "_R1_" in every forward
	// identifier, so the tag itself is refused.
	if _, err := ParseTag("*_R1_*.fastq"); !errors.Is(err, domain.ErrInvalidTag) {
		t.Fatalf("ParseTag() error = %v, want ErrInvalidTag", err)
	}

	dir := t.TempDir()
	touch(t, dir, "A_R1_001.fastq", "A_R2_001.fastq")
	res, err := New(MustParseTag("*_R1_001.fastq"), MustParseTag("*_R2_001.fastq")).BuildDir(dir)
	if err != nil {
		t.Fatalf("BuildDir() unexpected error: %v", err)
	}
	if res.Manifest.Len() != 1 || res.Manifest.Pairs[0].SampleID != "A" {
		t.Errorf("pairs = %+v, want single sample A", res.Manifest.Pairs)
	}
}

func TestBuildDir_InputNotFound(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		dir  string
	}{
		{name: "missing directory", dir: filepath.Join(dir, "nope")},
		{name: "not a directory", dir: file},
		{name: "no matching files", dir: dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(r1, r2).BuildDir(tt.dir)
			if !errors.Is(err, domain.ErrInputNotFound) {
				t.Errorf("BuildDir() error = %v, want ErrInputNotFound", err)
			}
		})
	}
}

func TestBuildDir_Idempotent(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a_R1.fastq", "a_R2.fastq", "b_R1.fastq", "b_R2.fastq")
	out := t.TempDir()

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		res, err := New(r1, r2).BuildDir(dir)
		if err != nil {
			t.Fatalf("BuildDir() unexpected error: %v", err)
		}
		path := filepath.Join(out, "manifest.txt")
		if err := WriteFile(path, res.Manifest); err != nil {
			t.Fatalf("WriteFile() unexpected error: %v", err)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, b)
	}

	if string(outputs[0]) != string(outputs[1]) {
		t.Errorf("outputs differ:\n%s\n---\n%s", outputs[0], outputs[1])
	}
}
