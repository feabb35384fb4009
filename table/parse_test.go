package table

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const stylesHeader = "name,face,size,lineheight\n"

func TestParseStyles(t *testing.T) {
	src := stylesHeader +
		"default,SomeFace,24,1.2\n" +
		"bold,SomeFace-Bold,24,1.2\n"

	styles, err := ParseStyles([]byte(src))
	if err != nil {
		t.Fatalf("ParseStyles: %v", err)
	}

	want := []Style{
		{Name: "default", Face: "SomeFace", Size: 24, LineHeight: 1.2},
		{Name: "bold", Face: "SomeFace-Bold", Size: 24, LineHeight: 1.2},
	}
	if diff := cmp.Diff(want, styles); diff != "" {
		t.Errorf("styles mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStylesTrailingBlankLine(t *testing.T) {
	src := stylesHeader + "default,Face,12,1\n\n"
	styles, err := ParseStyles([]byte(src))
	if err != nil {
		t.Fatalf("ParseStyles: %v", err)
	}
	if len(styles) != 1 {
		t.Errorf("got %d styles, want 1", len(styles))
	}
}

func TestParseStylesFieldCountMismatch(t *testing.T) {
	src := stylesHeader + "default,Face,12\n"
	_, err := ParseStyles([]byte(src))

	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("ParseStyles error = %v, want *RowError", err)
	}
	if rowErr.Got != 3 || rowErr.Want != 4 {
		t.Errorf("RowError = %+v, want Got=3 Want=4", rowErr)
	}
}

func TestParseStylesEmpty(t *testing.T) {
	if _, err := ParseStyles([]byte(stylesHeader)); !errors.Is(err, ErrNoStyles) {
		t.Errorf("ParseStyles(header only) error = %v, want ErrNoStyles", err)
	}
}

func TestParseStringsHeaderDefinesLanguages(t *testing.T) {
	src := "key,width,height,en,de\n" +
		"greet,100,50,Hello,Hallo\n" +
		"shared,0,0,Common,Gemeinsam\n"

	entries, languages, err := ParseStrings([]byte(src))
	if err != nil {
		t.Fatalf("ParseStrings: %v", err)
	}

	wantLangs := []string{"en", "de"}
	if diff := cmp.Diff(wantLangs, languages); diff != "" {
		t.Errorf("languages mismatch (-want +got):\n%s", diff)
	}

	wantEntries := []StringEntry{
		{Key: "greet", Width: 100, Height: 50, Texts: []string{"Hello", "Hallo"}},
		{Key: "shared", Width: 0, Height: 0, Texts: []string{"Common", "Gemeinsam"}},
	}
	if diff := cmp.Diff(wantEntries, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	if entries[0].InScope() != true || entries[1].InScope() != false {
		t.Errorf("InScope: got %v/%v, want true/false", entries[0].InScope(), entries[1].InScope())
	}
}

func TestParseStringsMissingHeader(t *testing.T) {
	if _, _, err := ParseStrings(nil); !errors.Is(err, ErrNoHeader) {
		t.Errorf("ParseStrings(nil) error = %v, want ErrNoHeader", err)
	}
	// A header with no language columns is no header at all.
	if _, _, err := ParseStrings([]byte("key,width,height\n")); !errors.Is(err, ErrNoHeader) {
		t.Errorf("ParseStrings(no languages) error = %v, want ErrNoHeader", err)
	}
}

func TestParseStringsFieldCountMismatch(t *testing.T) {
	src := "key,width,height,en\n" +
		"greet,100,50,Hello,extra\n"
	_, _, err := ParseStrings([]byte(src))

	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("ParseStrings error = %v, want *RowError", err)
	}
	if rowErr.Got != 5 || rowErr.Want != 4 {
		t.Errorf("RowError = %+v, want Got=5 Want=4", rowErr)
	}
}

func TestSplitRowsQuoting(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want [][]string
	}{
		{
			name: "embedded delimiter",
			src:  "a,\"b,c\",d\n",
			want: [][]string{{"a", "b,c", "d"}},
		},
		{
			name: "doubled quote escape",
			src:  "a,\"say \"\"hi\"\"\",c\n",
			want: [][]string{{"a", `say "hi"`, "c"}},
		},
		{
			name: "embedded newline",
			src:  "a,\"line1\nline2\",c\n",
			want: [][]string{{"a", "line1\nline2", "c"}},
		},
		{
			name: "quoted and bare segments concatenate",
			src:  "a,pre\"mid,dle\"post,c\n",
			want: [][]string{{"a", "premid,dlepost", "c"}},
		},
		{
			name: "crlf line endings",
			src:  "a,b\r\nc,d\r\n",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "final row without newline",
			src:  "a,b\nc,d",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "rows with empty first field are skipped",
			src:  ",b,c\na,b\n",
			want: [][]string{{"a", "b"}},
		},
		{
			name: "single-field rows are skipped",
			src:  "loner\na,b\n",
			want: [][]string{{"a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitRows("test", []byte(tt.src))
			if err != nil {
				t.Fatalf("splitRows: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitRowsUnterminatedQuote(t *testing.T) {
	_, err := splitRows("styles", []byte("a,\"oops\n"))
	var qErr *QuoteError
	if !errors.As(err, &qErr) {
		t.Fatalf("splitRows error = %v, want *QuoteError", err)
	}
	if qErr.Table != "styles" {
		t.Errorf("QuoteError.Table = %q, want %q", qErr.Table, "styles")
	}
}

func TestLenientNumericParsing(t *testing.T) {
	src := "key,width,height,en\n" +
		"a,100px,50,text\n" +
		"b,junk,-,text\n"
	entries, _, err := ParseStrings([]byte(src))
	if err != nil {
		t.Fatalf("ParseStrings: %v", err)
	}
	if entries[0].Width != 100 {
		t.Errorf("entry a width = %d, want 100 (leading digits)", entries[0].Width)
	}
	if entries[1].Width != 0 || entries[1].Height != 0 {
		t.Errorf("entry b = %d×%d, want 0×0 for non-numeric fields", entries[1].Width, entries[1].Height)
	}
}

func TestTableLookups(t *testing.T) {
	tbl := &Table{
		Styles: []Style{
			{Name: "default", Face: "A"},
			{Name: "bold", Face: "B"},
		},
		Languages: []string{"en", "de"},
	}

	if got := tbl.StyleIndex("bold"); got != 1 {
		t.Errorf("StyleIndex(bold) = %d, want 1", got)
	}
	if got := tbl.StyleIndex("missing"); got != -1 {
		t.Errorf("StyleIndex(missing) = %d, want -1", got)
	}
	if got := tbl.LanguageIndex("de"); got != 1 {
		t.Errorf("LanguageIndex(de) = %d, want 1", got)
	}
	// Case-sensitive match.
	if got := tbl.LanguageIndex("DE"); got != -1 {
		t.Errorf("LanguageIndex(DE) = %d, want -1", got)
	}
	if tbl.DefaultStyle().Name != "default" {
		t.Errorf("DefaultStyle() = %q, want %q", tbl.DefaultStyle().Name, "default")
	}
}
