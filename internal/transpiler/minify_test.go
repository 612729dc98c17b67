package transpiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "line comment keeps preceding character",
			in:   "float a; // trailing\nfloat b;",
			want: "float a; \nfloat b;",
		},
		{
			name: "comment at start of text",
			in:   "// header\nfloat a;",
			want: "\nfloat a;",
		},
		{
			name: "block comment spanning lines",
			in:   "float a /* one\ntwo */;",
			want: "float a ;",
		},
		{
			name: "block comments are not greedy",
			in:   "/* a */ x /* b */",
			want: " x ",
		},
		{
			name: "comment containing a url",
			in:   "// see http://example.com",
			want: "",
		},
		{
			name: "slashes after a colon are kept",
			in:   "uri http://example.com",
			want: "uri http://example.com",
		},
		{
			name: "escaped slashes are kept",
			in:   `a \// b`,
			want: `a \// b`,
		},
		{
			name: "commented directive is removed",
			in:   "// #include \"missing\"\nvoid main() {}",
			want: "\nvoid main() {}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripComments(tt.in))
		})
	}
}

func TestCollapseLineEndings(t *testing.T) {
	assert.Equal(t, "a\nb\nc\n", CollapseLineEndings("a\r\n\r\nb\n\n\nc\r"))
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b\n c", CollapseSpaces("a \t  b\n\t\tc"))
}

func TestCompactOperators(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"vec4 a = vec4 ( 1.0 , 2.0 ) ;", "vec4 a=vec4(1.0,2.0);"},
		{"x = a ? b : c ;", "x=a?b:c;"},
		{"m [ 0 ] = v . x * 2.0 - 1.0 ;", "m[0]=v.x*2.0-1.0;"},
		{"a & b | c % d ~ e", "a&b|c%d~e"},
		// not in the character list
		{"a < b && c > d", "a < b&&c > d"},
		{"#include <lib/noise>", "#include <lib/noise>"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CompactOperators(tt.in))
		})
	}
}

const shaderSource = `// header
uniform float time; /* block */
void main() {
    float x = time * 2.0;

    gl_FragColor = vec4( x, 0.0, 0.0, 1.0 );
}
`

func TestMinify(t *testing.T) {
	want := "\nuniform float time;\nvoid main(){\n float x=time*2.0;\n gl_FragColor=vec4(x,0.0,0.0,1.0);\n}\n"
	assert.Equal(t, want, Minify(shaderSource))
}

func TestMinify_Idempotent(t *testing.T) {
	once := Minify(shaderSource)
	assert.Equal(t, once, Minify(once))

	t.Run("compaction that forms a line comment", func(t *testing.T) {
		once := Minify("float x = a / /b;\nfloat y;")
		assert.Equal(t, "float x=a//b;\nfloat y;", once)
		assert.Equal(t, "float x=a\nfloat y;", Minify(once))
	})
}
