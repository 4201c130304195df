package core

import (
	"net/url"
	"reflect"
	"testing"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		values map[string]string
		want   string
	}{
		{
			name:   "every occurrence replaced",
			text:   `<svg fill="{{a}}"><path stroke="{{a}}"/></svg>`,
			values: map[string]string{"a": "X"},
			want:   `<svg fill="X"><path stroke="X"/></svg>`,
		},
		{
			name:   "unknown key leaves text untouched",
			text:   `<svg width="{{w}}"/>`,
			values: map[string]string{"zzz": "1"},
			want:   `<svg width="{{w}}"/>`,
		},
		{
			name:   "missing value keeps its token",
			text:   `<svg width="{{w}}" height="{{h}}"/>`,
			values: map[string]string{"w": "10"},
			want:   `<svg width="10" height="{{h}}"/>`,
		},
		{
			name:   "values are not rescanned",
			text:   `{{a}}-{{b}}`,
			values: map[string]string{"a": "{{b}}", "b": "B"},
			want:   `{{b}}-B`,
		},
		{
			name:   "empty value",
			text:   `<text>{{label}}</text>`,
			values: map[string]string{"label": ""},
			want:   `<text></text>`,
		},
		{
			name:   "names with spaces and symbols",
			text:   `{{fill color}} {{x-1}}`,
			values: map[string]string{"fill color": "red", "x-1": "5"},
			want:   `red 5`,
		},
		{
			name:   "extra leading brace joins the name",
			text:   `.a{{{c}}}`,
			values: map[string]string{"c": "red"},
			want:   `.a{{{c}}}`,
		},
		{
			name:   "extra leading brace matches its own name",
			text:   `.a{{{c}}}`,
			values: map[string]string{"{c": "red"},
			want:   `.ared}`,
		},
		{
			name:   "no values",
			text:   `{{a}}`,
			values: nil,
			want:   `{{a}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Substitute(tc.text, tc.values); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", `<svg/>`, []string{}},
		{"first occurrence order", `{{w}} {{h}} {{color}}`, []string{"w", "h", "color"}},
		{"duplicates collapse", `{{w}} {{h}} {{w}}`, []string{"w", "h"}},
		{"lazy match", `{{a}}}}`, []string{"a"}},
		{"single braces ignored", `{value} {{v}}`, []string{"v"}},
		{"extra leading brace", `.a{{{c}}}`, []string{"{c"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractPlaceholders(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValuesFromQuery(t *testing.T) {
	q := url.Values{
		"w":     {"10", "20"},
		"color": {"red"},
		"empty": {},
	}

	got := ValuesFromQuery(q)
	want := map[string]string{"w": "10", "color": "red"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
