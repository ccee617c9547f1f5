package main

import (
	"reflect"
	"testing"
)

func TestRewriteDayShortcutArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"shatilah"},
			want: []string{"shatilah"},
		},
		{
			name: "day name first token",
			in:   []string{"shatilah", "tuesday"},
			want: []string{"shatilah", "day", "tuesday"},
		},
		{
			name: "abbreviation",
			in:   []string{"shatilah", "Thu"},
			want: []string{"shatilah", "day", "Thu"},
		},
		{
			name: "today",
			in:   []string{"shatilah", "today"},
			want: []string{"shatilah", "day", "today"},
		},
		{
			name: "day after value flag",
			in:   []string{"shatilah", "--dir", "./tmp-store", "sunday"},
			want: []string{"shatilah", "--dir", "./tmp-store", "day", "sunday"},
		},
		{
			name: "day after equals flag",
			in:   []string{"shatilah", "--backend=file", "sunday"},
			want: []string{"shatilah", "--backend=file", "day", "sunday"},
		},
		{
			name: "day after bool flag",
			in:   []string{"shatilah", "--pretty", "friday"},
			want: []string{"shatilah", "--pretty", "day", "friday"},
		},
		{
			name: "flag value that looks like a day is skipped",
			in:   []string{"shatilah", "--dir", "monday", "requests", "list"},
			want: []string{"shatilah", "--dir", "monday", "requests", "list"},
		},
		{
			name: "after double dash not rewritten",
			in:   []string{"shatilah", "--", "monday"},
			want: []string{"shatilah", "--", "monday"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"shatilah", "toggle", "monday", "2"},
			want: []string{"shatilah", "toggle", "monday", "2"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"shatilah", "wat"},
			want: []string{"shatilah", "wat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDayShortcutArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDayShortcutArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
