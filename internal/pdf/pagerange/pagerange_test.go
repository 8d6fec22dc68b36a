package pagerange

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		spec       string
		totalPages int
		want       []int
		wantErr    bool
	}{
		{
			name:       "empty spec means every page",
			spec:       "",
			totalPages: 4,
			want:       []int{1, 2, 3, 4},
		},
		{
			name:       "whitespace spec means every page",
			spec:       "   ",
			totalPages: 2,
			want:       []int{1, 2},
		},
		{
			name:       "single page",
			spec:       "3",
			totalPages: 10,
			want:       []int{3},
		},
		{
			name:       "simple range",
			spec:       "2-5",
			totalPages: 10,
			want:       []int{2, 3, 4, 5},
		},
		{
			name:       "mixed pages and ranges",
			spec:       "1,4,7-9",
			totalPages: 10,
			want:       []int{1, 4, 7, 8, 9},
		},
		{
			name:       "overlapping parts deduplicate",
			spec:       "1-3,2-4,3",
			totalPages: 10,
			want:       []int{1, 2, 3, 4},
		},
		{
			name:       "unordered input sorts ascending",
			spec:       "9,1,5",
			totalPages: 10,
			want:       []int{1, 5, 9},
		},
		{
			name:       "range end clamps to document length",
			spec:       "7-999",
			totalPages: 10,
			want:       []int{7, 8, 9, 10},
		},
		{
			name:       "range entirely past the end drops out",
			spec:       "1-2,50-60",
			totalPages: 10,
			want:       []int{1, 2},
		},
		{
			name:       "spaces around parts",
			spec:       " 1 , 3 - 4 ",
			totalPages: 10,
			want:       []int{1, 3, 4},
		},
		{
			name:       "single page out of bounds is an error",
			spec:       "12",
			totalPages: 10,
			wantErr:    true,
		},
		{
			name:       "single page zero is an error",
			spec:       "0",
			totalPages: 10,
			wantErr:    true,
		},
		{
			name:       "start past end is an error",
			spec:       "5-2",
			totalPages: 10,
			wantErr:    true,
		},
		{
			name:       "empty part is an error",
			spec:       "1,,3",
			totalPages: 10,
			wantErr:    true,
		},
		{
			name:       "garbage is an error",
			spec:       "abc",
			totalPages: 10,
			wantErr:    true,
		},
		{
			name:       "dangling dash is an error",
			spec:       "3-",
			totalPages: 10,
			wantErr:    true,
		},
		{
			name:       "document with no pages is an error",
			spec:       "1",
			totalPages: 0,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.spec, tt.totalPages)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q, %d) expected error, got %v", tt.spec, tt.totalPages, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("Parse(%q, %d) unexpected error: %v", tt.spec, tt.totalPages, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q, %d) = %v, want %v", tt.spec, tt.totalPages, got, tt.want)
			}
		})
	}
}

func TestSplitRange(t *testing.T) {
	tests := []struct {
		part    string
		start   int
		end     int
		isRange bool
	}{
		{part: "2-5", start: 2, end: 5, isRange: true},
		{part: "10-10", start: 10, end: 10, isRange: true},
		{part: "3", isRange: false},
		{part: "-3", isRange: false},
		{part: "3-", isRange: false},
		{part: "a-b", isRange: false},
	}

	for _, tt := range tests {
		t.Run(tt.part, func(t *testing.T) {
			start, end, ok := splitRange(tt.part)
			if ok != tt.isRange {
				t.Fatalf("splitRange(%q) ok = %v, want %v", tt.part, ok, tt.isRange)
			}
			if ok && (start != tt.start || end != tt.end) {
				t.Errorf("splitRange(%q) = (%d, %d), want (%d, %d)", tt.part, start, end, tt.start, tt.end)
			}
		})
	}
}
