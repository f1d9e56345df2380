package textclean

import "testing"

func TestCleanJobText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "empty section only",
			input:  "<p>Talablar: - -</p>",
			expect: "",
		},
		{
			name:   "empty input",
			input:  "   ",
			expect: "",
		},
		{
			name:   "too short after cleaning",
			input:  "<b>ok</b>",
			expect: "",
		},
		{
			name:   "entities decoded and tags removed",
			input:  "<p>Tom &amp; Jerry&nbsp;&nbsp;studio</p>",
			expect: "Tom & Jerry studio",
		},
		{
			name:   "escaped markup is removed too",
			input:  "&lt;p&gt;Go dasturchi kerak&lt;/p&gt;",
			expect: "Go dasturchi kerak",
		},
		{
			name:   "blocks become lines",
			input:  "<p>Birinchi qator</p><p>Ikkinchi   qator</p>",
			expect: "Birinchi qator\nIkkinchi qator",
		},
		{
			name:   "line breaks",
			input:  "Ish vaqti: 9-18<br>Shanba dam",
			expect: "Ish vaqti: 9-18\nShanba dam",
		},
		{
			name:   "empty section among filled ones",
			input:  "<p>Talablar: -</p><p>Vazifalar: mijozlar bilan ishlash</p>",
			expect: "Vazifalar: mijozlar bilan ishlash",
		},
		{
			name:   "consecutive empty sections on one line",
			input:  "Требования: — Обязанности: - - Условия: офис в центре",
			expect: "Условия: офис в центре",
		},
		{
			name:   "dash list items are kept",
			input:  "Talablar: - Go tilini bilish",
			expect: "Talablar: - Go tilini bilish",
		},
		{
			name:   "scripts are dropped",
			input:  "<div>Kassir kerak<script>alert(1)</script></div>",
			expect: "Kassir kerak",
		},
		{
			name:   "plain text is trimmed",
			input:  "  \n\n Oshpaz kerak \n\n\n Toshkentda  ",
			expect: "Oshpaz kerak\n\nToshkentda",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanJobText(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNormalizeLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "region with district", input: "Andijon vil., Andijon sh.", expect: "Andijon, Andijon sh."},
		{name: "region only", input: "Toshkent vil.", expect: "Toshkent"},
		{name: "region without comma", input: "Samarqand vil. Urgut tumani", expect: "Samarqand, Urgut tumani"},
		{name: "russian oblast", input: "Ферганская обл., г. Коканд", expect: "Ферганская, г. Коканд"},
		{name: "duplicate commas", input: "Buxoro,, ,Kogon", expect: "Buxoro, Kogon"},
		{name: "stray commas and spaces", input: " , Navoiy   shahri , ", expect: "Navoiy shahri"},
		{name: "word containing token is kept", input: "Sevil., Xiva", expect: "Sevil., Xiva"},
		{name: "empty", input: "", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeLocation(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
