package report

import "testing"

func TestFilename(t *testing.T) {
	cases := []struct {
		name        string
		student     string
		institution string
		register    string
		want        string
	}{
		{
			name:        "plain",
			student:     "Asha Verma",
			institution: "City Polytechnic",
			register:    "REG-2024-117",
			want:        "Asha_Verma_City_Polytechnic_REG_2024_117.pdf",
		},
		{
			name:        "punctuation collapses to underscores",
			student:     "O'Neil, Jr.",
			institution: "St. Mary's",
			register:    "R/42",
			want:        "O_Neil__Jr__St__Mary_s_R_42.pdf",
		},
		{
			name:        "empty parts become Unknown",
			student:     "",
			institution: "  ",
			register:    "REG1",
			want:        "Unknown_Unknown_REG1.pdf",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Filename(c.student, c.institution, c.register); got != c.want {
				t.Fatalf("Filename() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestFilenameIsPure(t *testing.T) {
	a := Filename("A B", "C", "1")
	b := Filename("A B", "C", "1")
	if a != b {
		t.Fatalf("same inputs gave %q and %q", a, b)
	}
}
