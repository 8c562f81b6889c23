package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fyptrack/fyptrack/internal/models"
)

func sampleProjects() []models.Project {
	return []models.Project{
		{Title: "E-Learning Platform", StudentName: "John Doe", SupervisorName: "Dr. Jane Smith",
			Department: "Computer Science", Status: models.StatusInProgress, Progress: 65},
		{Title: "Mobile Health Monitoring", StudentName: "Alice Johnson", SupervisorName: "Prof. Michael Brown",
			Department: "Computer Science", Status: models.StatusSubmitted, Progress: 100},
	}
}

func TestProjectsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := ProjectsCSV(&buf, sampleProjects()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d", len(lines))
	}
	if lines[0] != "Title,Student,Supervisor,Department,Status,Progress" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "65%") || !strings.Contains(lines[2], "100%") {
		t.Fatalf("progress cells missing: %v", lines[1:])
	}
}

func TestProjectsWorkbook(t *testing.T) {
	f, err := ProjectsWorkbook(sampleProjects())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	got, err := f.GetCellValue("Projects", "A1")
	if err != nil || got != "Title" {
		t.Fatalf("A1 = %q err=%v", got, err)
	}
	got, err = f.GetCellValue("Projects", "F2")
	if err != nil || got != "65%" {
		t.Fatalf("F2 = %q err=%v", got, err)
	}
	got, err = f.GetCellValue("Projects", "E3")
	if err != nil || got != "submitted" {
		t.Fatalf("E3 = %q err=%v", got, err)
	}
}

func TestColName(t *testing.T) {
	cases := map[int]string{1: "A", 6: "F", 26: "Z", 27: "AA"}
	for n, want := range cases {
		if got := colName(n); got != want {
			t.Fatalf("colName(%d) = %q, want %q", n, got, want)
		}
	}
}
