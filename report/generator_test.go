package report

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/the-evaluation-company/eval-worker/pagedoc"
	"github.com/the-evaluation-company/eval-worker/rasset"
	"github.com/the-evaluation-company/eval-worker/typeface"
)

func quietLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	logger := quietLogger()
	fonts := typeface.NewProvider("", logger)
	images := rasset.NewProvider(filepath.Join(t.TempDir(), "missing"), logger)
	g := NewGenerator(DefaultConfig(), fonts, images)
	g.Now = func() time.Time { return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC) }
	return g
}

func credential(id string) CredentialGroup {
	return CredentialGroup{
		ID:            id,
		Country:       "France",
		Institution:   "Université de Lyon",
		Program:       "Licence en Informatique",
		USEquivalency: "Bachelor's degree in Computer Science",
		ProgramLength: "Three years",
	}
}

func TestGenerateEmptyInputProducesMinimalDocument(t *testing.T) {
	g := testGenerator(t)
	doc, err := g.renderDocument(RenderInput{Options: DefaultOptions()})
	if err != nil {
		t.Fatalf("renderDocument: %v", err)
	}
	// Header and comments share the first page; the policy appendix always
	// starts a page of its own.
	if doc.PageCount() < 2 {
		t.Fatalf("expected at least 2 pages, got %d", doc.PageCount())
	}
	data, err := doc.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with %%PDF header")
	}
}

func TestGenerateReturnsPDFBytes(t *testing.T) {
	g := testGenerator(t)
	input := RenderInput{
		CaseInfo:    CaseInfo{CaseNumber: "12345", NameOnApplication: "Jane Doe"},
		StudentName: "Jane Doe",
		Credentials: []CredentialGroup{credential("c1")},
		Options:     DefaultOptions(),
	}
	data, err := g.Generate(input)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with %%PDF header")
	}
}

func TestGeneratorIsSingleUse(t *testing.T) {
	g := testGenerator(t)
	if _, err := g.Generate(RenderInput{Options: DefaultOptions()}); err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	if _, err := g.Generate(RenderInput{Options: DefaultOptions()}); err == nil {
		t.Fatalf("second Generate should fail")
	}
}

func TestThreeCredentialsForceCommentsPage(t *testing.T) {
	one := testGenerator(t)
	oneDoc, err := one.renderDocument(RenderInput{
		StudentName: "Jane Doe",
		Credentials: []CredentialGroup{credential("c1")},
		Options:     DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("renderDocument: %v", err)
	}

	three := testGenerator(t)
	threeDoc, err := three.renderDocument(RenderInput{
		StudentName: "Jane Doe",
		Credentials: []CredentialGroup{credential("c1"), credential("c2"), credential("c3")},
		Options:     DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("renderDocument: %v", err)
	}

	if threeDoc.PageCount() != oneDoc.PageCount()+1 {
		t.Fatalf("comments page not forced: %d pages for 3 credentials vs %d for 1",
			threeDoc.PageCount(), oneDoc.PageCount())
	}
}

// The PDF serializer stamps a wall-clock CreationDate into the info
// dictionary; everything else is a function of the input once Now is fixed.
var pdfCreationDate = regexp.MustCompile(`D:\d{14}(?:Z|[+-]\d{4})`)

func TestRenderDeterministicWithFixedClock(t *testing.T) {
	input := RenderInput{
		CaseInfo:    CaseInfo{CaseNumber: "98765"},
		StudentName: "Nguyen Van An",
		Credentials: []CredentialGroup{credential("c1"), credential("c2")},
		Options:     DefaultOptions(),
	}
	render := func() []byte {
		t.Helper()
		data, err := testGenerator(t).Generate(input)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		return pdfCreationDate.ReplaceAll(data, []byte("D:00000000000000Z"))
	}
	if a, b := render(), render(); !bytes.Equal(a, b) {
		t.Fatalf("identical runs rendered different bytes: %d vs %d", len(a), len(b))
	}
}

func TestGenerateCourseByCourse(t *testing.T) {
	g := testGenerator(t)
	form := credential("c1")
	form.Courses = &CourseAnalysis{
		GradeScale: []GradeMapping{
			{OriginalGrade: "1-9", USGrade: "F", GPA: "0.00", LetterGrade: "F"},
			{OriginalGrade: "17-20", USGrade: "A", GPA: "4.00", LetterGrade: "A"},
			{OriginalGrade: "10-12", USGrade: "C", GPA: "2.00", LetterGrade: "C"},
			{OriginalGrade: "13-16", USGrade: "B", GPA: "3.00", LetterGrade: "B"},
		},
		Sections: []CourseSection{
			{Name: "Year One", Courses: []CourseItem{
				{Subject: "Analysis I", USCredits: "3", USGrades: "A"},
				{Subject: "Introduction to Programming", USCredits: "4", USGrades: "B+"},
			}},
		},
		TotalUSCredits: "30",
		CumulativeGPA:  "3.45",
	}
	input := RenderInput{
		CaseInfo:    CaseInfo{CaseNumber: "55555"},
		StudentName: "Jane Doe",
		Credentials: []CredentialGroup{form},
		Options:     Options{IncludeHeader: true, IncludeFooter: true, IsCourseByCourse: true},
	}
	data, err := g.Generate(input)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with %%PDF header")
	}
}

// openDocument gives the generator a document with one page so section
// renderers can be exercised directly.
func openDocument(t *testing.T, g *Generator) {
	t.Helper()
	g.doc = pagedoc.NewDocument(g.fonts, g.images)
	g.doc.LeftMargin = g.cfg.Layout.LeftMargin
	g.doc.RightMargin = g.cfg.Layout.RightMargin
	if err := g.doc.NewPage(); err != nil {
		t.Fatalf("NewPage: %v", err)
	}
}

func TestCourseLinesBreakAtBottomMargin(t *testing.T) {
	g := testGenerator(t)
	openDocument(t, g)

	subject := strings.TrimSpace(strings.Repeat("Advanced Topics in Comparative International Education ", 12))
	analysis := &CourseAnalysis{
		Sections: []CourseSection{
			{Name: "Year One", Courses: []CourseItem{
				{Subject: subject, USCredits: "3", USGrades: "A"},
			}},
		},
		TotalUSCredits: "30",
		CumulativeGPA:  "3.45",
	}

	// Start low enough that the wrapped subject cannot fit above the bottom
	// margin on the current page.
	y, err := g.drawCourseAnalysis(100, analysis)
	if err != nil {
		t.Fatalf("drawCourseAnalysis: %v", err)
	}
	if g.doc.PageCount() < 2 {
		t.Fatalf("overflowing course lines stayed on one page")
	}
	if floor := g.cfg.Layout.BottomMargin - g.cfg.Layout.LineHeight; y < floor {
		t.Fatalf("cursor finished at %v, below %v", y, floor)
	}
}

func TestGradeScaleTallerThanPageIsSliced(t *testing.T) {
	g := testGenerator(t)
	openDocument(t, g)

	scale := make([]GradeMapping, 60)
	for i := range scale {
		scale[i] = GradeMapping{
			OriginalGrade: fmt.Sprintf("%d", 100-i),
			USGrade:       "A",
			GPA:           "4.00",
			LetterGrade:   "A",
		}
	}

	y, err := g.drawCourseAnalysis(pagedoc.PageHeight-headerTopOffset, &CourseAnalysis{GradeScale: scale})
	if err != nil {
		t.Fatalf("drawCourseAnalysis: %v", err)
	}
	if g.doc.PageCount() != 3 {
		t.Fatalf("61 table rows laid out across %d pages, want 3", g.doc.PageCount())
	}
	if y < g.cfg.Layout.BottomMargin {
		t.Fatalf("cursor finished at %v, below the bottom margin", y)
	}
}

func TestFooterText(t *testing.T) {
	cases := []struct {
		caseNumber string
		name       string
		page       int
		total      int
		want       string
	}{
		{"12345", "Jane Doe", 2, 5, "TEC NO.: 12345 * Doe, Jane * Page 2 of 5"},
		{"12345", "Jane Marie Doe", 1, 1, "TEC NO.: 12345 * Doe, Jane * Page 1 of 1"},
		{"777", "Prince", 1, 2, "TEC NO.: 777 * Prince * Page 1 of 2"},
		{"777", "", 1, 2, "TEC NO.: 777 * Unknown * Page 1 of 2"},
	}
	for _, tc := range cases {
		if got := footerText(tc.caseNumber, tc.name, tc.page, tc.total); got != tc.want {
			t.Fatalf("footerText(%q, %q) = %q, want %q", tc.caseNumber, tc.name, got, tc.want)
		}
	}
}

func TestCredentialDetailsOmitsEmptyNotes(t *testing.T) {
	form := credential("c1")
	for _, d := range credentialDetails(form) {
		if d.label == "Notes:" {
			t.Fatalf("Notes row present for credential without notes")
		}
	}

	form.Notes = "Transcript issued in French."
	found := false
	for _, d := range credentialDetails(form) {
		if d.label == "Notes:" && d.value == form.Notes {
			found = true
		}
	}
	if !found {
		t.Fatalf("Notes row missing for credential with notes")
	}
}

func TestCredentialDetailsBilingualInstitution(t *testing.T) {
	form := credential("c1")
	form.InstitutionEnglishName = "University of Lyon"
	for _, d := range credentialDetails(form) {
		if d.label == "Institution:" {
			if d.value != "Université de Lyon (University of Lyon)" {
				t.Fatalf("institution value = %q", d.value)
			}
			return
		}
	}
	t.Fatalf("institution row missing")
}

func TestSplitEquivalency(t *testing.T) {
	value := "Bachelor's degree from a regionally-accredited institution in the United States"
	got := splitEquivalency(value)
	if len(got) != 2 {
		t.Fatalf("expected two parts, got %v", got)
	}
	if got[0] != "Bachelor's degree from a regionally-accredited institution" {
		t.Fatalf("first part = %q", got[0])
	}
	if got[1] != " in the United States" {
		t.Fatalf("second part = %q", got[1])
	}
	if splitEquivalency("Bachelor's degree") != nil {
		t.Fatalf("split without the phrase should return nil")
	}
}

func TestEvaluationTypeText(t *testing.T) {
	cases := map[string]string{
		"general":       "General Analysis",
		"cbc":           "Course-by-Course Analysis",
		"document":      "Document Analysis",
		"hybrid":        "Hybrid Analysis",
		"comprehensive": "Comprehensive Analysis",
		"unknown":       "General Analysis",
		"":              "General Analysis",
	}
	for in, want := range cases {
		if got := evaluationTypeText(in); got != want {
			t.Fatalf("evaluationTypeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOptionsAnalysisType(t *testing.T) {
	if got := (Options{}).analysisType(); got != "general" {
		t.Fatalf("zero options analysis type = %q", got)
	}
	if got := (Options{IsCourseByCourse: true}).analysisType(); got != "cbc" {
		t.Fatalf("course-by-course flag ignored: %q", got)
	}
	if got := (Options{AnalysisType: "hybrid", IsCourseByCourse: true}).analysisType(); got != "hybrid" {
		t.Fatalf("explicit analysis type not preferred: %q", got)
	}
}
