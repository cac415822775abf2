// Package report renders credential evaluation reports as multi-page PDF
// documents.
package report

// CaseInfo carries case metadata shown in the header and footer. All fields
// are optional; empty values render as omitted or fallback lines.
type CaseInfo struct {
	CaseNumber         string
	NameOnApplication  string
	DateOfBirth        string
	VerificationStatus string
}

// Document references a source document attached to a credential group. It is
// carried through for completeness and not used by the layout.
type Document struct {
	Name string
	URL  string
}

// CredentialGroup describes one evaluated credential.
type CredentialGroup struct {
	ID                        string
	Country                   string
	Institution               string
	Program                   string
	USEquivalency             string
	ProgramLength             string
	AwardDate                 string
	DateOfAttendance          string
	ProgramOfStudy            string
	ProgramOfStudyEnglishName string
	InstitutionEnglishName    string
	EnglishCredential         string
	Notes                     string
	CourseworkCompletedDate   string
	Documents                 []Document

	// Courses is set for course-by-course evaluations; nil means a plain
	// credential.
	Courses *CourseAnalysis
}

// HasCourses reports whether this group carries a course-by-course analysis.
func (g *CredentialGroup) HasCourses() bool {
	return g.Courses != nil
}

// CourseAnalysis is the course-by-course extension of a credential group.
type CourseAnalysis struct {
	GradeScale     []GradeMapping
	Sections       []CourseSection
	TotalUSCredits string
	CumulativeGPA  string
}

// CourseSection groups courses under a named heading, typically an academic
// year or term.
type CourseSection struct {
	Name    string
	Courses []CourseItem
}

// CourseItem is a single course line in a section.
type CourseItem struct {
	Subject   string
	USCredits string
	USGrades  string
}

// GradeMapping is one row of a grade scale table.
type GradeMapping struct {
	OriginalGrade string
	USGrade       string
	GPA           string
	LetterGrade   string
}

// Options controls optional report surfaces.
type Options struct {
	// Title is written into the PDF metadata; empty means
	// "Credential Evaluation".
	Title string
	// IncludeHeader controls the case info block on the first page.
	IncludeHeader bool
	// IncludeFooter controls the page numbering footer on every page.
	IncludeFooter bool
	// AnalysisType selects the evaluation type label: general, cbc,
	// document, hybrid or comprehensive.
	AnalysisType string
	// TopCredentialText overrides the credentials summary box text.
	TopCredentialText string
	// IsCourseByCourse forces the course-by-course label when AnalysisType
	// is unset.
	IsCourseByCourse bool
}

// DefaultOptions returns the options used for a standard evaluation report.
func DefaultOptions() Options {
	return Options{
		Title:         "Credential Evaluation",
		IncludeHeader: true,
		IncludeFooter: true,
	}
}

func (o Options) analysisType() string {
	if o.AnalysisType != "" {
		return o.AnalysisType
	}
	if o.IsCourseByCourse {
		return "cbc"
	}
	return "general"
}

func (o Options) title() string {
	if o.Title != "" {
		return o.Title
	}
	return "Credential Evaluation"
}

// RenderInput is the complete input for one report.
type RenderInput struct {
	CaseInfo    CaseInfo
	StudentName string
	Credentials []CredentialGroup
	Options     Options
}
