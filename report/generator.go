package report

import (
	"fmt"
	"image/color"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/the-evaluation-company/eval-worker/pagedoc"
	"github.com/the-evaluation-company/eval-worker/rasset"
	"github.com/the-evaluation-company/eval-worker/textflow"
	"github.com/the-evaluation-company/eval-worker/typeface"
)

// Vertical layout constants of the report, in points. Page breaks trigger
// when the cursor would cross a floor: credentials reserve a 7-line
// look-ahead, course rows and policy lines break reactively.
const (
	headerTopOffset      = 120.0
	lookaheadLines       = 7
	credentialBreakFloor = 100.0
	commentsBreakFloor   = 200.0
	credentialGap        = 40.0
	credentialIndent     = 50.0
	headerValueGap       = 20.0
	valueGap             = 25.0
	rightValueMargin     = 50.0
	longValueRunes       = 80
	commentsLineStep     = 11.0
	policyExtraTopGap    = 20.0
	footerBaselineY      = 30.0
	signatureWidth       = 180.0
	signatureHeight      = 40.0
	gradeTableRowHeight  = 16.0
	gradeTableFontSize   = 8.0
	courseSubjectWidth   = 340.0
	courseCreditsX       = 430.0
	courseGradesX        = 500.0
)

var (
	black           = color.Color(color.Black)
	tableHeaderFill = color.Color(color.RGBA{R: 240, G: 240, B: 240, A: 255})

	gradeTableColWidths = []float64{120, 100, 80, 100}
)

var evaluationTypeLabels = map[string]string{
	"general":       "General Analysis",
	"cbc":           "Course-by-Course Analysis",
	"document":      "Document Analysis",
	"hybrid":        "Hybrid Analysis",
	"comprehensive": "Comprehensive Analysis",
}

// Generator lays out one evaluation report. It is single-use: a second
// Generate call returns an error.
type Generator struct {
	cfg    Config
	fonts  *typeface.Provider
	images *rasset.Provider
	doc    *pagedoc.Document

	// Now supplies the header date and the record retention date.
	Now func() time.Time

	used bool
}

// NewGenerator creates a generator drawing with the given providers.
func NewGenerator(cfg Config, fonts *typeface.Provider, images *rasset.Provider) *Generator {
	return &Generator{cfg: cfg, fonts: fonts, images: images, Now: time.Now}
}

// Generate renders input into a complete PDF document.
func (g *Generator) Generate(input RenderInput) ([]byte, error) {
	doc, err := g.renderDocument(input)
	if err != nil {
		return nil, err
	}
	return doc.Finalize()
}

// renderDocument lays out every page and stamps the footers, leaving the
// document unfinalized so callers can inspect it.
func (g *Generator) renderDocument(input RenderInput) (*pagedoc.Document, error) {
	if g.used {
		return nil, errors.New("report: generator is single-use per document")
	}
	g.used = true

	g.doc = pagedoc.NewDocument(g.fonts, g.images)
	g.doc.Title = input.Options.title()
	g.doc.LeftMargin = g.cfg.Layout.LeftMargin
	g.doc.RightMargin = g.cfg.Layout.RightMargin

	if err := g.doc.NewPage(); err != nil {
		return nil, err
	}
	y := pagedoc.PageHeight - headerTopOffset

	var err error
	if input.Options.IncludeHeader {
		y, err = g.drawHeader(y, input.CaseInfo, input.StudentName, input.Options.analysisType())
		if err != nil {
			return nil, err
		}
	}

	if len(input.Credentials) > 0 {
		y, err = g.drawCredentialsSummary(y, input.Credentials[0], input.Options.TopCredentialText)
		if err != nil {
			return nil, err
		}
	}

	for i := range input.Credentials {
		if y-lookaheadLines*g.cfg.Layout.LineHeight < credentialBreakFloor {
			log.Debugf("credential %d of %d moved to page %d", i+1, len(input.Credentials), g.doc.PageCount()+1)
			if y, err = g.newPage(); err != nil {
				return nil, err
			}
		}
		y, err = g.drawCredential(y, &input.Credentials[i], i+1, len(input.Credentials))
		if err != nil {
			return nil, err
		}
		if i < len(input.Credentials)-1 {
			y -= credentialGap
		}
	}

	if len(input.Credentials) > 2 || y < commentsBreakFloor {
		if y, err = g.newPage(); err != nil {
			return nil, err
		}
	} else {
		y -= g.cfg.Layout.LineHeight * g.cfg.Spacing.SectionBreak
	}
	if _, err = g.drawComments(y); err != nil {
		return nil, err
	}

	// The policy appendix always starts on a fresh page.
	if y, err = g.newPage(); err != nil {
		return nil, err
	}
	if _, err = g.drawPolicyStatements(y); err != nil {
		return nil, err
	}

	if input.Options.IncludeFooter {
		if err = g.stampFooters(input.CaseInfo.CaseNumber, input.StudentName); err != nil {
			return nil, err
		}
	}
	return g.doc, nil
}

func (g *Generator) newPage() (float64, error) {
	if err := g.doc.NewPage(); err != nil {
		return 0, err
	}
	return pagedoc.PageHeight - g.cfg.Layout.TopMargin, nil
}

// text normalizes and draws a single line on the current page.
func (g *Generator) text(s string, x, y, size float64, style typeface.Style) error {
	return g.doc.DrawText(textflow.Normalize(s), x, y, size, style, black)
}

func (g *Generator) drawHeader(y float64, caseInfo CaseInfo, studentName, analysisType string) (float64, error) {
	name := fallback(caseInfo.NameOnApplication, studentName)
	rows := []struct {
		label string
		value string
		bold  bool
	}{
		{"Date:", g.Now().Format("January 02, 2006"), false},
		{"SpanTran Number:", caseInfo.CaseNumber, true},
		{"Name on Application:", name, true},
		{"Name on Documentation:", name, true},
		{"Date of Birth:", fallback(caseInfo.DateOfBirth, "Not Available"), false},
		{"Type of Evaluation:", evaluationTypeText(analysisType), false},
	}

	size := g.cfg.Fonts.NormalSize
	maxLabel := 0.0
	for _, r := range rows {
		if w := g.fonts.Measure(r.label, typeface.Bold, size); w > maxLabel {
			maxLabel = w
		}
	}
	labelX := g.cfg.Layout.LeftMargin
	valueX := labelX + maxLabel + headerValueGap

	for _, r := range rows {
		if err := g.text(r.label, labelX, y, size, typeface.Bold); err != nil {
			return y, err
		}
		style := typeface.Regular
		if r.bold {
			style = typeface.Bold
		}
		if err := g.text(r.value, valueX, y, size, style); err != nil {
			return y, err
		}
		y -= g.cfg.Layout.LineHeight
	}
	return y, nil
}

// drawCredentialsSummary draws the "CREDENTIALS SUMMARY" header and the boxed
// recommended equivalency of the first credential. The box grows with the
// wrapped text; override replaces the text entirely when set.
func (g *Generator) drawCredentialsSummary(y float64, first CredentialGroup, override string) (float64, error) {
	left := g.cfg.Layout.LeftMargin
	size := g.cfg.Fonts.EquivalencySize

	y -= g.cfg.Layout.LineHeight
	if err := g.text("CREDENTIALS SUMMARY", left, y, g.cfg.Fonts.NormalSize, typeface.Bold); err != nil {
		return y, err
	}
	y -= 20

	text := override
	if text == "" {
		equivalency := fallback(first.USEquivalency, first.Program, first.ProgramOfStudyEnglishName)
		text = "Recommended U.S. Equivalency: " + equivalency
	}

	available := g.doc.ContentWidth()
	inset := credentialIndent - left
	lineSpacing := size * 1.2
	lines := textflow.Wrap(g.fonts, text, typeface.Bold, size, available-2*inset)
	boxHeight := float64(len(lines))*lineSpacing + 16

	if err := g.doc.DrawRect(left, y-boxHeight+lineSpacing-15, available, boxHeight, black, 1, nil); err != nil {
		return y, err
	}

	lineY := y - 15
	for _, line := range lines {
		if err := g.text(line, credentialIndent, lineY, size, typeface.Bold); err != nil {
			return y, err
		}
		lineY -= lineSpacing
	}

	y = y - boxHeight + lineSpacing
	y -= 50
	return y, nil
}

type labeledValue struct {
	label string
	value string
}

// credentialDetails lists the label/value rows of one credential block.
// Empty values are kept here and skipped while drawing. The institution line
// carries the English name alongside the original when both are known.
func credentialDetails(form CredentialGroup) []labeledValue {
	institution := form.Institution
	if form.InstitutionEnglishName != "" && form.InstitutionEnglishName != form.Institution {
		institution = fallback(form.Institution, form.InstitutionEnglishName)
		if form.Institution != "" {
			institution = form.Institution + " (" + form.InstitutionEnglishName + ")"
		}
	}
	details := []labeledValue{
		{"Country of Study:", form.Country},
		{"Institution:", institution},
		{"Foreign Credential:", fallback(form.Program, form.ProgramOfStudyEnglishName)},
		{"Length of Program:", form.ProgramLength},
		{"Recommended U.S. Equivalency:", form.USEquivalency},
	}
	if form.Notes != "" {
		details = append(details, labeledValue{"Notes:", form.Notes})
	}
	return details
}

// splitEquivalency splits an equivalency statement after the accreditation
// phrase so the degree part and the institution part land on separate lines.
// It returns nil when the phrase does not occur exactly once.
func splitEquivalency(value string) []string {
	const phrase = "regionally-accredited institution"
	if strings.Count(value, phrase) != 1 {
		return nil
	}
	i := strings.Index(value, phrase)
	return []string{value[:i] + phrase, value[i+len(phrase):]}
}

func (g *Generator) drawCredential(y float64, form *CredentialGroup, index, total int) (float64, error) {
	lineHeight := g.cfg.Layout.LineHeight
	size := g.cfg.Fonts.NormalSize

	y -= lineHeight
	if err := g.text(fmt.Sprintf("CREDENTIAL %d of %d", index, total), credentialIndent, y, size, typeface.Bold); err != nil {
		return y, err
	}
	y -= 20

	details := credentialDetails(*form)
	maxLabel := 0.0
	for _, d := range details {
		if w := g.fonts.Measure(d.label, typeface.Bold, size); w > maxLabel {
			maxLabel = w
		}
	}
	labelX := float64(credentialIndent)
	valueX := labelX + maxLabel + valueGap
	available := pagedoc.PageWidth - valueX - rightValueMargin

	for _, d := range details {
		if d.value == "" {
			continue
		}
		isEquivalency := d.label == "Recommended U.S. Equivalency:"
		if err := g.text(d.label, labelX, y, size, typeface.Bold); err != nil {
			return y, err
		}

		valueStyle := typeface.Regular
		if isEquivalency {
			valueStyle = typeface.Bold
		}

		if utf8.RuneCountInString(d.value) > longValueRunes || isEquivalency {
			var lines []string
			if isEquivalency {
				if lines = splitEquivalency(d.value); lines == nil {
					lines = textflow.Wrap(g.fonts, d.value, typeface.Bold, size, available)
				}
			} else {
				lines = textflow.Wrap(g.fonts, d.value, typeface.Regular, size, available)
			}
			if err := g.text(lines[0], valueX, y, size, valueStyle); err != nil {
				return y, err
			}
			for _, line := range lines[1:] {
				y -= lineHeight
				if err := g.text(line, valueX, y, size, valueStyle); err != nil {
					return y, err
				}
			}
			y -= lineHeight // extra gap after a wrapped value
		} else {
			if err := g.text(d.value, valueX, y, size, valueStyle); err != nil {
				return y, err
			}
		}
		y -= lineHeight
	}

	if form.HasCourses() {
		return g.drawCourseAnalysis(y, form.Courses)
	}
	return y, nil
}

// drawCourseAnalysis renders the grade scale table, the course sections and
// the credit/GPA summary of a course-by-course credential.
func (g *Generator) drawCourseAnalysis(y float64, analysis *CourseAnalysis) (float64, error) {
	lineHeight := g.cfg.Layout.LineHeight
	size := g.cfg.Fonts.NormalSize
	bottom := g.cfg.Layout.BottomMargin

	if len(analysis.GradeScale) > 0 {
		scale := append([]GradeMapping(nil), analysis.GradeScale...)
		SortGradeMappings(scale)

		header := []string{"Original Grade", "US Grade", "GPA", "Letter Grade"}
		rows := make([][]string, 0, len(scale))
		for _, m := range scale {
			rows = append(rows, []string{m.OriginalGrade, m.USGrade, m.GPA, m.LetterGrade})
		}

		tableHeight := float64(len(rows)+1) * gradeTableRowHeight
		y -= lineHeight
		if y-tableHeight-20 < bottom {
			var err error
			if y, err = g.newPage(); err != nil {
				return y, err
			}
		}
		if err := g.text("GRADE SCALE", credentialIndent, y, size, typeface.Bold); err != nil {
			return y, err
		}
		y -= 18

		// A scale taller than the remaining page is emitted in slices, each
		// repeating the header row.
		for start := 0; start < len(rows); {
			capacity := int((y-bottom)/gradeTableRowHeight) - 1
			if capacity < 1 {
				var err error
				if y, err = g.newPage(); err != nil {
					return y, err
				}
				continue
			}
			end := start + capacity
			if end > len(rows) {
				end = len(rows)
			}
			slice := append([][]string{header}, rows[start:end]...)
			var err error
			y, err = g.doc.DrawTable(credentialIndent, y, slice, gradeTableColWidths, gradeTableRowHeight, gradeTableFontSize, black, 1, tableHeaderFill)
			if err != nil {
				return y, err
			}
			start = end
		}
		y -= 16
	}

	for _, section := range analysis.Sections {
		if y < bottom+2*lineHeight {
			var err error
			if y, err = g.newPage(); err != nil {
				return y, err
			}
		}
		if err := g.text(section.Name, credentialIndent, y, size, typeface.Bold); err != nil {
			return y, err
		}
		y -= 14

		for _, course := range section.Courses {
			if y < bottom+lineHeight {
				var err error
				if y, err = g.newPage(); err != nil {
					return y, err
				}
			}
			lines := textflow.Wrap(g.fonts, course.Subject, typeface.Regular, size, courseSubjectWidth)
			if err := g.text(lines[0], credentialIndent+10, y, size, typeface.Regular); err != nil {
				return y, err
			}
			if err := g.text(course.USCredits, courseCreditsX, y, size, typeface.Regular); err != nil {
				return y, err
			}
			if err := g.text(course.USGrades, courseGradesX, y, size, typeface.Regular); err != nil {
				return y, err
			}
			for _, line := range lines[1:] {
				y -= lineHeight
				if y < bottom {
					var err error
					if y, err = g.newPage(); err != nil {
						return y, err
					}
				}
				if err := g.text(line, credentialIndent+10, y, size, typeface.Regular); err != nil {
					return y, err
				}
			}
			y -= lineHeight
		}
		y -= 6
	}

	if analysis.TotalUSCredits != "" {
		if y < bottom {
			var err error
			if y, err = g.newPage(); err != nil {
				return y, err
			}
		}
		if err := g.text("Total U.S. Semester Credits: "+analysis.TotalUSCredits, credentialIndent, y, size, typeface.Bold); err != nil {
			return y, err
		}
		y -= lineHeight
	}
	if analysis.CumulativeGPA != "" {
		if y < bottom {
			var err error
			if y, err = g.newPage(); err != nil {
				return y, err
			}
		}
		if err := g.text("Cumulative GPA: "+analysis.CumulativeGPA, credentialIndent, y, size, typeface.Bold); err != nil {
			return y, err
		}
		y -= lineHeight
	}
	return y, nil
}

// drawComments renders the NACES boilerplate, the record retention line, the
// signature block when the asset is available, and the issuing office lines.
func (g *Generator) drawComments(y float64) (float64, error) {
	left := g.cfg.Layout.LeftMargin
	size := g.cfg.Fonts.CommentsSize

	if err := g.text("Comments:", left, y, g.cfg.Fonts.NormalSize, typeface.Bold); err != nil {
		return y, err
	}
	y -= 18

	available := g.doc.ContentWidth()
	for i, paragraph := range commentsParagraphs {
		for _, line := range textflow.Wrap(g.fonts, paragraph, typeface.Regular, size, available) {
			if err := g.text(line, left, y, size, typeface.Regular); err != nil {
				return y, err
			}
			y -= commentsLineStep
		}
		if i < len(commentsParagraphs)-1 {
			y -= commentsLineStep // blank line between paragraphs
		}
	}

	y -= 24
	retention := fmt.Sprintf(retentionLineFormat, g.Now().AddDate(5, 0, 0).Format("January 02, 2006"))
	if err := g.text(retention, left, y, size, typeface.Bold); err != nil {
		return y, err
	}
	y -= 18

	if sig := g.images.Signature(); sig != nil {
		b := sig.Bounds()
		w, _, offX, offY := rasset.FitRect(float64(b.Dx()), float64(b.Dy()), signatureWidth, signatureHeight)
		y -= signatureHeight
		if err := g.doc.DrawImage(sig, left+offX, y+offY, w); err != nil {
			return y, err
		}
		y -= g.cfg.Layout.LineHeight
	}

	if err := g.text(preparedByLine, left, y, size, typeface.Regular); err != nil {
		return y, err
	}
	y -= commentsLineStep
	if err := g.text(issuingOfficeLine, left, y, size, typeface.Bold); err != nil {
		return y, err
	}
	return y, nil
}

// drawPolicyStatements renders the policy appendix, breaking to a new page
// whenever the cursor crosses the bottom margin mid-paragraph.
func (g *Generator) drawPolicyStatements(y float64) (float64, error) {
	available := g.doc.ContentWidth()
	for _, paragraph := range policyParagraphs {
		size, style := g.cfg.Fonts.PolicyBodySize, typeface.Serif
		if policyHeaders[paragraph] {
			size, style = g.cfg.Fonts.PolicyHeadSize, typeface.SerifBold
		}
		for _, line := range textflow.Wrap(g.fonts, paragraph, style, size, available) {
			if y < g.cfg.Layout.BottomMargin {
				if err := g.doc.NewPage(); err != nil {
					return y, err
				}
				y = pagedoc.PageHeight - g.cfg.Layout.TopMargin - policyExtraTopGap
			}
			if err := g.text(line, g.cfg.Layout.LeftMargin, y, size, style); err != nil {
				return y, err
			}
			y -= size + 2
		}
		y -= 10
	}
	return y, nil
}

// stampFooters writes the centered page numbering line onto every page once
// the total page count is known.
func (g *Generator) stampFooters(caseNumber, studentName string) error {
	total := g.doc.PageCount()
	size := g.cfg.Fonts.NormalSize
	for i := 0; i < total; i++ {
		text := footerText(caseNumber, studentName, i+1, total)
		width := g.fonts.Measure(text, typeface.Bold, size)
		x := (pagedoc.PageWidth - width) / 2
		if err := g.doc.DrawTextOnPage(i, text, x, footerBaselineY, size, typeface.Bold, black); err != nil {
			return err
		}
	}
	return nil
}

// footerText formats the page numbering line. Names render as "Last, First";
// single-token names are used verbatim and a missing name reads "Unknown".
func footerText(caseNumber, studentName string, pageNum, total int) string {
	display := "Unknown"
	if parts := strings.Fields(studentName); len(parts) >= 2 {
		display = parts[len(parts)-1] + ", " + parts[0]
	} else if len(parts) == 1 {
		display = parts[0]
	}
	return fmt.Sprintf("TEC NO.: %s * %s * Page %d of %d", caseNumber, display, pageNum, total)
}

func evaluationTypeText(analysisType string) string {
	if label, ok := evaluationTypeLabels[analysisType]; ok {
		return label
	}
	return "General Analysis"
}

// fallback returns the first non-empty value.
func fallback(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
