package report

// FontConfig holds the point sizes used across the report.
type FontConfig struct {
	NormalSize      float64 // labels, values, headers, course lines
	EquivalencySize float64 // credentials summary box
	CommentsSize    float64 // comments section body
	PolicyBodySize  float64 // policy appendix body (serif)
	PolicyHeadSize  float64 // policy appendix headers (serif bold)
}

// LayoutConfig holds the page margins and the base line height, in points.
type LayoutConfig struct {
	LeftMargin        float64
	TopMargin         float64
	RightMargin       float64
	BottomMargin      float64
	LineHeight        float64
	HorizontalPadding float64
	VerticalPadding   float64
	StudentInfoMargin float64
}

// SpacingConfig holds the vertical break scale, in line heights. The standard
// report flow reads only SectionBreak; the finer steps are part of the pinned
// scale for layout tuning.
type SpacingConfig struct {
	SectionBreak   float64
	ParagraphBreak float64
	LineBreak      float64
	ReducedBreak   float64
}

// Config groups all layout constants for the report generator.
type Config struct {
	Fonts   FontConfig
	Layout  LayoutConfig
	Spacing SpacingConfig
}

// DefaultConfig returns the standard evaluation report layout.
func DefaultConfig() Config {
	return Config{
		Fonts: FontConfig{
			NormalSize:      9,
			EquivalencySize: 12,
			CommentsSize:    10,
			PolicyBodySize:  8,
			PolicyHeadSize:  9,
		},
		Layout: LayoutConfig{
			LeftMargin:        35,
			TopMargin:         124,
			RightMargin:       35,
			BottomMargin:      50,
			LineHeight:        12,
			HorizontalPadding: 15,
			VerticalPadding:   8,
			StudentInfoMargin: 20,
		},
		Spacing: SpacingConfig{
			SectionBreak:   3.0,
			ParagraphBreak: 1.5,
			LineBreak:      1.0,
			ReducedBreak:   0.8,
		},
	}
}
