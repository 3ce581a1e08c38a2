package conversion

// ConversionRequest describes one file to convert. Fields are set once by the
// caller and never mutated.
type ConversionRequest struct {
	// SourcePath is the file to convert.
	SourcePath string

	// OutputDir overrides the converter's default output directory when set.
	OutputDir string

	// OutputName overrides the derived output base name (without extension)
	// when set. Only meaningful for single-file conversion.
	OutputName string
}

// ConvertedDocument is the in-memory form of one conversion result: the
// metadata block plus the Markdown body. It lives for a single call and is
// discarded after serialisation.
type ConvertedDocument struct {
	Metadata DocumentMetadata
	Body     string
}

// Result reports a successful single-file conversion.
type Result struct {
	SourcePath string
	OutputPath string
	Handler    string
	Strategy   string
}

// FileOutcome is one entry in a batch report.
type FileOutcome struct {
	SourcePath string
	OutputPath string
	Err        error
}

// BatchSummary aggregates a directory conversion run.
type BatchSummary struct {
	RunID      string
	Discovered int
	Converted  int
	Failed     int
	Skipped    int
	Outcomes   []FileOutcome
}
