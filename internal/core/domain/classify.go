package domain

// FileKind is the closed classification driving content-match dispatch.
// It is computed once per file and matched exhaustively.
type FileKind int

const (
	// KindPlainText files are matched line by line.
	KindPlainText FileKind = iota

	// KindPDF files are matched against extracted text.
	KindPDF

	// KindUnsupported files are skipped for content search but remain
	// eligible for filename search.
	KindUnsupported
)

// String returns the kind name for diagnostics.
func (k FileKind) String() string {
	switch k {
	case KindPlainText:
		return "plaintext"
	case KindPDF:
		return "pdf"
	default:
		return "unsupported"
	}
}
