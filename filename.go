package resume2pdf

import "strings"

// DefaultFilename is the download filename when nothing better is known.
const DefaultFilename = "resume.pdf"

// deriveFilename picks the artifact filename: an explicit request wins (with
// a .pdf suffix ensured), otherwise the document's personal name yields
// "<Name>_Resume.pdf" with whitespace collapsed to underscores, otherwise
// the default.
func deriveFilename(doc *ResumeDocument, explicit string) string {
	if name := strings.TrimSpace(explicit); name != "" {
		if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			name += ".pdf"
		}
		return name
	}
	if doc != nil {
		if name := strings.TrimSpace(doc.PersonalInfo.Name); name != "" {
			return strings.Join(strings.Fields(name), "_") + "_Resume.pdf"
		}
	}
	return DefaultFilename
}
