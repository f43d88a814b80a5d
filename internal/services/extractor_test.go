package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nikhilsahni/resume-radar/internal/apperrors"
)

// buildPDF assembles a minimal multi-page PDF, one Helvetica text page per
// entry. An empty entry produces a page with an empty content stream. Object
// offsets are recorded while writing so the xref table is always consistent.
func buildPDF(t *testing.T, pageTexts []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	var offsets []int
	writeObj := func(num int, body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	pageCount := len(pageTexts)
	fontObj := 3 + pageCount
	firstContentObj := fontObj + 1

	kids := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+i))
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), pageCount))

	for i := 0; i < pageCount; i++ {
		writeObj(3+i, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, firstContentObj+i))
	}

	writeObj(fontObj, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	for i, text := range pageTexts {
		stream := ""
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf (%s) Tj ET", text)
		}
		writeObj(firstContentObj+i, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOffset)

	return buf.Bytes()
}

// nonBlankLines collapses extractor output to its text-bearing lines so page
// block counting is independent of how a page's text is whitespace-padded.
func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	entry, err := writer.Create("word/document.xml")
	require.NoError(t, err)
	_, err = entry.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func wrapDocumentXML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body + `</w:body></w:document>`
}

func TestExtractTextUnsupportedFormat(t *testing.T) {
	extractor := NewExtractorService()

	for _, filename := range []string{"resume.txt", "resume.doc", "resume", "resume.pdf.exe"} {
		_, err := extractor.ExtractText(filename, []byte("irrelevant"))
		require.Error(t, err, filename)
		assert.True(t, apperrors.IsKind(err, apperrors.KindUnsupportedFormat), filename)
	}
}

func TestExtractTextDispatchIsCaseInsensitive(t *testing.T) {
	extractor := NewExtractorService()

	docx := buildDocx(t, wrapDocumentXML(`<w:p><w:r><w:t>Hello</w:t></w:r></w:p>`))
	text, err := extractor.ExtractText("Resume.DOCX", docx)
	require.NoError(t, err)
	assert.Equal(t, "Hello\n", text)
}

func TestExtractPDFSkipsPagesWithoutText(t *testing.T) {
	extractor := NewExtractorService()

	// Page 2 has an empty content stream; only two page blocks may survive.
	pdfBytes := buildPDF(t, []string{"Hello", "", "World"})

	text, err := extractor.ExtractText("resume.pdf", pdfBytes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "World"}, nonBlankLines(text))
}

func TestExtractPDFSkipsWhitespaceOnlyPages(t *testing.T) {
	extractor := NewExtractorService()

	pdfBytes := buildPDF(t, []string{" ", "Hello"})

	text, err := extractor.ExtractText("resume.pdf", pdfBytes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello"}, nonBlankLines(text))
}

func TestExtractCorruptPDF(t *testing.T) {
	extractor := NewExtractorService()

	_, err := extractor.ExtractText("resume.pdf", []byte("definitely not a pdf stream"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindCorruptDocument))
}

func TestExtractDOCXPreservesEmptyParagraphs(t *testing.T) {
	extractor := NewExtractorService()

	docx := buildDocx(t, wrapDocumentXML(
		`<w:p><w:r><w:t>Summary</w:t></w:r></w:p>`+
			`<w:p/>`+
			`<w:p><w:r><w:t>Skills: Python</w:t></w:r></w:p>`,
	))

	text, err := extractor.ExtractText("resume.docx", docx)
	require.NoError(t, err)
	assert.Equal(t, "Summary\n\nSkills: Python\n", text)
}

func TestExtractDOCXConcatenatesRunsAndTabs(t *testing.T) {
	extractor := NewExtractorService()

	docx := buildDocx(t, wrapDocumentXML(
		`<w:p><w:r><w:t>Work</w:t></w:r><w:r><w:tab/><w:t>History</w:t></w:r></w:p>`,
	))

	text, err := extractor.ExtractText("resume.docx", docx)
	require.NoError(t, err)
	assert.Equal(t, "Work\tHistory\n", text)
}

func TestExtractDOCXIgnoresNonParagraphText(t *testing.T) {
	extractor := NewExtractorService()

	// Text outside w:p elements (section properties etc.) must not leak in.
	docx := buildDocx(t, wrapDocumentXML(
		`<w:sectPr>stray</w:sectPr><w:p><w:r><w:t>Only this</w:t></w:r></w:p>`,
	))

	text, err := extractor.ExtractText("resume.docx", docx)
	require.NoError(t, err)
	assert.Equal(t, "Only this\n", text)
}

func TestExtractCorruptDOCX(t *testing.T) {
	extractor := NewExtractorService()

	t.Run("not a zip archive", func(t *testing.T) {
		_, err := extractor.ExtractText("resume.docx", []byte("not a zip"))
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindCorruptDocument))
	})

	t.Run("zip without document.xml", func(t *testing.T) {
		var buf bytes.Buffer
		writer := zip.NewWriter(&buf)
		entry, err := writer.Create("word/styles.xml")
		require.NoError(t, err)
		_, err = entry.Write([]byte("<w:styles/>"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		_, err = extractor.ExtractText("resume.docx", buf.Bytes())
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindCorruptDocument))
	})

	t.Run("malformed document.xml", func(t *testing.T) {
		docx := buildDocx(t, `<w:document><w:body><w:p>unclosed`)
		_, err := extractor.ExtractText("resume.docx", docx)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindCorruptDocument))
	})
}

func TestReadDocumentXMLLargeDocumentOrder(t *testing.T) {
	var body strings.Builder
	for _, line := range []string{"one", "two", "three"} {
		body.WriteString(`<w:p><w:r><w:t>` + line + `</w:t></w:r></w:p>`)
	}

	text, err := readDocumentXML(strings.NewReader(wrapDocumentXML(body.String())))
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nthree\n", text)
}
