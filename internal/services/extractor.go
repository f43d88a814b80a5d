package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"nikhilsahni/resume-radar/internal/apperrors"
)

// ExtractorService turns an uploaded binary document into plain text. Dispatch
// is purely by filename suffix; the bytes are never written to disk.
type ExtractorService interface {
	ExtractText(filename string, content []byte) (string, error)
}

type extractorService struct{}

func NewExtractorService() ExtractorService {
	return &extractorService{}
}

// ExtractText implements ExtractorService.
func (e *extractorService) ExtractText(filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return e.extractPDF(content)
	case ".docx":
		return e.extractDOCX(content)
	default:
		return "", apperrors.New(
			apperrors.KindUnsupportedFormat,
			"Unsupported file format. Please upload PDF or DOCX.",
		)
	}
}

func (e *extractorService) extractPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", apperrors.Wrap(
			apperrors.KindCorruptDocument,
			"Failed to read PDF file. The document may be corrupt or password-protected.",
			err,
		)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages with no extractable text are skipped, not fatal.
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

// extractDOCX walks word/document.xml directly. Every paragraph contributes a
// trailing newline, including empty ones: the blank lines carry the visual
// spacing the content validators' word-count heuristics rely on.
func (e *extractorService) extractDOCX(content []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", apperrors.Wrap(
			apperrors.KindCorruptDocument,
			"Failed to read DOCX file. The document may be corrupt.",
			err,
		)
	}

	var docFile *zip.File
	for _, f := range zipReader.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", apperrors.New(
			apperrors.KindCorruptDocument,
			"Failed to read DOCX file. The document may be corrupt.",
		)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", apperrors.Wrap(
			apperrors.KindCorruptDocument,
			"Failed to read DOCX file. The document may be corrupt.",
			err,
		)
	}
	defer rc.Close()

	text, err := readDocumentXML(rc)
	if err != nil {
		return "", apperrors.Wrap(
			apperrors.KindCorruptDocument,
			"Failed to read DOCX file. The document may be corrupt.",
			err,
		)
	}

	return text, nil
}

func readDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var textBuilder strings.Builder
	var paragraph strings.Builder
	var inParagraph bool
	var inText bool

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				paragraph.Reset()
			case "t":
				inText = inParagraph
			case "tab":
				if inParagraph {
					paragraph.WriteString("\t")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inParagraph {
					textBuilder.WriteString(paragraph.String())
					textBuilder.WriteString("\n")
					inParagraph = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}

	return textBuilder.String(), nil
}
