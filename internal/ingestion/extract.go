// Package ingestion turns resume documents (plain text, HTML, PDF, DOCX) into
// cleaned UTF-8 text.
package ingestion

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// Supported formats.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

var (
	utf8BOM      = []byte{0xEF, 0xBB, 0xBF}
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
	blockElement = "p, div, li, tr, br, h1, h2, h3, h4, h5, h6, section, article, header, footer, ul, ol, table"
)

// DetectFormat picks a format from the file extension, sniffing the content
// when the extension is missing or unknown.
func DetectFormat(name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", ".md":
		return FormatText, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case "":
	default:
		return "", &UnsupportedFormatError{Name: name}
	}

	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return FormatPDF, nil
	}
	contentType := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(contentType, "text/html"):
		return FormatHTML, nil
	case strings.HasPrefix(contentType, "text/plain"):
		return FormatText, nil
	case strings.HasPrefix(contentType, "application/zip"):
		return FormatDOCX, nil
	}
	return "", &UnsupportedFormatError{Name: name}
}

// ExtractText decodes a document into cleaned text. name is only used for
// format detection and error messages.
func ExtractText(name string, data []byte) (string, error) {
	format, err := DetectFormat(name, data)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatText:
		text, err = extractPlain(data)
	case FormatHTML:
		text, err = extractHTML(data)
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDocx(data)
	}
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

// ReadDocument reads a file from disk and extracts its text.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return ExtractText(path, data)
}

func extractPlain(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", &DecodeError{Format: FormatText, Message: "content is not valid UTF-8"}
	}
	return string(data), nil
}

func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &DecodeError{Format: FormatHTML, Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript, template").Remove()
	doc.Find(blockElement).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}

func extractPDF(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = &DecodeError{Format: FormatPDF, Message: fmt.Sprintf("malformed PDF: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Format: FormatPDF, Message: "failed to open PDF", Cause: err}
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", &DecodeError{Format: FormatPDF, Message: "failed to read PDF text", Cause: err}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", &DecodeError{Format: FormatPDF, Message: "failed to read PDF text", Cause: err}
	}
	return buf.String(), nil
}

func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Format: FormatDOCX, Message: "not a zip archive", Cause: err}
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", &DecodeError{Format: FormatDOCX, Message: "failed to open document.xml", Cause: err}
		}
		docXML, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", &DecodeError{Format: FormatDOCX, Message: "failed to read document.xml", Cause: err}
		}
		break
	}
	if len(docXML) == 0 {
		return "", &DecodeError{Format: FormatDOCX, Message: "no word/document.xml in archive"}
	}

	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return xmlTag.ReplaceAllString(xml, ""), nil
}
