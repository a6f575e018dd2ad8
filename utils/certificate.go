package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// ErrEmptyRecipient is returned when a certificate is rendered without a name.
var ErrEmptyRecipient = errors.New("recipient name is required")

// RenderCertificate lays out the fixed single-page completion document and
// returns the PDF bytes plus a unique download filename. It is a pure
// rendering path: no storage record is read or written here.
func RenderCertificate(fullName, courseTitle, coachName string) ([]byte, string, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, "", ErrEmptyRecipient
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of Completion", false)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	// Border frame
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(26, 60, 110)
	pdf.Rect(10, 10, pageW-20, pageH-20, "D")
	pdf.SetLineWidth(0.4)
	pdf.SetDrawColor(215, 181, 109)
	pdf.Rect(13, 13, pageW-26, pageH-26, "D")

	pdf.SetY(40)
	pdf.SetFont("Times", "B", 34)
	pdf.SetTextColor(26, 60, 110)
	pdf.CellFormat(0, 16, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8, "This certificate is proudly presented to", "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Times", "BI", 28)
	pdf.SetTextColor(215, 148, 45)
	pdf.CellFormat(0, 14, fullName, "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8, "for successfully completing the course", "", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Times", "B", 20)
	pdf.SetTextColor(26, 60, 110)
	pdf.CellFormat(0, 12, courseTitle, "", 1, "C", false, 0, "")

	if coachName != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 13)
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(0, 8, fmt.Sprintf("Instructor: %s", coachName), "", 1, "C", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 12)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 8, "Wishing you continued success on your learning journey.", "", 1, "C", false, 0, "")

	pdf.SetY(pageH - 35)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 6, time.Now().Format("January 2, 2006"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("certificate_%s.pdf", uuid.New().String())
	return buf.Bytes(), filename, nil
}
