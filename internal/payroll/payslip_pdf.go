package payroll

import (
	"bytes"
	"fmt"
	"strings"
)

// renderPayslipPDF writes the payslip as a one-page PDF without an external
// engine. The layout is a fixed Helvetica column starting near the top-left;
// the xref table is rebuilt from the object offsets so any PDF reader accepts
// the file.
func renderPayslipPDF(p *Payslip) ([]byte, error) {
	lines := []string{
		fmt.Sprintf("PAYSLIP %04d-%02d", p.Year, p.Month),
		"Employee: " + p.EmployeeID.String(),
		"Base salary: " + p.BaseSalary.StringFixed(2),
		"Overtime pay: " + p.OvertimePay.StringFixed(2),
		"Late deduction: -" + p.LateDeduction.StringFixed(2),
		"Early leave deduction: -" + p.EarlyLeaveDeduction.StringFixed(2),
		"Net salary: " + p.NetSalary.StringFixed(2),
		"Status: " + p.Status,
	}

	var text strings.Builder
	text.WriteString("BT\n/F1 12 Tf\n16 TL\n50 790 Td\n")
	for i, line := range lines {
		if i > 0 {
			text.WriteString("T*\n")
		}
		fmt.Fprintf(&text, "(%s) Tj\n", escapePDFText(line))
	}
	text.WriteString("ET")

	stream := text.String()

	var doc bytes.Buffer
	doc.WriteString("%PDF-1.4\n")

	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, doc.Len())
		fmt.Fprintf(&doc, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>")
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))

	xrefStart := doc.Len()
	fmt.Fprintf(&doc, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&doc, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&doc, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets)+1, xrefStart)

	return doc.Bytes(), nil
}

var pdfTextEscaper = strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)

func escapePDFText(v string) string {
	return pdfTextEscaper.Replace(v)
}
