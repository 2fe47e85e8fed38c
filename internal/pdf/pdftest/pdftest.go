// Package pdftest builds tiny valid PDFs for tests, so the test suite does
// not need binary fixtures checked in.
package pdftest

import (
	"bytes"
	"fmt"
)

// Minimal returns an in-memory PDF with the given number of blank pages.
func Minimal(pages int) []byte {
	if pages < 1 {
		pages = 1
	}

	var body bytes.Buffer
	offsets := make([]int, 0, pages+3)

	body.WriteString("%PDF-1.4\n")

	add := func(obj string) {
		offsets = append(offsets, body.Len())
		body.WriteString(obj)
	}

	kids := ""
	for i := 0; i < pages; i++ {
		kids += fmt.Sprintf("%d 0 R ", 3+i)
	}

	add("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	add(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", kids, pages))
	for i := 0; i < pages; i++ {
		add(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] >>\nendobj\n", 3+i))
	}

	xrefStart := body.Len()
	fmt.Fprintf(&body, "xref\n0 %d\n", len(offsets)+1)
	body.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&body, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&body, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefStart)

	return body.Bytes()
}
