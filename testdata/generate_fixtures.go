//go:build ignore

// This program generates test fixture files for stampkit.
package main

import (
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/klytics/stampkit/internal/formats/docx"
)

func main() {
	if err := generateDocx(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.docx: %v\n", err)
		os.Exit(1)
	}

	if err := generateXlsx(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.xlsx: %v\n", err)
		os.Exit(1)
	}

	if err := generatePdf(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.pdf: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Test fixtures generated successfully.")
}

func generateDocx() error {
	doc := &docx.Document{
		Paragraphs: []string{
			"stampkit Sample Document",
			"This is a sample document for testing the stampkit CLI tool.",
			"It contains several paragraphs so watermarked output can be compared against the original body text.",
			"Quarterly figures and internal notes would normally live here.",
		},
	}

	data, err := docx.WriteDocument(doc)
	if err != nil {
		return err
	}
	return os.WriteFile("sample.docx", data, 0644)
}

func generateXlsx() error {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Quarter", "Revenue", "Costs"},
		{"Q1", 120500, 80200},
		{"Q2", 135800, 85100},
		{"Q3", 128900, 83400},
		{"Q4", 150200, 90800},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet("Notes"); err != nil {
		return err
	}
	if err := f.SetCellValue("Notes", "A1", "Internal planning notes"); err != nil {
		return err
	}

	return f.SaveAs("sample.xlsx")
}

func generatePdf() error {
	doc := gofpdf.New("P", "mm", "A4", "")

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(40, 10, "stampkit Sample Document")
	doc.Ln(14)
	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(0, 6, "This is a sample PDF for testing the stampkit CLI tool. Watermarked copies of this file should keep this body text readable underneath the stamp.", "", "L", false)

	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(40, 10, "Second page content")

	return doc.OutputFileAndClose("sample.pdf")
}
