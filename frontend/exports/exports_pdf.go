package exports

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strconv"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"

	"teamdash/team"
)

// MemberCode is the code128 value printed on a member card.
func MemberCode(id int64) string {
	return fmt.Sprintf("U%08d", id)
}

// contactPayload is the vCard encoded in a member QR code.
func contactPayload(u team.User) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\nVERSION:3.0\n")
	b.WriteString("FN:" + u.Name + "\n")
	b.WriteString("EMAIL:" + u.Email + "\n")
	b.WriteString("TITLE:" + string(u.Role) + "\n")
	b.WriteString("END:VCARD")
	return b.String()
}

var rosterWidths = []float64{14, 52, 70, 34, 24}

// textTranslator maps UTF-8 to the cp1252 encoding of the core Helvetica font.
// Runes outside cp1252 come out as '.'.
func textTranslator(pdf *gofpdf.Fpdf) func(string) string {
	return pdf.UnicodeTranslatorFromDescriptor("")
}

func renderRosterPDF(users []team.User, printedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := textTranslator(pdf)
	pdf.SetTitle("Team Roster", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Team Roster", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d users - printed %s", len(users), printedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(243, 244, 246)
	for i, h := range []string{"ID", "Name", "Email", "Role", "Status"} {
		pdf.CellFormat(rosterWidths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	if len(users) == 0 {
		pdf.CellFormat(sumWidths(rosterWidths), 8, "No users found.", "1", 1, "C", false, 0, "")
	}
	for _, u := range users {
		cells := []string{strconv.FormatInt(u.ID, 10), u.Name, u.Email, string(u.Role), string(u.Status)}
		for i, c := range cells {
			pdf.CellFormat(rosterWidths[i], 7, fitText(pdf, tr(c), rosterWidths[i]-2), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func renderMemberCardPDF(u team.User, printedAt time.Time) ([]byte, error) {
	code := MemberCode(u.ID)
	barcodePNG, err := renderCode128PNG(code, 900, 200)
	if err != nil {
		return nil, err
	}
	qrPNG, err := renderQRPNG(contactPayload(u), 400)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A6", "")
	tr := textTranslator(pdf)
	pdf.SetTitle("Member Card "+code, false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	margin := 6.0
	pdf.SetLineWidth(0.35)
	pdf.Rect(margin, margin, pageW-2*margin, pageH-2*margin, "")

	textW := pageW - 2*margin - 46
	pdf.SetXY(margin+4, margin+4)
	name := tr(u.Name)
	nameFont := fitFontSizeForWidth(pdf, "Helvetica", "B", 22, 12, name, textW)
	pdf.SetFont("Helvetica", "B", nameFont)
	pdf.CellFormat(textW, 11, fitText(pdf, name, textW), "", 2, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(textW, 7, fitText(pdf, tr(u.Email), textW), "", 2, "L", false, 0, "")
	pdf.CellFormat(textW, 7, tr("Role: "+string(u.Role)), "", 2, "L", false, 0, "")
	pdf.CellFormat(textW, 7, tr("Status: "+string(u.Status)), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(textW, 6, "Printed: "+printedAt.Format("02/01/2006"), "", 2, "L", false, 0, "")

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	qrName := "member-qr-" + strconv.FormatInt(u.ID, 10)
	pdf.RegisterImageOptionsReader(qrName, opt, bytes.NewReader(qrPNG))
	pdf.ImageOptions(qrName, pageW-margin-42, margin+4, 38, 38, false, opt, 0, "")

	barName := "member-barcode-" + strconv.FormatInt(u.ID, 10)
	pdf.RegisterImageOptionsReader(barName, opt, bytes.NewReader(barcodePNG))
	barW := pageW - 2*margin - 20
	pdf.ImageOptions(barName, margin+10, pageH-margin-30, barW, 18, false, opt, 0, "")
	pdf.SetXY(margin, pageH-margin-11)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(pageW-2*margin, 6, code, "", 0, "C", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func sumWidths(ws []float64) float64 {
	total := 0.0
	for _, w := range ws {
		total += w
	}
	return total
}

// fitText truncates s with an ellipsis so it fits maxWidth in the current font.
// s must already be translated, one byte per glyph.
func fitText(pdf *gofpdf.Fpdf, s string, maxWidth float64) string {
	if pdf.GetStringWidth(s) <= maxWidth {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > maxWidth {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func fitFontSizeForWidth(pdf *gofpdf.Fpdf, family, style string, base, min float64, text string, maxWidth float64) float64 {
	if maxWidth <= 0 {
		return min
	}
	size := base
	pdf.SetFont(family, style, size)
	for size > min && pdf.GetStringWidth(text) > maxWidth {
		size -= 0.5
		pdf.SetFont(family, style, size)
	}
	return size
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	return scaleToPNG(code, width, height)
}

func renderQRPNG(content string, size int) ([]byte, error) {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}
	return scaleToPNG(code, size, size)
}

func scaleToPNG(code barcode.Barcode, width, height int) ([]byte, error) {
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, toNRGBA(scaled)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
