package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"net/http"

	"boqportal/models"
	"boqportal/repository"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// addLabel draws text at the given baseline position.
func addLabel(img *image.RGBA, x, y int, label string, bold bool) {
	col := color.RGBA{0, 0, 0, 255}
	face := inconsolata.Regular8x16
	if bold {
		col = color.RGBA{30, 30, 30, 255}
		face = inconsolata.Bold8x16
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(label)
}

type performaQRPayload struct {
	PerformaID  int    `json:"performa_id"`
	Reference   string `json:"reference"`
	ProjectID   int    `json:"project_id"`
	VendorID    int    `json:"vendor_id"`
	Category    string `json:"category"`
	TotalAmount string `json:"total_amount"`
	Status      string `json:"status"`
}

// renderPerformaReceipt returns a JPEG with the QR code on top and a short summary below.
func renderPerformaReceipt(p *models.PerformaGorm, projectName string) ([]byte, error) {
	payload, err := json.Marshal(performaQRPayload{
		PerformaID:  p.ID,
		Reference:   p.Reference,
		ProjectID:   p.ProjectID,
		VendorID:    p.VendorID,
		Category:    p.EffectiveCategory(),
		TotalAmount: p.TotalAmount,
		Status:      p.Status,
	})
	if err != nil {
		return nil, err
	}

	qr, err := qrcode.New(string(payload), qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qrImg := qr.Image(512)

	qrSize := qrImg.Bounds().Dy()
	padding := 30
	lineHeight := 28
	lines := []struct{ label, value string }{
		{"Reference:", p.Reference},
		{"Project:", truncate(projectName, 40)},
		{"Vendor:", truncate(p.VendorName, 40)},
		{"Category:", truncate(p.EffectiveCategory(), 40)},
		{"Total:", truncate(p.TotalAmount+" "+p.Currency, 40)},
		{"Status:", displayStatus(p.Status)},
	}
	totalHeight := qrSize + 2*padding + len(lines)*lineHeight

	img := image.NewRGBA(image.Rect(0, 0, qrSize, totalHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, qrSize, qrSize), qrImg, image.Point{}, draw.Src)

	separatorY := qrSize + padding/2
	for x := 0; x < qrSize; x++ {
		img.Set(x, separatorY, color.RGBA{200, 200, 200, 255})
	}

	startY := qrSize + padding + lineHeight/2
	xPos := 20
	for i, line := range lines {
		addLabel(img, xPos, startY+i*lineHeight, line.label, true)
		addLabel(img, xPos+100, startY+i*lineHeight, line.value, false)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PerformaQRCode godoc
// @Summary      Performa receipt QR code
// @Tags         performas
// @Param        id   path      int   true  "Performa ID"
// @Success      200  {file}    file  "JPEG image"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/performas/{id}/qr [get]
func PerformaQRCode(projects repository.ProjectStore, performas repository.PerformaStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := loadAccessiblePerforma(c, performas)
		if !ok {
			return
		}

		projectName := ""
		if project, err := projects.GetProject(c.Request.Context(), p.ProjectID); err == nil {
			projectName = project.Name
		}

		data, err := renderPerformaReceipt(p, projectName)
		if err != nil {
			c.String(http.StatusInternalServerError, "QR code generation failed")
			return
		}
		c.Data(http.StatusOK, "image/jpeg", data)
	}
}
