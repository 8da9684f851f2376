package controller

import (
	"time"

	"pitchday/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExportController struct {
	exportService *service.ExportService
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{
		exportService: service.NewExportService(db),
	}
}

func setupExportController(db *gorm.DB) []RouteInfo {
	e := NewExportController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "admin/export/csv", HandlerFunc: e.exportCSVHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "GET", Path: "admin/export/pdf", HandlerFunc: e.exportPDFHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
	}
	return routes
}

// @id ExportResultsCSV
// @Description Streams the full results as CSV, one row per team with a column group per judge.
// @Tags export
// @Produce text/csv
// @Router /admin/export/csv [get]
// @Success 200 {string} string
func (e *ExportController) exportCSVHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filename := "results_" + time.Now().Format("2006-01-02") + ".csv"
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := e.exportService.WriteResultsCSV(c.Writer); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
	}
}

// @id ExportResultsPDF
// @Description Placeholder for a PDF results export.
// @Tags export
// @Produce json
// @Router /admin/export/pdf [get]
// @Success 501 {object} map[string]string
func (e *ExportController) exportPDFHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(501, gin.H{"error": "PDF export is not available yet, use the CSV export"})
	}
}
