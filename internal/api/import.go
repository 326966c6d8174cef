package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/config"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/importer"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/market"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/store"
)

// filenameYearRe matches the "-YYYY" filename convention, e.g.
// "harga-pasar-baru-2024.xlsx".
var filenameYearRe = regexp.MustCompile(`-(\d{4})$`)

// Import runs a single-sheet import. Truncate defaults to true.
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	h.runImport(c, importMode{})
}

// ImportBulk walks every sheet of the workbook. Truncate defaults to true.
// POST /api/import/bulk
func (h *Handler) ImportBulk(c *gin.Context) {
	h.runImport(c, importMode{allSheets: true})
}

// ImportFlexible runs the gated import with dryRun/force support.
// POST /api/import/flexible
func (h *Handler) ImportFlexible(c *gin.Context) {
	h.runImport(c, importMode{gated: true})
}

type importMode struct {
	allSheets bool
	gated     bool
}

// runImport is the shared multipart import path: save the upload to the
// uploads area, parse the run options, execute, record the import log.
func (h *Handler) runImport(c *gin.Context, mode importMode) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no uploaded file"})
		return
	}
	uploaded := files[0]

	tempPath := config.UploadPath(h.dataDir,
		fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(uploaded.Filename)))
	if err := c.SaveUploadedFile(uploaded, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload"})
		return
	}
	defer os.Remove(tempPath)

	opts, err := parseImportOptions(c, uploaded.Filename, mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := excelize.OpenFile(tempPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open workbook"})
		return
	}
	defer f.Close()

	logID, err := h.store.CreateImportLog(uploaded.Filename, opts.MarketID, opts.Year, opts.Month)
	if err != nil {
		log.Printf("create import log failed: %v", err)
	}

	report, err := h.newImporter().Run(f, opts)
	if err != nil {
		if logID != 0 {
			_ = h.store.FinishImportLog(logID, 0, 0, 0, "error", err.Error())
		}
		c.JSON(importErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	if logID != 0 {
		status := "ok"
		if !report.Committed {
			status = "blocked"
		}
		_ = h.store.FinishImportLog(logID, report.Truncated, report.Imported, report.Skipped, status, "")
	}

	c.JSON(http.StatusOK, report)
}

// parseImportOptions reads the run parameters from the form. The year falls
// back to the "-YYYY" filename convention when absent.
func parseImportOptions(c *gin.Context, filename string, mode importMode) (importer.Options, error) {
	opts := importer.Options{
		MarketName: strings.TrimSpace(c.PostForm("marketName")),
		Sheet:      c.PostForm("sheet"),
		AllSheets:  mode.allSheets,
		Gated:      mode.gated,
	}

	if v := c.PostForm("marketId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid marketId %q", v)
		}
		opts.MarketID = id
	}

	if v := c.PostForm("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid year %q", v)
		}
		opts.Year = year
	} else {
		opts.Year = yearFromFilename(filename)
	}

	if v := c.PostForm("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return opts, fmt.Errorf("invalid month %q", v)
		}
		opts.Month = month
	}

	opts.Truncate = c.DefaultPostForm("truncate", "true") == "true"
	if mode.gated {
		opts.DryRun = c.PostForm("dryRun") == "true"
		opts.Force = c.PostForm("force") == "true"
	}

	return opts, nil
}

// yearFromFilename pulls a trailing "-YYYY" out of the base filename.
func yearFromFilename(filename string) int {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	m := filenameYearRe.FindStringSubmatch(base)
	if m == nil {
		return 0
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return year
}

// importErrorStatus maps the run's fatal error classes onto HTTP statuses.
func importErrorStatus(err error) int {
	switch {
	case errors.Is(err, market.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, market.ErrInvalidInput),
		errors.Is(err, importer.ErrYearRequired),
		errors.Is(err, importer.ErrMonthUndetected),
		errors.Is(err, importer.ErrSheetEmpty):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
