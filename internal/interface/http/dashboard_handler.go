package handlers

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/userboard/userboard/internal/application"
	"github.com/userboard/userboard/internal/charts"
	"github.com/userboard/userboard/internal/domain/entity"
	"github.com/userboard/userboard/internal/infrastructure/placeholder"
	"github.com/userboard/userboard/internal/infrastructure/sqlite"
	"github.com/userboard/userboard/pkg/response"
)

//go:embed *.tmpl
var tmplFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"str": strOf,
	"id":  idOf,
}).ParseFS(tmplFS, "*.tmpl"))

// csvHeader is the export column contract; order is part of the interface.
var csvHeader = []string{
	"id", "name", "username", "email", "phone", "website",
	"name_length", "email_domain", "username_length", "company_name_length",
}

type DashboardHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *application.Service, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

type renderable interface {
	Render(w io.Writer) error
}

type chartSpec struct {
	Name  string
	Title string
	build func([]entity.DerivedUser) renderable
}

// chartSpecs lists every chart page the dashboard offers, in display order.
var chartSpecs = []chartSpec{
	{"name-length-histogram", "Name length distribution", func(r []entity.DerivedUser) renderable { return charts.NameLengthHistogram(r) }},
	{"email-domains", "Users per email domain", func(r []entity.DerivedUser) renderable { return charts.EmailDomainBar(r) }},
	{"email-domains-donut", "Email domain share", func(r []entity.DerivedUser) renderable { return charts.EmailDomainDonut(r) }},
	{"username-vs-name", "Username length vs name length", func(r []entity.DerivedUser) renderable { return charts.UsernameScatter(r) }},
	{"name-bubbles", "Name bubbles", func(r []entity.DerivedUser) renderable { return charts.NameBubbles(r) }},
}

func chartByName(name string, rows []entity.DerivedUser) (renderable, bool) {
	for _, spec := range chartSpecs {
		if spec.Name == name {
			return spec.build(rows), true
		}
	}
	return nil, false
}

// Home renders the dashboard landing page: the full derived table plus links
// to every chart and export. An empty table renders a warning banner instead
// of chart links; that state is valid and does not fail the request.
func (h *DashboardHandler) Home(c *gin.Context) {
	snap, err := h.Svc.Snapshot(c.Request.Context())
	if err != nil {
		h.renderMessage(c, http.StatusInternalServerError, "Could not read the user store.")
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pages.ExecuteTemplate(c.Writer, "home.tmpl", gin.H{
		"Rows":   snap,
		"Charts": chartSpecs,
	}); err != nil {
		h.Logger.WithError(err).Error("render home page")
	}
}

// Chart renders one chart as an interactive HTML document. The export
// variant serves the same document with an attachment disposition.
func (h *DashboardHandler) Chart(c *gin.Context) {
	h.renderChart(c, false)
}

func (h *DashboardHandler) ChartExport(c *gin.Context) {
	h.renderChart(c, true)
}

func (h *DashboardHandler) renderChart(c *gin.Context, download bool) {
	name := c.Param("name")

	snap, err := h.Svc.Snapshot(c.Request.Context())
	if err != nil {
		h.renderMessage(c, http.StatusInternalServerError, "Could not read the user store.")
		return
	}
	if len(snap) == 0 {
		h.renderMessage(c, http.StatusOK, "No user data available yet; charts are suppressed.")
		return
	}

	if download {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".html"))
	}
	c.Header("Content-Type", "text/html; charset=utf-8")

	if name == "users-table" {
		c.Status(http.StatusOK)
		if err := pages.ExecuteTemplate(c.Writer, "users_table.tmpl", gin.H{"Rows": snap}); err != nil {
			h.Logger.WithError(err).Error("render users table")
		}
		return
	}

	chart, ok := chartByName(name, snap)
	if !ok {
		c.Header("Content-Disposition", "")
		h.renderMessage(c, http.StatusNotFound, "Unknown chart: "+name)
		return
	}
	c.Status(http.StatusOK)
	if err := chart.Render(c.Writer); err != nil {
		h.Logger.WithError(err).WithField("chart", name).Error("render chart")
	}
}

// ListUsers returns the derived table as JSON.
func (h *DashboardHandler) ListUsers(c *gin.Context) {
	snap, err := h.Svc.Snapshot(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("snapshot failed")
		response.Error[any](c, http.StatusInternalServerError, "could not read users", nil)
		return
	}
	response.Success(c, http.StatusOK, snap, "derived users", gin.H{"count": len(snap)})
}

// ExportCSV streams the derived table as a UTF-8 CSV download. Nil fields
// become empty cells.
func (h *DashboardHandler) ExportCSV(c *gin.Context) {
	snap, err := h.Svc.Snapshot(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("snapshot failed")
		response.Error[any](c, http.StatusInternalServerError, "could not read users", nil)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="users.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(csvHeader)
	for _, r := range snap {
		_ = w.Write(csvRecord(r))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.Logger.WithError(err).Error("write csv export")
	}
}

// SyncNow re-runs the fetch-and-upsert pipeline on demand.
func (h *DashboardHandler) SyncNow(c *gin.Context) {
	n, err := h.Svc.Sync(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("sync failed")
		msg := "could not refresh users"
		switch {
		case errors.Is(err, placeholder.ErrFetch):
			msg = "could not reach the users API"
		case errors.Is(err, sqlite.ErrStore):
			msg = "could not persist users"
		}
		response.Error[any](c, http.StatusBadGateway, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stored": n}, "users synced", nil)
}

func (h *DashboardHandler) renderMessage(c *gin.Context, status int, msg string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := pages.ExecuteTemplate(c.Writer, "message.tmpl", gin.H{"Message": msg}); err != nil {
		h.Logger.WithError(err).Error("render message page")
	}
}

func csvRecord(r entity.DerivedUser) []string {
	return []string{
		idOf(r.ID),
		strOf(r.Name),
		strOf(r.Username),
		strOf(r.Email),
		strOf(r.Phone),
		strOf(r.Website),
		strconv.Itoa(r.NameLength),
		strOf(r.EmailDomain),
		strconv.Itoa(r.UsernameLength),
		strconv.Itoa(r.CompanyNameLength),
	}
}

func strOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func idOf(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
