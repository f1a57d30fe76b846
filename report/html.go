package report

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"listing-dedup/config"
	"listing-dedup/models"
)

//go:embed templates/index.html.tmpl
var indexTemplate string

// HTMLRenderer turns a Report into a self-contained HTML dashboard.
type HTMLRenderer struct {
	profile *config.Profile
	tmpl    *template.Template
}

// NewHTMLRenderer parses the dashboard template.
func NewHTMLRenderer(profile *config.Profile) (*HTMLRenderer, error) {
	tmpl, err := template.New("index").Funcs(template.FuncMap{
		"number":  FormatCount,
		"percent": func(f float64) string { return fmt.Sprintf("%.1f", f) },
		"even":    func(i int) bool { return i%2 == 0 },
		"stamp":   models.FormatTimestamp,
	}).Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("report: parse template: %w", err)
	}
	return &HTMLRenderer{profile: profile, tmpl: tmpl}, nil
}

// cell is one rendered table cell.
type cell struct {
	Text   string
	Class  string
	Link   string
	NoLink bool
}

type row struct {
	Province   string
	CityCounty string
	Cells      []cell
}

type pageData struct {
	Report    *models.Report
	Headers   []string
	Rows      []row
	Shown     int
	LinkField string
}

// Render writes the dashboard for r to w.
func (h *HTMLRenderer) Render(w io.Writer, r *models.Report) error {
	data := pageData{
		Report:    r,
		Headers:   r.DisplayColumns,
		Shown:     len(r.Ranking.Records),
		LinkField: h.profile.LinkField,
	}
	for _, rec := range r.Ranking.Records {
		data.Rows = append(data.Rows, h.buildRow(rec, r.DisplayColumns))
	}

	if err := h.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("report: render html: %w", err)
	}
	return nil
}

// RenderFile renders r into path, creating parent directories.
func (h *HTMLRenderer) RenderFile(_ context.Context, path string, r *models.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create file %q: %w", path, err)
	}
	if err := h.Render(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (h *HTMLRenderer) buildRow(rec models.Record, headers []string) row {
	out := row{
		Province:   models.Text(rec.Get(h.profile.ProvinceField)),
		CityCounty: models.Text(rec.Get(h.profile.CityCountyField)),
		Cells:      make([]cell, 0, len(headers)),
	}

	for _, col := range headers {
		v := rec.Get(col)
		c := cell{Text: models.Text(v), Class: columnClass(col, v)}

		switch {
		case col == h.profile.LinkField && h.profile.LinkEligibilityField != "" && !models.IsBlank(v):
			c.Link = h.profile.LinkURL(rec)
			c.NoLink = c.Link == ""
		case col == h.profile.ComplexCodeField:
			c.Class = "code"
			if models.IsBlank(v) {
				c.Text, c.Class = "없음", "code missing"
			}
		case c.Class == "diff" || c.Class == "price":
			if f, ok := v.(float64); ok {
				c.Text = FormatCount(f)
			}
		}
		out.Cells = append(out.Cells, c)
	}
	return out
}

// columnClass picks the highlight style of a column from its name.
func columnClass(col string, v any) string {
	_, numeric := v.(float64)
	switch {
	case strings.Contains(col, "가격차이") && numeric:
		return "diff"
	case strings.Contains(col, "매매가") && numeric:
		return "price"
	case strings.Contains(col, "면적"):
		return "area"
	case strings.Contains(col, "시도"), strings.Contains(col, "시군구"), strings.Contains(col, "읍면동"):
		return "region"
	default:
		return ""
	}
}

// FormatCount renders v with thousands separators, e.g. 12345.5 → "12,345.5".
func FormatCount(v any) string {
	switch t := v.(type) {
	case int:
		return humanize.Comma(int64(t))
	case float64:
		return humanize.Commaf(t)
	default:
		return fmt.Sprint(v)
	}
}
