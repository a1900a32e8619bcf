package service

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"skorpik-value/config"
	"skorpik-value/models"
	"skorpik-value/utils"
)

//go:embed templates/trade.html
var templateFS embed.FS

const (
	sheetWidth      = 1200
	sheetHeight     = 800
	defaultMaxCards = 8
	maxNameRunes    = 20
)

// ExportCard is one item slot of an export column
type ExportCard struct {
	Quantity int
	Name     string
	Value    string
	Demand   string
	Image    template.URL // data URI; empty renders the placeholder
}

// ExportColumn is one side of the exported trade
type ExportColumn struct {
	Class         string
	Title         string
	Cards         []ExportCard
	Hidden        int // entries beyond the card limit
	HasTotals     bool
	TotalValue    string
	AverageDemand string
}

// ExportSheet is the template data of a trade screenshot
type ExportSheet struct {
	Title            string
	Subtitle         string
	Width            int
	Height           int
	ResultsTop       int
	Give             ExportColumn
	Receive          ExportColumn
	ValueDifference  string
	ValueClass       string
	DemandDifference string
	TrendSymbol      string
	TrendClass       string
	Timestamp        string
}

// ExportServiceInterface defines the contract for trade export
type ExportServiceInterface interface {
	RenderHTML(ctx context.Context, snap models.Snapshot) (string, error)
	RenderPNG(ctx context.Context, snap models.Snapshot) ([]byte, error)
}

// ExportService turns a trade snapshot into a shareable image
type ExportService struct {
	queue      *ImageQueue
	tmpl       *template.Template
	chromePath string
	timeout    time.Duration
	maxCards   int
	logger     *zap.Logger
}

// Ensure ExportService implements ExportServiceInterface
var _ ExportServiceInterface = (*ExportService)(nil)

// NewExportService creates a new ExportService
func NewExportService(cfg config.ExportConfig, queue *ImageQueue, logger *zap.Logger) (*ExportService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/trade.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse template")
	}

	maxCards := cfg.MaxItems
	if maxCards <= 0 {
		maxCards = defaultMaxCards
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ExportService{
		queue:      queue,
		tmpl:       tmpl,
		chromePath: cfg.ChromePath,
		timeout:    timeout,
		maxCards:   maxCards,
		logger:     logger,
	}, nil
}

// Filename returns the download name of an export taken at t
func Filename(t time.Time) string {
	return "skorpik-trade-" + t.Format("2006-01-02") + ".png"
}

// BuildSheet lays out the snapshot. Slot images are loaded through the
// queue, give column first, one image at a time.
func (s *ExportService) BuildSheet(ctx context.Context, snap models.Snapshot) ExportSheet {
	give := visibleEntries(snap.Give, s.maxCards)
	receive := visibleEntries(snap.Receive, s.maxCards)

	requests := make([]ImageRequest, 0, len(give)+len(receive))
	for _, e := range append(append([]models.ResolvedEntry{}, give...), receive...) {
		requests = append(requests, ImageRequest{ItemID: e.Item.ID, Ref: e.Item.Image})
	}
	images := s.queue.LoadAll(ctx, requests)

	cmp := snap.Comparison
	return ExportSheet{
		Title:            "SKORPIK VALUE",
		Subtitle:         "СКРИНШОТ СДЕЛКИ",
		Width:            sheetWidth,
		Height:           sheetHeight,
		ResultsTop:       sheetHeight - 150,
		Give:             buildColumn("give", "ДАЮ", snap.Give, snap.GiveTotals, images[:len(give)]),
		Receive:          buildColumn("receive", "ПОЛУЧАЮ", snap.Receive, snap.RecvTotals, images[len(give):]),
		ValueDifference:  utils.FormatValue(cmp.ValueDifference),
		ValueClass:       utils.ValueClass(cmp.ValueDifference),
		DemandDifference: utils.FormatDemandDifference(cmp.DemandDifference),
		TrendSymbol:      cmp.DemandTrend.Symbol(),
		TrendClass:       utils.TrendClass(cmp.DemandTrend),
		Timestamp:        snap.GeneratedAt.Format("02.01.2006, 15:04:05"),
	}
}

func visibleEntries(entries []models.ResolvedEntry, max int) []models.ResolvedEntry {
	if len(entries) > max {
		return entries[:max]
	}
	return entries
}

// buildColumn renders the visible cards; totals always cover the whole side
func buildColumn(class, title string, entries []models.ResolvedEntry, totals models.SideTotals, images []SlotImage) ExportColumn {
	col := ExportColumn{
		Class:  class,
		Title:  title,
		Hidden: len(entries) - len(images),
	}
	for i, img := range images {
		e := entries[i]
		col.Cards = append(col.Cards, ExportCard{
			Quantity: e.Quantity,
			Name:     utils.TruncateName(e.Item.Name, maxNameRunes),
			Value:    utils.FormatValue(e.Item.Value),
			Demand:   utils.FormatDemand(e.Item.Demand),
			Image:    template.URL(img.DataURI),
		})
	}
	if len(entries) > 0 {
		col.HasTotals = true
		col.TotalValue = utils.FormatValue(totals.TotalValue)
		col.AverageDemand = totals.AverageDemand.StringFixed(1)
	}
	return col
}

// RenderHTML renders the export sheet as a standalone HTML page
func (s *ExportService) RenderHTML(ctx context.Context, snap models.Snapshot) (string, error) {
	sheet := s.BuildSheet(ctx, snap)

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, sheet); err != nil {
		return "", errors.Wrap(err, "failed to execute template")
	}
	return buf.String(), nil
}

// detectChromePath returns the configured Chrome binary, then CHROME_PATH,
// then the first common installation path that exists
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// RenderPNG screenshots the export sheet with headless Chrome
func (s *ExportService) RenderPNG(ctx context.Context, snap models.Snapshot) ([]byte, error) {
	html, err := s.RenderHTML(ctx, snap)
	if err != nil {
		return nil, err
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.WindowSize(sheetWidth, sheetHeight),
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctxTimeout, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var buf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(sheetWidth, sheetHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.Sleep(300*time.Millisecond), // Let fonts and data URIs settle
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to capture trade screenshot")
	}

	s.logger.Info("📸 RenderPNG: trade exported",
		zap.Int("give", len(snap.Give)),
		zap.Int("receive", len(snap.Receive)),
		zap.Int("bytes", len(buf)),
	)
	return buf, nil
}
