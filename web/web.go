// Package web implements the request layer of the ticker: an HTML page to
// manage the watch list and the settings, and a small JSON API.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/ticker"
	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html templates/style.css
var assets embed.FS

var index = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"arrow": arrow,
}).ParseFS(assets, "templates/index.html"))

func arrow(g ticker.Glyph) string {
	s := ""
	switch g.Arrow {
	case ticker.Up:
		s = "▲"
	case ticker.Down:
		s = "▼"
	}
	if g.Star {
		s += "*"
	}
	return s
}

// Refresher is told when the watch list changed in a way that needs new prices.
type Refresher interface {
	RequestRefresh()
}

// Handler serves the request layer of a board.
type Handler struct {
	board     *ticker.Board
	refresher Refresher
}

// NewHandler returns a handler mutating board. refresher may be nil.
func NewHandler(board *ticker.Board, refresher Refresher) *Handler {
	return &Handler{board: board, refresher: refresher}
}

// NewRouter returns a gin engine serving h. Requests are logged when verbose.
func NewRouter(h *Handler, verbose bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if verbose {
		r.Use(gin.Logger())
	}
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes binds the handler methods to the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Index)
	r.GET("/style.css", h.Style)
	r.POST("/add", h.Add)
	r.POST("/remove", h.Remove)
	r.POST("/update", h.Update)
	r.POST("/updateSettings", h.UpdateSettings)
	r.POST("/clear", h.Clear)
	r.GET("/api/tickers", h.List)
}

// pageData is what the index template renders.
type pageData struct {
	Entries        []ticker.Entry
	UpdateMinutes  int64
	DisplaySeconds int64
	Full           bool
}

// Index renders the management page.
func (h *Handler) Index(c *gin.Context) {
	s := h.board.Settings()
	data := pageData{
		Entries:        h.board.Entries(),
		UpdateMinutes:  int64(s.UpdateInterval / time.Minute),
		DisplaySeconds: int64(s.DisplayInterval / time.Second),
	}
	data.Full = len(data.Entries) >= ticker.MaxTickers

	var buf bytes.Buffer
	if err := index.Execute(&buf, data); err != nil {
		log.Printf("cannot render index: %v", err)
		c.String(http.StatusInternalServerError, "cannot render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// Style serves the page stylesheet.
func (h *Handler) Style(c *gin.Context) {
	css, err := assets.ReadFile("templates/style.css")
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "text/css; charset=utf-8", css)
}

// Add appends a ticker and asks for a refresh cycle.
func (h *Handler) Add(c *gin.Context) {
	defer home(c)
	symbol, threshold, isBuy, ok := recordForm(c)
	if !ok {
		return
	}
	if err := h.board.Add(symbol, threshold, isBuy); err != nil {
		log.Printf("add %q: %v", symbol, err)
		return
	}
	h.requestRefresh()
}

// Remove deletes a ticker and asks for a refresh cycle.
func (h *Handler) Remove(c *gin.Context) {
	defer home(c)
	symbol, ok := c.GetPostForm("symbol")
	if !ok {
		return
	}
	if err := h.board.Remove(normalize(symbol)); err != nil {
		log.Printf("remove %q: %v", symbol, err)
		return
	}
	h.requestRefresh()
}

// Update changes a ticker threshold and signal, and refreshes its price.
func (h *Handler) Update(c *gin.Context) {
	defer home(c)
	symbol, threshold, isBuy, ok := recordForm(c)
	if !ok {
		return
	}
	if err := h.board.Update(c.Request.Context(), symbol, threshold, isBuy); err != nil {
		log.Printf("update %q: %v", symbol, err)
	}
}

// UpdateSettings changes both intervals, given in minutes and seconds.
func (h *Handler) UpdateSettings(c *gin.Context) {
	defer home(c)
	minutes, err := strconv.ParseInt(c.PostForm("updateInterval"), 10, 32)
	if err != nil {
		log.Printf("update settings: invalid update interval: %v", err)
		return
	}
	seconds, err := strconv.ParseInt(c.PostForm("displayChangeInterval"), 10, 32)
	if err != nil {
		log.Printf("update settings: invalid display interval: %v", err)
		return
	}
	update, err := ticker.Interval(minutes, time.Minute)
	if err != nil {
		log.Printf("update settings: %v", err)
		return
	}
	display, err := ticker.Interval(seconds, time.Second)
	if err != nil {
		log.Printf("update settings: %v", err)
		return
	}
	if err := h.board.SetIntervals(update, display); err != nil {
		log.Printf("update settings: %v", err)
	}
}

// Clear removes every ticker and restores the default settings.
func (h *Handler) Clear(c *gin.Context) {
	defer home(c)
	if err := h.board.Clear(); err != nil {
		log.Printf("clear: %v", err)
	}
}

// apiTicker is the JSON view of an entry.
type apiTicker struct {
	Symbol      string  `json:"symbol"`
	Threshold   float32 `json:"threshold"`
	IsBuySignal bool    `json:"isBuySignal"`
	Price       string  `json:"price"`
	Status      string  `json:"status"`
	Arrow       string  `json:"arrow"`
	Star        bool    `json:"star"`
}

// List returns the watch list, its prices and the settings as JSON.
func (h *Handler) List(c *gin.Context) {
	entries := h.board.Entries()
	tickers := make([]apiTicker, len(entries))
	for i, e := range entries {
		tickers[i] = apiTicker{
			Symbol:      e.Symbol,
			Threshold:   e.Threshold,
			IsBuySignal: e.IsBuySignal,
			Price:       string(e.Price),
			Status:      e.Status.String(),
			Arrow:       e.Glyph.Arrow.String(),
			Star:        e.Glyph.Star,
		}
	}
	s := h.board.Settings()
	c.JSON(http.StatusOK, gin.H{
		"tickers":           tickers,
		"updateIntervalMs":  s.UpdateInterval.Milliseconds(),
		"displayIntervalMs": s.DisplayInterval.Milliseconds(),
	})
}

func (h *Handler) requestRefresh() {
	if h.refresher != nil {
		h.refresher.RequestRefresh()
	}
}

// recordForm reads the symbol, threshold and isBuy fields. A checkbox is only
// posted when checked.
func recordForm(c *gin.Context) (symbol string, threshold float32, isBuy bool, ok bool) {
	symbol, hasSymbol := c.GetPostForm("symbol")
	raw, hasThreshold := c.GetPostForm("threshold")
	if !hasSymbol || !hasThreshold {
		return "", 0, false, false
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		log.Printf("invalid threshold %q: %v", raw, err)
		return "", 0, false, false
	}
	if err := ticker.ValidateThreshold(float32(t)); err != nil {
		log.Printf("%v", err)
		return "", 0, false, false
	}
	_, isBuy = c.GetPostForm("isBuy")
	return normalize(symbol), float32(t), isBuy, true
}

func normalize(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

// home redirects the browser back to the index page.
func home(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/") }
