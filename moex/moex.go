// Package moex fetches last prices from the Moscow Exchange ISS API.
package moex

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/ticker"
)

const (
	// DefaultBaseURL lists the shares of the stock market.
	DefaultBaseURL = "https://iss.moex.com/iss/engines/stock/markets/shares/securities/"
	// DefaultBoard is the main trading mode for shares.
	DefaultBoard = "TQBR"
)

// Client is a ticker.Fetcher reading the LAST price of a security on a
// single board.
type Client struct {
	BaseURL string       // DefaultBaseURL if empty
	Board   string       // DefaultBoard if empty
	HTTP    *http.Client // http.DefaultClient if nil
	Verbose bool         // log every request
}

// New returns a client with the default settings.
func New() *Client { return &Client{} }

// Fetch returns the last price of symbol, formatted for the display.
func (c *Client) Fetch(ctx context.Context, symbol string) (ticker.Price, error) {
	symbol = strings.TrimSpace(symbol)
	if len(symbol) == 0 || len(symbol) > ticker.MaxSymbolLen {
		return ticker.ErrorPrice, fmt.Errorf("invalid symbol %q", symbol)
	}

	addr := c.baseURL() + url.PathEscape(symbol) + ".json?iss.meta=off"
	var jobj any
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return ticker.ErrorPrice, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	last, err := lastPrice(jobj, c.board())
	if err != nil {
		return ticker.ErrorPrice, fmt.Errorf("error parsing %q: %w", symbol, err)
	}
	return FormatPrice(last), nil
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		return c.BaseURL + "/"
	}
	return c.BaseURL
}

func (c *Client) board() string {
	if c.Board == "" {
		return DefaultBoard
	}
	return c.Board
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// data. Numbers are kept as json.Number so that prices keep their digits.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if c.Verbose {
		log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(data)
}

/*
	{
	    "marketdata": {
	        "columns": ["SECID", "BOARDID", "BID", ..., "LAST", ...],
	        "data": [
	            ["SBER", "SMAL", null, ..., 285.5, ...],
	            ["SBER", "TQBR", 285.4, ..., 285.52, ...]
	        ]
	    }
	}
*/

// column positions of the ISS marketdata table when the response has no columns.
const (
	boardColumn = 1
	lastColumn  = 12
)

// lastPrice finds the LAST value of the first row traded on board.
func lastPrice(jobj any, board string) (string, error) {
	jdata, err := jsonpath.Get("$.marketdata.data", jobj)
	if err != nil {
		return "", fmt.Errorf("no market data: %w", err)
	}
	rows, ok := jdata.([]any)
	if !ok || len(rows) == 0 {
		return "", fmt.Errorf("no market data")
	}

	boardCol, lastCol := boardColumn, lastColumn
	if jcols, err := jsonpath.Get("$.marketdata.columns", jobj); err == nil {
		if cols, ok := jcols.([]any); ok {
			for i, col := range cols {
				switch col {
				case "BOARDID":
					boardCol = i
				case "LAST":
					lastCol = i
				}
			}
		}
	}

	for _, r := range rows {
		row, ok := r.([]any)
		if !ok || len(row) <= max(boardCol, lastCol) {
			continue
		}
		if b, _ := row[boardCol].(string); b != board {
			continue
		}
		switch v := row[lastCol].(type) {
		case json.Number:
			return v.String(), nil
		case string:
			if v != "" {
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("no last price on board %s", board)
}

// FormatPrice shortens a price for the display: at most 4 fractional digits,
// then at most ticker.MaxPriceLen characters.
//
// The second cut does not check whether it removes integer digits, a price
// of 10 million or more is displayed truncated.
func FormatPrice(s string) ticker.Price {
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s) > dot+5 {
		s = s[:dot+5]
	}
	if len(s) > ticker.MaxPriceLen {
		s = s[:ticker.MaxPriceLen]
	}
	return ticker.Price(s)
}
