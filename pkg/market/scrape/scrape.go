// Package scrape pulls mandi price rows out of an HTML price table on an
// allow-listed host.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"kisan/pkg/apperr"
)

const DefaultMaxBytes = 1500000

const maxRedirects = 5

// Row is one parsed table row. Modal is the headline price.
type Row struct {
	Crop     string
	District string
	Market   string
	Min      float64
	Max      float64
	Modal    float64
}

type Fetcher struct {
	allow    map[string]bool
	maxBytes int64
	client   *http.Client
}

func NewFetcher(domains []string, maxBytes int) *Fetcher {
	allow := map[string]bool{}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			allow[d] = true
		}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	f := &Fetcher{allow: allow, maxBytes: int64(maxBytes)}
	f.client = &http.Client{
		Timeout: 20 * time.Second,
		// every hop must stay on the allow-list
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return apperr.BadFormat("too many redirects", nil)
			}
			_, err := f.Allowed(req.URL.String())
			return err
		},
	}
	return f
}

// Allowed checks the URL scheme and host against the allow-list.
func (f *Fetcher) Allowed(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, apperr.Validation("bad url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, apperr.Validation("bad url")
	}
	if !f.allow[strings.ToLower(u.Hostname())] {
		return nil, apperr.Forbidden("domain not allowed")
	}
	return u, nil
}

// Fetch downloads raw and parses its price table. Skipped counts rows that
// looked like data but did not parse.
func (f *Fetcher) Fetch(ctx context.Context, raw string) (rows []Row, skipped int, err error) {
	u, err := f.Allowed(raw)
	if err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, apperr.Validation("bad url")
	}
	resp, err := f.client.Do(req)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, 0, ae
		}
		return nil, 0, apperr.Unavailable("price source unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, 0, apperr.Unavailable("price source unreachable", fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.ContentLength > f.maxBytes {
		return nil, 0, apperr.BadFormat("page too large", nil)
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(ct, "text/html") {
		return nil, 0, apperr.BadFormat("unsupported content-type: "+ct, nil)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, 0, apperr.Unavailable("price source unreachable", err)
	}
	return Parse(bytes.NewReader(b))
}

// Parse reads the first table that yields rows. Columns are crop, district,
// market, min, max, modal; header rows and short rows are ignored.
func Parse(r io.Reader) ([]Row, int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, 0, apperr.BadFormat("unreadable html", err)
	}
	var rows []Row
	skipped := 0
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			if cells.Length() < 6 {
				return
			}
			var txt []string
			cells.Each(func(_ int, td *goquery.Selection) {
				txt = append(txt, strings.Join(strings.Fields(td.Text()), " "))
			})
			row, ok := toRow(txt)
			if !ok {
				skipped++
				return
			}
			rows = append(rows, row)
		})
		return len(rows) == 0
	})
	if len(rows) == 0 {
		return nil, skipped, apperr.BadFormat("no price rows found", nil)
	}
	return rows, skipped, nil
}

func toRow(c []string) (Row, bool) {
	row := Row{Crop: c[0], District: c[1], Market: c[2]}
	if row.Crop == "" || row.District == "" {
		return row, false
	}
	for i, dst := range []*float64{&row.Min, &row.Max, &row.Modal} {
		v, err := strconv.ParseFloat(strings.ReplaceAll(c[3+i], ",", ""), 64)
		if err != nil || v < 0 {
			return row, false
		}
		*dst = v
	}
	return row, row.Modal > 0
}
