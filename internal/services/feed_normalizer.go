package services

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
)

// PriceEntry is one canonical price row extracted from the feed. Price
// fields stay nil when the source omits them; they are never zero-filled.
type PriceEntry struct {
	IDProduct  int64
	AvgPrice   *float64
	LowPrice   *float64
	TrendPrice *float64
	Raw        json.RawMessage
}

// NormalizeResult is the ordered entry list plus counts for observability.
type NormalizeResult struct {
	Entries []PriceEntry
	Seen    int
	Skipped int
}

// The feed's shape is not contractually guaranteed: providers wrap the
// row list in different keys and spell fields in camelCase or
// snake_case. Each logical field gets an ordered candidate list,
// evaluated first-match-wins.
var (
	wrapperKeys = []string{"priceGuides", "priceGuide", "products", "data", "items", "rows"}
	idKeys      = []string{"idProduct", "id_product", "productId", "product_id", "id"}
	avgKeys     = []string{"avgPrice", "avg_price", "avg"}
	lowKeys     = []string{"lowPrice", "low_price", "low"}
	trendKeys   = []string{"trendPrice", "trend_price", "trend"}
)

// NormalizeFeed turns a raw feed payload into canonical price entries.
// Structurally wrong input (not JSON, or no recognizable row list) fails
// the whole batch; individual rows without a resolvable integer product
// id are skipped silently and only counted.
func NormalizeFeed(body []byte, contentType, contentEncoding, sourceURL string) (*NormalizeResult, error) {
	raw, err := maybeGunzip(body, contentType, contentEncoding, sourceURL)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	// Lossy decode: one bad byte must not fail the whole batch.
	text := strings.ToValidUTF8(string(raw), "�")

	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &ParseError{Err: err}
	}

	rows, err := findEntryList(doc)
	if err != nil {
		return nil, err
	}

	result := &NormalizeResult{}
	for _, row := range rows {
		result.Seen++

		obj, ok := row.(map[string]any)
		if !ok {
			result.Skipped++
			continue
		}

		id, ok := resolveProductID(obj)
		if !ok {
			result.Skipped++
			continue
		}

		rawEntry, err := json.Marshal(obj)
		if err != nil {
			result.Skipped++
			continue
		}

		result.Entries = append(result.Entries, PriceEntry{
			IDProduct:  id,
			AvgPrice:   resolvePrice(obj, avgKeys),
			LowPrice:   resolvePrice(obj, lowKeys),
			TrendPrice: resolvePrice(obj, trendKeys),
			Raw:        rawEntry,
		})
	}

	return result, nil
}

// maybeGunzip decompresses when the transport or the URL says gzip.
func maybeGunzip(body []byte, contentType, contentEncoding, sourceURL string) ([]byte, error) {
	gzipped := strings.Contains(contentEncoding, "gzip") ||
		strings.Contains(contentType, "gzip") ||
		strings.HasSuffix(sourceURL, ".gz")
	if !gzipped {
		return body, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// findEntryList locates the list of price rows. The root may already be
// a list, or an object carrying the list under a known wrapper key.
func findEntryList(doc any) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		for _, key := range wrapperKeys {
			if list, ok := v[key].([]any); ok {
				return list, nil
			}
		}
	}
	return nil, &SchemaError{Msg: "expected an array of price rows"}
}

// resolveProductID tries the id candidate keys in order. Numbers and
// numeric strings are accepted as long as they are integers.
func resolveProductID(obj map[string]any) (int64, bool) {
	for _, key := range idKeys {
		v, ok := obj[key]
		if !ok {
			continue
		}
		if id, ok := toInt64(v); ok {
			return id, true
		}
	}
	return 0, false
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if math.Trunc(t) != t {
			return 0, false
		}
		return int64(t), true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

// resolvePrice tries the candidate keys in order and returns nil when no
// usable value exists. Absent prices are meaningful (no market data) and
// must not collapse to zero.
func resolvePrice(obj map[string]any, keys []string) *float64 {
	for _, key := range keys {
		v, ok := obj[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			f := t
			return &f
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// PreviewText returns a short human-readable preview of a feed payload
// for the diagnostic probe: decompressed best-effort, lossily decoded,
// truncated to maxLen runes.
func PreviewText(res *FetchResult, sourceURL string, maxLen int) string {
	raw, err := maybeGunzip(res.Body, res.ContentType, res.ContentEncoding, sourceURL)
	if err != nil {
		raw = res.Body
	}
	text := strings.ToValidUTF8(string(raw), "�")
	runes := []rune(text)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return text
}
