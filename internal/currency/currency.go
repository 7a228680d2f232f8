// Package currency converts and formats prices held in the base currency.
//
// A small static rate table covers normal operation; a live rate can be
// requested from ExchangeRate-API and silently falls back to the static rate
// on any failure, so a missing key or an unreachable network never blocks a
// document from being generated.
package currency

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency unit prices are stored in.
const BaseCurrency = "SAR"

// EnvAPIKey is the environment variable holding the ExchangeRate-API key.
const EnvAPIKey = "EXCHANGE_RATE_API_KEY"

const liveRateURL = "https://v6.exchangerate-api.com/v6/%s/latest/%s"

// StaticRates returns the default conversion table from the base currency.
func StaticRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"SAR": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("0.27"),
	}
}

// Converter converts amounts from the base currency to a display currency.
type Converter struct {
	rates  map[string]decimal.Decimal
	apiKey string
	client *http.Client
}

// New builds a Converter with the default static rates. apiKey may be empty,
// in which case live lookups are skipped entirely.
func New(apiKey string) *Converter {
	return NewWithRates(StaticRates(), apiKey)
}

// NewWithRates builds a Converter with a caller-supplied rate table.
func NewWithRates(rates map[string]decimal.Decimal, apiKey string) *Converter {
	return &Converter{
		rates:  rates,
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Supported reports whether code is in the static rate table.
func (c *Converter) Supported(code string) bool {
	_, ok := c.rates[strings.ToUpper(code)]
	return ok
}

// Rate returns the conversion rate from the base currency to target. When
// useLive is set and target is not the base currency, a live rate is fetched
// first; any failure falls back to the static table.
func (c *Converter) Rate(target string, useLive bool) (decimal.Decimal, error) {
	target = strings.ToUpper(strings.TrimSpace(target))
	rate, ok := c.rates[target]
	if !ok {
		return decimal.Zero, fmt.Errorf("unsupported currency: %s", target)
	}

	if useLive && target != BaseCurrency {
		if live, err := c.liveRate(target); err != nil {
			log.Printf("currency: live rate unavailable, using static rate: %v", err)
		} else {
			rate = live
		}
	}
	return rate, nil
}

// Convert converts amount from the base currency to target, rounded to two
// decimal places half-up.
func (c *Converter) Convert(amount decimal.Decimal, target string, useLive bool) (decimal.Decimal, error) {
	rate, err := c.Rate(target, useLive)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(2), nil
}

// Format renders an amount as "<CODE> <amount>" with thousands separators
// and two decimal places, e.g. "USD 108.50". No conversion is applied.
func Format(amount decimal.Decimal, code string) string {
	return fmt.Sprintf("%s %s", strings.ToUpper(code), GroupedString(amount))
}

// GroupedString formats amount with two decimals and comma-grouped digits.
func GroupedString(amount decimal.Decimal) string {
	s := amount.Round(2).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

type rateResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

func (c *Converter) liveRate(target string) (decimal.Decimal, error) {
	if c.apiKey == "" {
		return decimal.Zero, fmt.Errorf("no API key set (%s)", EnvAPIKey)
	}

	resp, err := c.client.Get(fmt.Sprintf(liveRateURL, c.apiKey, BaseCurrency))
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch rate: %w", err)
	}
	defer resp.Body.Close()

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decode rate response: %w", err)
	}
	if body.Result != "success" {
		return decimal.Zero, fmt.Errorf("rate API error: %s", body.ErrorType)
	}

	rate, ok := body.ConversionRates[target]
	if !ok {
		return decimal.Zero, fmt.Errorf("currency %s not in API response", target)
	}
	return decimal.NewFromFloat(rate), nil
}
