package receipt

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Norwegian receipt abbreviations seen across the big grocery chains.
var abbreviations = map[string]string{
	"MEL": "MELK",
	"SMR": "SMØR",
	"YOG": "YOGHURT",
	"KYL": "KYLLING",
	"BRD": "BRØD",
	"OST": "OST",
	"FRT": "FRUKT",
	"GRN": "GRØNNSAKER",
	"KJT": "KJØTT",
	"FSK": "FISK",
}

var merchants = []string{
	"REMA 1000", "KIWI", "MENY", "COOP EXTRA", "COOP PRIX", "COOP MEGA",
	"JOKER", "BUNNPRIS", "SPAR", "EUROPRIS", "NORMAL", "ELKJØP",
}

var (
	pricePattern = regexp.MustCompile(`(?i)(-?\d+[,.]?\d*)\s*(NOK|kr)?$`)
	datePattern  = regexp.MustCompile(`(\d{1,2}[./]\d{1,2}[./]\d{2,4})`)
	pantPattern  = regexp.MustCompile(`(?i)PANT.*?(\d+)\s*[xX]\s*(\d+[,.]?\d*)`)
	priceSuffix  = regexp.MustCompile(`(?i)(NOK|kr)$`)
)

// ParsedItem is one line extracted from receipt text.
type ParsedItem struct {
	RawName        string
	CanonicalName  *string
	Quantity       *decimal.Decimal
	Unit           *string
	UnitPrice      *decimal.Decimal
	TotalPrice     decimal.Decimal
	IsPant         bool
	DiscountAmount decimal.Decimal
}

// ParsedReceipt is the structured result of parsing OCR text.
type ParsedReceipt struct {
	MerchantName  string
	StoreLocation *string
	PurchaseDate  time.Time
	TotalAmount   decimal.Decimal
	Currency      string
	PaymentMethod *string
	Items         []ParsedItem
}

// NormalizeName uppercases an item name and expands known abbreviations.
func NormalizeName(name string) string {
	result := strings.ToUpper(strings.TrimSpace(name))
	for abbr, full := range abbreviations {
		pattern := regexp.MustCompile(`\b` + abbr + `\b`)
		result = pattern.ReplaceAllString(result, full)
	}
	return result
}

// ParsePrice reads a Norwegian price string ("34,90", "12.50 kr") as a
// two-decimal amount. Unparseable input becomes zero, not an error; a
// garbage line must not sink the whole receipt.
func ParsePrice(raw string) decimal.Decimal {
	cleaned := strings.ReplaceAll(raw, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = priceSuffix.ReplaceAllString(cleaned, "")

	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return price.Round(2)
}

var dateFormats = []string{
	"02.01.2006",
	"02.01.06",
	"02/01/2006",
	"02/01/06",
	"2006-01-02",
}

// ParseDate tries the date formats Norwegian receipts actually print.
// Unrecognized input falls back to now rather than failing the receipt.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

var paymentKeywords = []string{"VISA", "MASTERCARD", "VIPPS", "KONTANT", "BETALT"}

// ParseLines turns OCR text lines into a structured receipt: merchant and
// location from the header, date and payment method wherever they appear,
// and a priced item from every line ending in an amount (except totals).
func ParseLines(lines []string) ParsedReceipt {
	parsed := ParsedReceipt{
		MerchantName: "Unknown",
		PurchaseDate: time.Now().UTC(),
		Currency:     "NOK",
	}

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for _, merchant := range merchants {
			if strings.Contains(strings.ToLower(line), strings.ToLower(merchant)) {
				parsed.MerchantName = merchant
				// The next non-empty line is usually the store address.
				if i+1 < len(lines) {
					if location := strings.TrimSpace(lines[i+1]); location != "" {
						parsed.StoreLocation = &location
					}
				}
				break
			}
		}

		if m := datePattern.FindStringSubmatch(line); m != nil {
			parsed.PurchaseDate = ParseDate(m[1])
		}

		upper := strings.ToUpper(line)
		for _, kw := range paymentKeywords {
			if strings.Contains(upper, kw) {
				payment := line
				parsed.PaymentMethod = &payment
				break
			}
		}

		priceMatch := pricePattern.FindStringSubmatchIndex(line)
		if priceMatch == nil || strings.Contains(upper, "TOTAL") {
			continue
		}

		price := ParsePrice(line[priceMatch[2]:priceMatch[3]])
		name := strings.TrimSpace(line[:priceMatch[0]])
		// A bare date line also ends in digits; require a real name.
		if name == "" || price.IsZero() || !hasLetter(name) {
			continue
		}

		item := buildItem(name, price, line)
		parsed.Items = append(parsed.Items, item)
	}

	total := decimal.Zero
	for _, item := range parsed.Items {
		if item.DiscountAmount.GreaterThan(decimal.Zero) {
			total = total.Sub(item.DiscountAmount)
		} else {
			total = total.Add(item.TotalPrice)
		}
	}
	parsed.TotalAmount = total.Round(2)

	return parsed
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func buildItem(name string, price decimal.Decimal, line string) ParsedItem {
	upperName := strings.ToUpper(name)
	isPant := strings.Contains(upperName, "PANT")
	isDiscount := price.LessThan(decimal.Zero) || strings.Contains(upperName, "RABATT")

	quantity := decimal.NewFromInt(1)
	if m := pantPattern.FindStringSubmatch(line); m != nil {
		if q, err := decimal.NewFromString(m[1]); err == nil {
			quantity = q
		}
	}

	item := ParsedItem{
		RawName:        name,
		Quantity:       &quantity,
		TotalPrice:     price.Abs(),
		IsPant:         isPant,
		DiscountAmount: decimal.Zero,
	}

	if isDiscount {
		item.DiscountAmount = price.Abs()
	}

	if !isPant && !isDiscount {
		canonical := NormalizeName(name)
		item.CanonicalName = &canonical
	}

	if !quantity.IsZero() {
		unitPrice := price.Abs().Div(quantity)
		item.UnitPrice = &unitPrice
	}

	return item
}
