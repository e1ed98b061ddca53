package receipt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNormalizeName_ExpandsAbbreviations(t *testing.T) {
	cases := map[string]string{
		"MEL 1L":      "MELK 1L",
		"smr meierism": "SMØR MEIERISM",
		"KYL FILET":   "KYLLING FILET",
		"melkesjokolade": "MELKESJOKOLADE", // no word-boundary hit
	}

	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := map[string]string{
		"34,90":    "34.90",
		"12.50":    "12.50",
		"19,90 kr": "19.90",
		"25 NOK":   "25.00",
		"-10,00":   "-10.00",
		"junk":     "0",
	}

	for in, want := range cases {
		if got := ParsePrice(in); !got.Equal(dec(want)) {
			t.Errorf("ParsePrice(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseDate_Formats(t *testing.T) {
	want := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"15.01.2026", "15.01.26", "15/01/2026", "2026-01-15"} {
		if got := ParseDate(raw); !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestParseLines_FullReceipt(t *testing.T) {
	lines := []string{
		"REMA 1000 Torggata",
		"Torggata 2, 0181 Oslo",
		"15.01.2026",
		"",
		"TINE LETTMELK 1L    24,90",
		"GULROT BELGIA 1KG   15,50",
		"PANT 2 x 3,00        6,00",
		"RABATT             -10,00",
		"TOTAL               36,40",
		"BETALT VISA",
	}

	parsed := ParseLines(lines)

	if parsed.MerchantName != "REMA 1000" {
		t.Errorf("expected REMA 1000, got %q", parsed.MerchantName)
	}
	if parsed.StoreLocation == nil || *parsed.StoreLocation != "Torggata 2, 0181 Oslo" {
		t.Errorf("unexpected location: %v", parsed.StoreLocation)
	}
	wantDate := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !parsed.PurchaseDate.Equal(wantDate) {
		t.Errorf("unexpected date: %s", parsed.PurchaseDate)
	}
	if parsed.PaymentMethod == nil || *parsed.PaymentMethod != "BETALT VISA" {
		t.Errorf("unexpected payment: %v", parsed.PaymentMethod)
	}

	if len(parsed.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(parsed.Items))
	}

	milk := parsed.Items[0]
	if milk.RawName != "TINE LETTMELK 1L" || !milk.TotalPrice.Equal(dec("24.90")) {
		t.Errorf("unexpected first item: %+v", milk)
	}
	if milk.CanonicalName == nil || *milk.CanonicalName != "TINE LETTMELK 1L" {
		t.Errorf("unexpected canonical name: %v", milk.CanonicalName)
	}

	pant := parsed.Items[2]
	if !pant.IsPant {
		t.Error("expected pant line flagged")
	}
	if pant.CanonicalName != nil {
		t.Error("pant lines must not get a canonical name")
	}
	if pant.Quantity == nil || !pant.Quantity.Equal(dec("2")) {
		t.Errorf("expected pant quantity 2, got %v", pant.Quantity)
	}

	discount := parsed.Items[3]
	if !discount.DiscountAmount.Equal(dec("10.00")) {
		t.Errorf("expected discount 10.00, got %s", discount.DiscountAmount)
	}

	// 24.90 + 15.50 + 6.00 - 10.00
	if !parsed.TotalAmount.Equal(dec("36.40")) {
		t.Errorf("expected total 36.40, got %s", parsed.TotalAmount)
	}
}

func TestParseLines_SkipsTotalLine(t *testing.T) {
	lines := []string{
		"BRD GROVT  32,00",
		"TOTALT     32,00",
	}

	parsed := ParseLines(lines)

	if len(parsed.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(parsed.Items))
	}
	if parsed.Items[0].CanonicalName == nil || *parsed.Items[0].CanonicalName != "BRØD GROVT" {
		t.Errorf("abbreviation not expanded: %v", parsed.Items[0].CanonicalName)
	}
}

func TestParseLines_UnknownMerchant(t *testing.T) {
	parsed := ParseLines([]string{"NÆRBUTIKKEN AS", "EPLER  20,00"})

	if parsed.MerchantName != "Unknown" {
		t.Errorf("expected Unknown, got %q", parsed.MerchantName)
	}
	if parsed.Currency != "NOK" {
		t.Errorf("expected NOK, got %q", parsed.Currency)
	}
}
