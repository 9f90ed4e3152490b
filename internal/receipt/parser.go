package receipt

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// fallbackItemName labels items whose name could not be recovered from the
// text, and the synthetic item emitted for an item-less receipt.
const fallbackItemName = "Item"

var (
	// pricePattern matches a currency amount anywhere in a line: optional
	// dollar sign, digits with optional thousands separators, a decimal
	// point and up to two fraction digits.
	pricePattern = regexp.MustCompile(`\$?([\d,]+\.\d{0,2})`)

	// barePricePattern matches a line that is nothing but a price. Receipts
	// often print the amount on its own line below the item name.
	barePricePattern = regexp.MustCompile(`^\$?([\d,]+\.\d{0,2})$`)

	// summaryPattern recognizes the totals block so its lines are not
	// mistaken for purchased items.
	summaryPattern = regexp.MustCompile(`(?i)^(subtotal|total|tax|tip)\b`)

	// Labeled figures are scanned over the whole text, independent of the
	// line walk. The word boundary keeps "total" from matching inside
	// "subtotal".
	subtotalPattern = regexp.MustCompile(`(?i)\bsubtotal[:\s]+\$?([\d,]+\.?\d{2})`)
	taxPattern      = regexp.MustCompile(`(?i)\btax[:\s]+\$?([\d,]+\.?\d{2})`)
	tipPattern      = regexp.MustCompile(`(?i)\btip[:\s]+\$?([\d,]+\.?\d{2})`)
	totalPattern    = regexp.MustCompile(`(?i)\btotal[:\s]+\$?([\d,]+\.?\d{2})`)
)

// lineState classifies one cursor position of the item walk.
type lineState int

const (
	// stateScan: nothing price-like here, move on.
	stateScan lineState = iota
	// statePriceInline: the line carries its own price.
	statePriceInline
	// statePricePending: this line is an item name and the next line is
	// nothing but its price.
	statePricePending
	// stateSummary: a subtotal/tax/tip/total line, handled by the label
	// scan instead of the item walk.
	stateSummary
)

// classify decides how the walk treats the line at the cursor. next is the
// following non-empty line, or "" at the end of input.
func classify(line, next string) lineState {
	if summaryPattern.MatchString(line) {
		return stateSummary
	}
	if pricePattern.MatchString(line) {
		return statePriceInline
	}
	if next != "" && barePricePattern.MatchString(next) {
		return statePricePending
	}
	return stateScan
}

// Parse turns a raw block of OCR text into a receipt draft: line items in
// reading order plus subtotal, tax, tip and total. It never fails; empty or
// garbage input degrades to a single synthetic item priced at the resolved
// subtotal so the caller can always proceed to manual correction.
//
// The walk handles the two layouts receipts actually use: price on the same
// line as the item, and price alone on the following line. The labeled
// figures are matched over the whole text separately because the totals
// block rarely doubles as an item line.
func Parse(rawText string) *Receipt {
	lines := nonEmptyLines(rawText)

	var items []LineItem
	for i := 0; i < len(lines); {
		line := lines[i]
		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}

		switch classify(line, next) {
		case statePriceInline:
			m := pricePattern.FindStringSubmatch(line)
			if price := parsePrice(m[1]); price > 0 {
				name := strings.TrimSpace(strings.Replace(line, m[0], "", 1))
				if name == "" {
					name = fallbackItemName
				}
				items = append(items, LineItem{Name: name, Price: price})
			}
			i++
		case statePricePending:
			m := barePricePattern.FindStringSubmatch(next)
			if price := parsePrice(m[1]); price > 0 {
				items = append(items, LineItem{Name: line, Price: price})
			}
			i += 2
		case stateSummary:
			// A summary label with its amount on the next line still
			// belongs to the totals block, not the item list.
			if next != "" && barePricePattern.MatchString(next) && !pricePattern.MatchString(line) {
				i += 2
			} else {
				i++
			}
		default:
			i++
		}
	}

	subtotal := matchLabel(subtotalPattern, rawText)
	tax := matchLabel(taxPattern, rawText)
	tip := matchLabel(tipPattern, rawText)

	total := matchLabel(totalPattern, rawText)
	if total == 0 {
		total = subtotal + tax + tip
	}
	if subtotal == 0 {
		// May go negative when tax or tip exceed the total; left as-is for
		// the edit surface to correct.
		subtotal = total - tax - tip
	}

	if len(items) == 0 {
		slog.Debug("no line items detected, emitting synthetic item", "subtotal", subtotal)
		items = []LineItem{{Name: fallbackItemName, Price: subtotal}}
	}

	for i := range items {
		items[i].ID = strconv.Itoa(i)
		items[i].AssignedTo = []string{}
	}

	return &Receipt{
		Text:     rawText,
		Items:    items,
		Subtotal: subtotal,
		Tax:      tax,
		Tip:      tip,
		Total:    total,
	}
}

// nonEmptyLines splits the text into trimmed lines, dropping blank ones.
func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parsePrice reads the digits captured by a price pattern. Thousands
// separators are stripped; a value that fails to parse counts as zero and
// produces no item.
func parsePrice(digits string) Amount {
	return ParseAmount(digits)
}

// matchLabel returns the amount of the first labeled figure in the text,
// or zero when the label does not appear.
func matchLabel(pattern *regexp.Regexp, text string) Amount {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	return ParseAmount(m[1])
}
