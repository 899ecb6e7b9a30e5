package pdga

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	digitsPattern     = regexp.MustCompile(`\d+`)
	playerHrefPattern = regexp.MustCompile(`/player/(\d+)`)
)

// pageTitle extracts the tournament name from the page title, which reads
// "Tournament Name | Professional Disc Golf Association".
func pageTitle(doc *goquery.Document) string {
	title := doc.Find("title").First().Text()
	if title == "" {
		return ""
	}
	return strings.TrimSpace(strings.Split(title, "|")[0])
}

// parseDivisionResults pulls one division's finisher rows out of an event
// page. The division header is an h3 whose id is the division code; its
// results table sits inside the enclosing details element, or failing that,
// is the next results table after the header.
func parseDivisionResults(doc *goquery.Document, division string) ([]ResultRow, error) {
	header := doc.Find(fmt.Sprintf("h3.division#%s", division)).First()
	if header.Length() == 0 {
		return nil, &PDGAError{
			Type:    "parse_error",
			Message: fmt.Sprintf("division %s not found on event page", division),
		}
	}

	var table *goquery.Selection
	if details := header.Closest("details"); details.Length() > 0 {
		table = details.Find("table.results").First()
	} else {
		table = header.NextAllFiltered("table.results").First()
	}
	if table == nil || table.Length() == 0 {
		return nil, &PDGAError{
			Type:    "parse_error",
			Message: fmt.Sprintf("no results table for division %s", division),
		}
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		// No tbody: take every row but the header.
		all := table.Find("tr")
		if all.Length() > 1 {
			rows = all.Slice(1, all.Length())
		} else {
			rows = all.Slice(0, 0)
		}
	}

	var results []ResultRow
	rows.Each(func(i int, row *goquery.Selection) {
		placeText := strings.TrimSpace(row.Find("td.place").First().Text())
		placeDigits := digitsPattern.FindString(placeText)
		if placeDigits == "" {
			return
		}
		placement, err := strconv.Atoi(placeDigits)
		if err != nil {
			return
		}

		link := row.Find("td.player a").First()
		if link.Length() == 0 {
			return
		}
		name := strings.TrimSpace(link.Text())

		pdgaNumber := 0
		if href, ok := link.Attr("href"); ok {
			if m := playerHrefPattern.FindStringSubmatch(href); m != nil {
				pdgaNumber, _ = strconv.Atoi(m[1])
			}
		}
		if pdgaNumber == 0 {
			numText := strings.TrimSpace(row.Find("td.pdga-number").First().Text())
			if digits := digitsPattern.FindString(numText); digits != "" {
				pdgaNumber, _ = strconv.Atoi(digits)
			}
		}
		if pdgaNumber == 0 {
			return
		}

		results = append(results, ResultRow{
			Placement:  placement,
			PDGANumber: pdgaNumber,
			Name:       name,
			Tied:       strings.Contains(strings.ToUpper(placeText), "T"),
		})
	})

	return results, nil
}
