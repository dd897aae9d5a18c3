package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/bvggrabber/bvg-cli/internal/model"
)

// parseActual reads the real-time board. A page with a form means the station was not
// recognised; its options are the stations the site suggests instead.
func parseActual(doc *goquery.Document, station string, limit int, now time.Time) *model.Response {
	if doc.Find("form").Length() > 0 {
		var candidates []string
		doc.Find("option").Each(func(_ int, s *goquery.Selection) {
			if value, ok := s.Attr("value"); ok && strings.TrimSpace(value) != "" {
				candidates = append(candidates, strings.TrimSpace(value))
			}
		})
		return model.NewCandidatesResponse(station, candidates)
	}

	box := doc.Find("div.ivu_result_box").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == ""
	}).First()
	if box.Length() == 0 {
		return model.NewCandidatesResponse(station, nil)
	}

	departures, err := parseRows(box.Find("tr"), station, now)
	if err != nil {
		return model.NewErrorResponse(station, err)
	}
	if limit > 0 && len(departures) > limit {
		departures = departures[:limit]
	}
	return model.NewResponse(true, station, departures)
}

// parseScheduled reads the timetable board. An error span lists the suggested stations.
func parseScheduled(doc *goquery.Document, station string, now time.Time) *model.Response {
	if doc.Find("span.error").Length() > 0 {
		var candidates []string
		doc.Find("span.select").First().Find("a").Each(func(_ int, s *goquery.Selection) {
			if name := strings.TrimSpace(s.Text()); name != "" {
				candidates = append(candidates, name)
			}
		})
		return model.NewCandidatesResponse(station, candidates)
	}

	body := doc.Find("tbody").First()
	if body.Length() == 0 {
		return model.NewErrorResponse(station, fmt.Errorf("no departure table in page"))
	}

	departures, err := parseRows(body.Find("tr"), station, now)
	if err != nil {
		return model.NewErrorResponse(station, err)
	}
	return model.NewResponse(true, station, departures)
}

// parseRows turns table rows of time, line and destination cells into departures. Rows
// with fewer than three cells are headers or spacers.
func parseRows(rows *goquery.Selection, station string, now time.Time) ([]model.Departure, error) {
	var departures []model.Departure
	var rowErr error

	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return true
		}

		when := strings.TrimSpace(cells.Eq(0).Text())
		line := strings.TrimSpace(cells.Eq(1).Text())
		end := strings.TrimSpace(cells.Eq(2).Text())

		dep, err := model.NewDeparture(station, end, when, line, model.WithReference(now))
		if err != nil {
			log.Debug().Err(err).Int("row", i).Str("time", when).Msg("Unreadable departure row")
			rowErr = fmt.Errorf("row %d: %w", i, err)
			return false
		}
		departures = append(departures, dep)
		return true
	})

	if rowErr != nil {
		return nil, rowErr
	}
	return departures, nil
}
