package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/peterldowns/testy/check"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	recorder := httptest.NewRecorder()
	c.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(recorder.Result().Body)
	check.Nil(t, err)
	return string(body)
}

func TestCollector_RecordEvaluation(t *testing.T) {
	c := NewCollector(nil)

	c.RecordEvaluation(120*time.Millisecond, "SNB")
	c.RecordEvaluation(80*time.Millisecond, "SNB")
	c.RecordEvaluation(50*time.Millisecond, "")

	body := scrape(t, c)
	check.True(t, strings.Contains(body, "welcomebid_evaluations_total 3"))
	check.True(t, strings.Contains(body, `welcomebid_wins_total{bank="SNB"} 2`))
	check.True(t, strings.Contains(body, "welcomebid_evaluations_no_winner_total 1"))
}

func TestCollector_IndependentRegistries(t *testing.T) {
	first := NewCollector(nil)
	second := NewCollector(nil)

	first.RecordOfferSubmitted()

	check.True(t, strings.Contains(scrape(t, first), "welcomebid_offers_submitted_total 1"))
	check.True(t, strings.Contains(scrape(t, second), "welcomebid_offers_submitted_total 0"))
}

func TestCollector_CounterOfferRaises(t *testing.T) {
	c := NewCollector(nil)

	c.RecordCounterOfferRaises(3)
	c.RecordCounterOfferRaises(2)

	check.True(t, strings.Contains(scrape(t, c), "welcomebid_counter_offer_raises_total 5"))
}
