//nolint:testpackage // Testing internal parsing requires same package access
package search

import (
	"reflect"
	"testing"
	"time"

	"github.com/webboardlab/voc-insight/internal/domain"
	"github.com/webboardlab/voc-insight/internal/testhelpers"
)

func day(d int) time.Time { return testhelpers.Day(2025, 8, d) }

func rec(d int, title, body string) domain.Record {
	r := testhelpers.Rec(day(d), domain.GameNewMatgo, domain.PlatformMobile, "환불", body, domain.SentimentNeutral)
	r.Title = title
	return r
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"환불, 결제", []string{"환불", "결제"}},
		{"  a ,, b ,  ", []string{"a", "b"}},
		{"", nil},
		{" , , ", nil},
	}
	for _, tt := range tests {
		got := ParseKeywords(tt.raw)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseKeywords(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestMatch_EmptyKeywordIsIdentity(t *testing.T) {
	records := []domain.Record{rec(1, "a", "b"), rec(2, "c", "d")}

	for _, raw := range []string{"", "  ", ",,,"} {
		got := Match(records, raw)
		if !reflect.DeepEqual(got, records) {
			t.Errorf("Match(records, %q) != records", raw)
		}
	}
}

func TestMatch_DuplicateTokensIdempotent(t *testing.T) {
	records := []domain.Record{rec(1, "환불 요청", "b"), rec(2, "로그인", "b")}

	single := Match(records, "환불")
	double := Match(records, "환불,환불")
	if !reflect.DeepEqual(single, double) {
		t.Errorf("duplicate tokens changed the result: %v vs %v", single, double)
	}
}

func TestMatch_CaseInsensitiveAcrossTitleAndBody(t *testing.T) {
	records := []domain.Record{
		rec(1, "REFUND request", "no body match"),
		rec(2, "no title match", "please refund me"),
		rec(3, "nothing", "here"),
	}

	got := Match(records, "refund")
	if len(got) != 2 {
		t.Errorf("got %d matches, want 2", len(got))
	}
}

func TestMatch_ORAcrossTokens(t *testing.T) {
	records := []domain.Record{
		rec(1, "환불 문의", "b"),
		rec(2, "로그인 안됨", "b"),
		rec(3, "이벤트 질문", "b"),
	}

	got := Match(records, "환불, 로그인")
	if len(got) != 2 {
		t.Errorf("got %d matches, want 2", len(got))
	}
}

func TestMatch_RegexMetacharactersAreLiteral(t *testing.T) {
	records := []domain.Record{
		rec(1, "what?", "b"),
		rec(2, "whatX", "b"),
	}

	// "t?" must match the literal question mark, not make "t" optional.
	got := Match(records, "t?")
	if len(got) != 1 || got[0].Title != "what?" {
		t.Errorf("metacharacter leaked into regex: got %v", got)
	}
}

func TestTrend_UsesMatchedSubset(t *testing.T) {
	records := []domain.Record{
		rec(1, "환불", "b"),
		rec(1, "환불", "b"),
		rec(3, "환불", "b"),
		rec(2, "로그인", "b"), // excluded by keyword
	}
	r := domain.DateRange{Start: day(1), End: day(3)}

	series := Trend(records, "환불", r)
	if len(series) != 3 {
		t.Fatalf("series length = %d, want 3", len(series))
	}
	wantCounts := []int{2, 0, 1}
	for i, want := range wantCounts {
		if series[i].Count != want {
			t.Errorf("series[%d].Count = %d, want %d", i, series[i].Count, want)
		}
	}
}
