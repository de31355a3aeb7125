package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kokoro/pkg/model"
	"github.com/m-mizutani/kokoro/pkg/source"
)

func TestQuotableFetch(t *testing.T) {
	ctx := context.Background()

	serve := func(t *testing.T, body string) *source.Quotable {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		t.Cleanup(ts.Close)
		return source.NewQuotable(source.WithQuotableURL(ts.URL))
	}

	t.Run("author under the 10-rune cap is kept", func(t *testing.T) {
		src := serve(t, `{"content":"Stay hungry","author":"Jobs"}`)
		quote, err := src.Fetch(ctx)
		gt.NoError(t, err)
		gt.V(t, quote.Display()).Equal("Stay hungry\n— Jobs")
		gt.V(t, quote.Source).Equal(model.SourceQuotable)
	})

	t.Run("author at the cap is dropped", func(t *testing.T) {
		src := serve(t, `{"content":"text","author":"abcdefghij"}`)
		quote, err := src.Fetch(ctx)
		gt.NoError(t, err)
		gt.V(t, quote.Author).Equal("")
	})

	t.Run("nine-rune author is kept", func(t *testing.T) {
		src := serve(t, `{"content":"text","author":"abcdefghi"}`)
		quote, err := src.Fetch(ctx)
		gt.NoError(t, err)
		gt.V(t, quote.Author).Equal("abcdefghi")
	})

	t.Run("empty content", func(t *testing.T) {
		src := serve(t, `{"content":"","author":"x"}`)
		_, err := src.Fetch(ctx)
		gt.Error(t, err)
	})
}
