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

func TestHitokotoFetch(t *testing.T) {
	ctx := context.Background()

	serve := func(t *testing.T, body string, status int) *source.Hitokoto {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.V(t, r.Method).Equal(http.MethodGet)
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		t.Cleanup(ts.Close)
		return source.NewHitokoto(source.WithHitokotoURL(ts.URL))
	}

	t.Run("short author is appended", func(t *testing.T) {
		src := serve(t, `{"hitokoto":"海内存知己","from":"王勃"}`, http.StatusOK)
		quote, err := src.Fetch(ctx)
		gt.NoError(t, err)
		gt.V(t, quote.Text).Equal("海内存知己")
		gt.V(t, quote.Author).Equal("王勃")
		gt.V(t, quote.Display()).Equal("海内存知己\n— 王勃")
		gt.V(t, quote.Source).Equal(model.SourceHitokoto)
	})

	t.Run("single-rune author is appended", func(t *testing.T) {
		src := serve(t, `{"hitokoto":"text","from":"鲁"}`, http.StatusOK)
		quote, err := src.Fetch(ctx)
		gt.NoError(t, err)
		gt.V(t, quote.Display()).Equal("text\n— 鲁")
	})

	t.Run("anonymous sentinel is dropped", func(t *testing.T) {
		src := serve(t, `{"hitokoto":"text","from":"网络"}`, http.StatusOK)
		quote, err := src.Fetch(ctx)
		gt.NoError(t, err)
		gt.V(t, quote.Author).Equal("")
		gt.V(t, quote.Display()).Equal("text")
	})

	t.Run("author at the 15-rune cap is dropped", func(t *testing.T) {
		src := serve(t, `{"hitokoto":"text","from":"一二三四五六七八九十一二三四五"}`, http.StatusOK)
		quote, err := src.Fetch(ctx)
		gt.NoError(t, err)
		gt.V(t, quote.Author).Equal("")
	})

	t.Run("author under the cap is kept", func(t *testing.T) {
		src := serve(t, `{"hitokoto":"text","from":"一二三四五六七八九十一二三四"}`, http.StatusOK)
		quote, err := src.Fetch(ctx)
		gt.NoError(t, err)
		gt.V(t, quote.Author).Equal("一二三四五六七八九十一二三四")
	})

	t.Run("missing author gives bare text", func(t *testing.T) {
		src := serve(t, `{"hitokoto":"text"}`, http.StatusOK)
		quote, err := src.Fetch(ctx)
		gt.NoError(t, err)
		gt.V(t, quote.Display()).Equal("text")
	})

	t.Run("server error", func(t *testing.T) {
		src := serve(t, `oops`, http.StatusInternalServerError)
		_, err := src.Fetch(ctx)
		gt.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		src := serve(t, `{not json`, http.StatusOK)
		_, err := src.Fetch(ctx)
		gt.Error(t, err)
	})

	t.Run("empty text field", func(t *testing.T) {
		src := serve(t, `{"hitokoto":"  ","from":"x"}`, http.StatusOK)
		_, err := src.Fetch(ctx)
		gt.Error(t, err)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		src := source.NewHitokoto(source.WithHitokotoURL("http://127.0.0.1:1"))
		_, err := src.Fetch(ctx)
		gt.Error(t, err)
	})
}

func TestHitokotoEnabled(t *testing.T) {
	src := source.NewHitokoto()
	gt.V(t, src.Enabled()).Equal(true)
	gt.V(t, src.Name()).Equal(model.SourceHitokoto)
}
