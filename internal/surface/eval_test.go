package surface

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/webpane/internal/bridge"
	"github.com/bnema/webpane/internal/session"
	"github.com/bnema/webpane/internal/toolkit"
)

// newEvalFixture builds a surface whose renderer either reports script
// results natively or falls back to the title channel.
func newEvalFixture(t *testing.T, reportsResults bool) *fixture {
	t.Helper()

	sess, err := session.New("w1")
	require.NoError(t, err)
	sess.Title = "eval"
	sess.Geometry = session.Geometry{Width: 640, Height: 480, Resizable: true}
	sess.Flags.TextSelect = true

	f := &fixture{
		sess:    sess,
		loop:    newFakeLoop(),
		factory: newFakeFactory(),
		reg:     NewRegistry(),
		opener:  &fakeOpener{},
	}
	f.factory.view.reportsResults = reportsResults

	s, err := New(Options{
		Session:  sess,
		Loop:     f.loop,
		Factory:  f.factory,
		Registry: f.reg,
		Opener:   f.opener,
		Strings:  toolkit.DefaultStrings(),
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	f.s = s
	return f
}

func TestEvaluateJS_NativeResultPath(t *testing.T) {
	f := newEvalFixture(t, true)
	f.finishLoad()

	result := "42"
	f.factory.view.autoResult = &result

	got, err := f.s.EvaluateJS("6 * 7")
	require.NoError(t, err)
	assert.Equal(t, float64(42), got)
	assert.Equal(t, 0, f.s.PendingEvaluations())

	// The script went down verbatim, no title-channel wrapping.
	assert.Equal(t, "6 * 7", f.factory.view.lastScript())
}

func TestEvaluateJS_WaitsForLoadedDocument(t *testing.T) {
	f := newEvalFixture(t, true)

	result := `"ok"`
	f.factory.view.autoResult = &result

	done := make(chan any, 1)
	go func() {
		v, _ := f.s.EvaluateJS("1")
		done <- v
	}()

	// Nothing may reach the renderer before the load finishes.
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, f.factory.view.scriptTexts())

	f.finishLoad()

	select {
	case v := <-done:
		assert.Equal(t, "ok", v)
	case <-time.After(time.Second):
		t.Fatal("evaluate never completed after load")
	}
}

func TestEvaluateJS_LegacyTitleChannel(t *testing.T) {
	f := newEvalFixture(t, false)
	f.finishLoad()

	done := make(chan any, 1)
	go func() {
		v, _ := f.s.EvaluateJS("window.answer")
		done <- v
	}()

	// The submitted script must be the title-channel wrapper carrying a
	// call id.
	var callID string
	idRe := regexp.MustCompile(`"uid": "([0-9a-f]+)"`)
	require.Eventually(t, func() bool {
		for _, script := range f.factory.view.scriptTexts() {
			if strings.Contains(script, "document.title = JSON.stringify(") {
				if m := idRe.FindStringSubmatch(script); m != nil {
					callID = m[1]
					return true
				}
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	// The page reports back by rewriting its title.
	f.deliver(toolkit.Event{
		Kind:  toolkit.EventTitleChanged,
		Title: `{"type": "eval", "uid": "` + callID + `", "result": "hi"}`,
	})

	select {
	case v := <-done:
		assert.Equal(t, "hi", v)
	case <-time.After(time.Second):
		t.Fatal("legacy evaluate never resolved")
	}
}

func TestEvaluateJS_DestroyReleasesAllPending(t *testing.T) {
	f := newEvalFixture(t, true)
	f.finishLoad()
	// autoResult stays nil: the renderer never answers.

	const n = 3
	results := make(chan any, n)
	for i := 0; i < n; i++ {
		go func() {
			v, err := f.s.EvaluateJS("while(true){}")
			require.NoError(t, err)
			results <- v
		}()
	}

	require.Eventually(t, func() bool {
		return f.s.PendingEvaluations() == n
	}, time.Second, 5*time.Millisecond)

	f.s.Close()

	for i := 0; i < n; i++ {
		select {
		case v := <-results:
			assert.Equal(t, bridge.NoResult{}, v)
		case <-time.After(time.Second):
			t.Fatal("pending evaluation not released by teardown")
		}
	}
}

func TestEvaluateJS_CloseBeforeLoadReleasesCaller(t *testing.T) {
	f := newEvalFixture(t, true)
	// No load ever finishes: the caller parks on the loaded latch.

	done := make(chan any, 1)
	go func() {
		v, err := f.s.EvaluateJS("1")
		require.NoError(t, err)
		done <- v
	}()

	require.Eventually(t, func() bool {
		return f.s.PendingEvaluations() == 1
	}, time.Second, 5*time.Millisecond)

	f.s.Close()

	select {
	case v := <-done:
		assert.Equal(t, bridge.NoResult{}, v)
	case <-time.After(time.Second):
		t.Fatal("evaluate hung after the window closed before load")
	}
	assert.Equal(t, 0, f.s.PendingEvaluations())
}

func TestCurrentURL_CloseBeforeLoadReleasesCaller(t *testing.T) {
	f := newEvalFixture(t, true)

	type answer struct {
		url string
		ok  bool
	}
	done := make(chan answer, 1)
	go func() {
		url, ok := f.s.CurrentURL()
		done <- answer{url, ok}
	}()

	// Give the caller time to park on the loaded latch.
	time.Sleep(20 * time.Millisecond)
	f.s.Close()

	select {
	case a := <-done:
		assert.False(t, a.ok)
		assert.Empty(t, a.url)
	case <-time.After(time.Second):
		t.Fatal("current-URL query hung after the window closed before load")
	}
}

func TestEvaluateJS_AfterDestroyReturnsNoResult(t *testing.T) {
	f := newEvalFixture(t, true)
	f.finishLoad()
	f.s.Close()

	v, err := f.s.EvaluateJS("1")
	require.NoError(t, err)
	assert.Equal(t, bridge.NoResult{}, v)
}
