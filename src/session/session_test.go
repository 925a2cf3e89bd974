package session

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sofmeright/reviewbadge/src/badge"
	"github.com/sofmeright/reviewbadge/src/blob"
	"github.com/sofmeright/reviewbadge/src/colors"
	"github.com/sofmeright/reviewbadge/src/config"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func newSession(t *testing.T, layout config.LayoutID, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	s, err := New(context.Background(), config.Defaults(layout), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestRatingSelection(t *testing.T) {
	for _, w := range config.RatingWholes() {
		for _, f := range config.RatingFractions() {
			t.Run(w+f, func(t *testing.T) {
				within := w != "5" || f == ".0"

				// Whole part chosen after the fraction.
				s := newSession(t, config.Layout1)
				if err := s.SelectRatingWhole("1"); err != nil {
					t.Fatalf("SelectRatingWhole(1): %v", err)
				}
				if err := s.SelectRatingFraction(f); err != nil {
					t.Fatalf("SelectRatingFraction(%s): %v", f, err)
				}
				if err := s.SelectRatingWhole(w); err != nil {
					t.Fatalf("SelectRatingWhole(%s): %v", w, err)
				}
				want := w + f
				if !within {
					want = "5.0"
				}
				if got := s.Snapshot().AverageRating(); got != want {
					t.Errorf("rating = %s, want %s", got, want)
				}
				if !s.RatingValid() {
					t.Error("rating marked invalid")
				}

				// Fraction chosen after the whole part.
				s = newSession(t, config.Layout1)
				if err := s.SelectRatingWhole(w); err != nil {
					t.Fatalf("SelectRatingWhole(%s): %v", w, err)
				}
				err := s.SelectRatingFraction(f)
				if within {
					if err != nil {
						t.Fatalf("SelectRatingFraction(%s): %v", f, err)
					}
					if got := s.Snapshot().AverageRating(); got != w+f {
						t.Errorf("rating = %s, want %s", got, w+f)
					}
					return
				}
				if !errors.Is(err, config.ErrRatingTooHigh) {
					t.Fatalf("SelectRatingFraction(%s) error = %v, want ErrRatingTooHigh", f, err)
				}
				if s.RatingValid() {
					t.Error("rating still marked valid after overflow")
				}
				if got := s.Snapshot().AverageRating(); got != "5.0" {
					t.Errorf("rating changed to %s after rejected edit", got)
				}
			})
		}
	}
}

func TestRatingRejectsUnknownParts(t *testing.T) {
	s := newSession(t, config.Layout1)
	if err := s.SelectRatingWhole("6"); err == nil {
		t.Error("SelectRatingWhole(6) succeeded")
	}
	if err := s.SelectRatingFraction(".55"); err == nil {
		t.Error("SelectRatingFraction(.55) succeeded")
	}
	if got := s.Snapshot().AverageRating(); got != "5.0" {
		t.Errorf("rating = %s after rejected edits, want 5.0", got)
	}
}

func TestSetLinkKeepsPreviousOnError(t *testing.T) {
	s := newSession(t, config.Layout2)
	if err := s.SetLink("https://example.com/reviews"); err != nil {
		t.Fatalf("SetLink: %v", err)
	}
	if err := s.SetLink("not a url"); !errors.Is(err, config.ErrInvalidURL) {
		t.Fatalf("SetLink(not a url) error = %v, want ErrInvalidURL", err)
	}
	if got := s.Snapshot().OpenLink; got != "https://example.com/reviews" {
		t.Errorf("OpenLink = %q after rejected edit", got)
	}
}

func TestSetColorKeepsPreviousOnError(t *testing.T) {
	s := newSession(t, config.Layout1)
	if err := s.SetColor(colors.Background, "transparent"); err != nil {
		t.Fatalf("SetColor(transparent): %v", err)
	}
	if err := s.SetColor(colors.Background, "#12345"); !errors.Is(err, colors.ErrMalformedHex) {
		t.Fatalf("SetColor(#12345) error = %v, want ErrMalformedHex", err)
	}
	if got := s.Snapshot().Colors.Background; got != colors.Transparent {
		t.Errorf("background = %q after rejected edit", got)
	}
}

func TestSetLayoutAppliesDefaults(t *testing.T) {
	s := newSession(t, config.Layout1)
	if got := s.Snapshot().VerifiedText; got != "Powered by" {
		t.Fatalf("layout-1 verified text = %q", got)
	}

	if err := s.SetLayout(config.Layout3); err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	b := s.Snapshot()
	if b.VerifiedText != "Verified by" {
		t.Errorf("layout-3 verified text = %q, want Verified by", b.VerifiedText)
	}
	if b.Colors.Text != config.DefaultTextColor(config.Layout3) {
		t.Errorf("layout-3 text colour = %q", b.Colors.Text)
	}
}

func TestSetLayoutKeepsOverrides(t *testing.T) {
	s := newSession(t, config.Layout1)
	if err := s.SetText(badge.FieldVerifiedText, "Checked by"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if err := s.SetColor(colors.Text, "#123456"); err != nil {
		t.Fatalf("SetColor: %v", err)
	}

	if err := s.SetLayout(config.Layout3); err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	b := s.Snapshot()
	if b.VerifiedText != "Checked by" {
		t.Errorf("verified text = %q, want the user's value", b.VerifiedText)
	}
	if b.Colors.Text != "#123456" {
		t.Errorf("text colour = %q, want the user's value", b.Colors.Text)
	}
	if b.Colors.RatingNumber != config.DefaultTextColor(config.Layout3) {
		t.Errorf("untouched rating number colour = %q, want layout default", b.Colors.RatingNumber)
	}
}

func TestSetLayoutRejectsUnknown(t *testing.T) {
	s := newSession(t, config.Layout2)
	if err := s.SetLayout("layout-9"); !errors.Is(err, badge.ErrUnsupportedLayout) {
		t.Fatalf("SetLayout(layout-9) error = %v, want ErrUnsupportedLayout", err)
	}
	if got := s.Snapshot().Layout; got != config.Layout2 {
		t.Errorf("layout = %s after rejected switch", got)
	}
}

func TestSetLayoutResolvesLogoAsset(t *testing.T) {
	s := newSession(t, config.Layout2)
	if err := s.SelectLogo(config.LogoFacebook); err != nil {
		t.Fatalf("SelectLogo: %v", err)
	}
	if got := s.Snapshot().LogoURL; got != "/facebook_blue.svg" {
		t.Errorf("layout-2 facebook logo = %q", got)
	}

	if err := s.SetLayout(config.Layout4); err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	if got := s.Snapshot().LogoURL; got != "/facebook_white.svg" {
		t.Errorf("layout-4 facebook logo = %q", got)
	}

	if err := s.SelectLogo(config.LogoGoogle); err != nil {
		t.Fatalf("SelectLogo: %v", err)
	}
	if got := s.Snapshot().LogoURL; got != "/logos_google_small.svg" {
		t.Errorf("layout-4 google logo = %q", got)
	}
}

func TestSlotsReleaseHandles(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, config.Layout1)
	small := pngOf(t, 40, 40)

	if _, err := s.DropSlot(ctx, 0, "a.png", small); err != nil {
		t.Fatalf("DropSlot: %v", err)
	}
	first := s.LogoSlots()[0]
	if _, err := s.DropSlot(ctx, 0, "b.png", small); err != nil {
		t.Fatalf("DropSlot (replace): %v", err)
	}
	if got := s.Store().Live(); got != 1 {
		t.Errorf("live handles after replace = %d, want 1", got)
	}
	if _, _, err := s.Store().Open(first); !errors.Is(err, blob.ErrUnknownHandle) {
		t.Errorf("replaced handle still readable: %v", err)
	}

	if err := s.RemoveSlot(0); err != nil {
		t.Fatalf("RemoveSlot: %v", err)
	}
	if got := s.Store().Live(); got != 0 {
		t.Errorf("live handles after remove = %d, want 0", got)
	}
	if got := s.LogoSlots(); len(got) != 1 || got[0] != "" {
		t.Errorf("slots after remove = %v, want one empty slot", got)
	}
}

func TestLeavingLayout1ClearsSlots(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, config.Layout1)
	small := pngOf(t, 40, 40)

	for i := 0; i < 3; i++ {
		if i > 0 {
			if err := s.AddSlot(); err != nil {
				t.Fatalf("AddSlot: %v", err)
			}
		}
		if _, err := s.DropSlot(ctx, i, "logo.png", small); err != nil {
			t.Fatalf("DropSlot(%d): %v", i, err)
		}
	}
	if got := s.Store().Live(); got != 3 {
		t.Fatalf("live handles = %d, want 3", got)
	}

	if err := s.SetLayout(config.Layout2); err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	if got := s.Store().Live(); got != 0 {
		t.Errorf("live handles after leaving layout-1 = %d, want 0", got)
	}
	if got := s.LogoSlots(); len(got) != 1 || got[0] != "" {
		t.Errorf("slots after leaving layout-1 = %v, want one empty slot", got)
	}
	if got := s.Snapshot().LogoList; got != nil {
		t.Errorf("LogoList on layout-2 = %v, want nil", got)
	}
}

func TestSlotBounds(t *testing.T) {
	s := newSession(t, config.Layout1)
	for i := 1; i < config.MaxLogos; i++ {
		if err := s.AddSlot(); err != nil {
			t.Fatalf("AddSlot %d: %v", i, err)
		}
	}
	if err := s.AddSlot(); !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("AddSlot beyond %d error = %v, want ErrSlotOutOfRange", config.MaxLogos, err)
	}
	if got := len(s.Snapshot().LogoList); got != config.MaxLogos {
		t.Errorf("LogoList length = %d, want %d", got, config.MaxLogos)
	}

	if _, err := s.DropSlot(context.Background(), 7, "x.png", pngOf(t, 1, 1)); !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("DropSlot(7) error = %v, want ErrSlotOutOfRange", err)
	}
	if err := s.RemoveSlot(-1); !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("RemoveSlot(-1) error = %v, want ErrSlotOutOfRange", err)
	}
	if got := s.Store().Live(); got != 0 {
		t.Errorf("live handles = %d, want 0", got)
	}
}

func TestOversizeWarning(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, config.Layout1)

	warning, err := s.DropSlot(ctx, 0, "big.png", pngOf(t, 60, 60))
	if err != nil {
		t.Fatalf("DropSlot: %v", err)
	}
	want := `Warning: Image "big.png" exceeds recommended size of 50x50 pixels.`
	if warning != want || s.Warning() != want {
		t.Errorf("warning = %q, want %q", warning, want)
	}
	if got := s.LogoSlots()[0]; got == "" {
		t.Error("oversized image was not accepted")
	}

	if warning, _ = s.DropSlot(ctx, 0, "ok.png", pngOf(t, 50, 50)); warning != "" {
		t.Errorf("warning after a fitting upload = %q, want cleared", warning)
	}

	if _, err := s.DropSlot(ctx, 0, "big.png", pngOf(t, 60, 60)); err != nil {
		t.Fatalf("DropSlot: %v", err)
	}
	s.DismissWarning()
	if got := s.Warning(); got != "" {
		t.Errorf("warning after dismiss = %q", got)
	}
}

func TestDropSlotRejectsNonImage(t *testing.T) {
	s := newSession(t, config.Layout1)
	if _, err := s.DropSlot(context.Background(), 0, "notes.txt", []byte("hello, world")); !errors.Is(err, blob.ErrNotImage) {
		t.Fatalf("DropSlot(text) error = %v, want ErrNotImage", err)
	}
	if got := s.LogoSlots()[0]; got != "" {
		t.Errorf("slot = %q after rejected drop", got)
	}
}

func TestDropSlotRejectedOutsideLayout1(t *testing.T) {
	s := newSession(t, config.Layout3)
	if _, err := s.DropSlot(context.Background(), 0, "a.png", pngOf(t, 10, 10)); !errors.Is(err, ErrNoLogoSlots) {
		t.Fatalf("DropSlot on layout-3 error = %v, want ErrNoLogoSlots", err)
	}
	if got := s.Store().Live(); got != 0 {
		t.Errorf("live handles = %d after rejected drop, want 0", got)
	}
	if got := s.Snapshot().LogoList; got != nil {
		t.Errorf("LogoList = %v on layout-3", got)
	}
}

func TestUploadOtherLogo(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, config.Layout2)
	if err := s.SelectLogo(config.LogoOther); err != nil {
		t.Fatalf("SelectLogo: %v", err)
	}
	if got := s.Snapshot().LogoURL; got != "" {
		t.Errorf("other with no uploads LogoURL = %q, want empty", got)
	}

	if _, err := s.Upload(ctx, "first.png", pngOf(t, 100, 40)); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	warning, err := s.Upload(ctx, "second.png", pngOf(t, 200, 40))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if want := `Warning: Image "second.png" exceeds recommended size of 160x55 pixels.`; warning != want {
		t.Errorf("warning = %q, want %q", warning, want)
	}

	b := s.Snapshot()
	if len(b.Uploads) != 2 || b.LogoURL != b.Uploads[1] {
		t.Fatalf("LogoURL = %q, uploads = %v: want the newest upload", b.LogoURL, b.Uploads)
	}

	if err := s.RemoveUpload(1); err != nil {
		t.Fatalf("RemoveUpload: %v", err)
	}
	b = s.Snapshot()
	if b.LogoURL != b.Uploads[0] {
		t.Errorf("LogoURL after remove = %q, want first remaining upload", b.LogoURL)
	}
	if err := s.RemoveUpload(0); err != nil {
		t.Fatalf("RemoveUpload: %v", err)
	}
	if got := s.Snapshot().LogoURL; got != "" {
		t.Errorf("LogoURL with no uploads = %q", got)
	}
	if got := s.Store().Live(); got != 0 {
		t.Errorf("live handles = %d, want 0", got)
	}
	if err := s.RemoveUpload(0); !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("RemoveUpload on empty list error = %v", err)
	}
}

func TestUpdate(t *testing.T) {
	s := newSession(t, config.Layout1)

	err := s.Update(func(b config.Badge) config.Badge {
		b.StoreName = "Corner Shop"
		b.LogoList = []string{"a", "b", "c"}
		return b
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	b := s.Snapshot()
	if b.StoreName != "Corner Shop" {
		t.Errorf("StoreName = %q", b.StoreName)
	}
	if len(b.LogoList) != 1 || b.LogoList[0] != "" {
		t.Errorf("Update changed session-owned LogoList: %v", b.LogoList)
	}

	err = s.Update(func(b config.Badge) config.Badge {
		b.OpenLink = "not a url"
		b.StoreName = "Other"
		return b
	})
	if err == nil {
		t.Fatal("Update with invalid link succeeded")
	}
	if got := s.Snapshot().StoreName; got != "Corner Shop" {
		t.Errorf("StoreName = %q after rejected update", got)
	}

	err = s.Update(func(b config.Badge) config.Badge {
		b.Layout = config.Layout3
		return b
	})
	if err != nil {
		t.Fatalf("Update(layout): %v", err)
	}
	if got := s.Snapshot().VerifiedText; got != "Verified by" {
		t.Errorf("verified text after layout update = %q", got)
	}
}

func TestUpdateLogoReresolves(t *testing.T) {
	s := newSession(t, config.Layout2)
	if got := s.Snapshot().LogoURL; got != "/logos_google.svg" {
		t.Fatalf("initial LogoURL = %q", got)
	}

	err := s.Update(func(b config.Badge) config.Badge {
		b.Logo = config.LogoFacebook
		return b
	})
	if err != nil {
		t.Fatalf("Update(logo): %v", err)
	}
	b := s.Snapshot()
	if b.Logo != config.LogoFacebook || b.LogoURL != "/facebook_blue.svg" {
		t.Errorf("logo=%s url=%q, want facebook /facebook_blue.svg", b.Logo, b.LogoURL)
	}
}

// gatedGenerator returns the badge's text once the gate for that text opens.
type gatedGenerator struct {
	started chan string
	gates   map[string]chan struct{}
}

func (g *gatedGenerator) Generate(ctx context.Context, b config.Badge, _ config.LayoutID) (string, error) {
	g.started <- b.Text
	if gate, ok := g.gates[b.Text]; ok {
		<-gate
	}
	if b.Text == "fail" {
		return "", errors.New("generation failed")
	}
	return b.Text, nil
}

func TestGenerateLastWriteWins(t *testing.T) {
	gen := &gatedGenerator{
		started: make(chan string, 4),
		gates:   map[string]chan struct{}{"first": make(chan struct{})},
	}
	s := newSession(t, config.Layout1, WithGenerator(gen))
	ctx := context.Background()

	if err := s.SetText(badge.FieldText, "first"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	done := make(chan string)
	go func() {
		html, _ := s.Generate(ctx)
		done <- html
	}()
	<-gen.started

	if err := s.SetText(badge.FieldText, "second"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	html, err := s.Generate(ctx)
	<-gen.started
	if err != nil || html != "second" {
		t.Fatalf("Generate = %q, %v", html, err)
	}

	close(gen.gates["first"])
	if stale := <-done; stale != "first" {
		t.Errorf("stale generation returned %q, want its own snapshot", stale)
	}
	if got := s.GeneratedHTML(); got != "second" {
		t.Errorf("cached HTML = %q, want the newest generation", got)
	}
	if got := s.Snapshot().GeneratedHTML; got != "second" {
		t.Errorf("snapshot GeneratedHTML = %q", got)
	}
}

func TestGenerateErrorKeepsCache(t *testing.T) {
	gen := &gatedGenerator{started: make(chan string, 4)}
	s := newSession(t, config.Layout1, WithGenerator(gen))
	ctx := context.Background()

	if _, err := s.Generate(ctx); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	cached := s.GeneratedHTML()

	if err := s.SetText(badge.FieldText, "fail"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if _, err := s.Generate(ctx); err == nil {
		t.Fatal("Generate succeeded, want error")
	}
	if got := s.GeneratedHTML(); got != cached {
		t.Errorf("cached HTML = %q after failure, want %q", got, cached)
	}
}

func TestGenerateInlinesSlots(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, config.Layout1)
	if err := s.AddSlot(); err != nil {
		t.Fatalf("AddSlot: %v", err)
	}
	if _, err := s.DropSlot(ctx, 1, "logo.png", pngOf(t, 10, 10)); err != nil {
		t.Fatalf("DropSlot: %v", err)
	}

	html, err := s.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := strings.Count(html, `<img src="data:image/png;base64,`); got != 1 {
		t.Errorf("inlined images = %d, want 1", got)
	}
	if strings.Contains(html, "blob:") {
		t.Error("exported HTML still references a blob handle")
	}

	preview, err := s.Preview()
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.Contains(preview, `src="blob:`) {
		t.Error("preview should reference the upload handle directly")
	}
}

func TestNewHydratesLocalFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), pngOf(t, 10, 10), 0o644); err != nil {
		t.Fatalf("writing logo: %v", err)
	}

	cfg := config.Defaults(config.Layout1)
	cfg.Badge.LogoList = []string{"logo.png", "", "https://example.com/logo.png"}

	s, err := New(context.Background(), cfg, WithBaseDir(dir), WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	slots := s.LogoSlots()
	if len(slots) != 3 {
		t.Fatalf("slots = %v, want 3", slots)
	}
	if !blob.IsRef(slots[0]) || slots[1] != "" || slots[2] != "https://example.com/logo.png" {
		t.Errorf("slots = %v", slots)
	}
	if got := s.Store().Live(); got != 1 {
		t.Errorf("live handles = %d, want 1", got)
	}

	s.Close()
	if got := s.Store().Live(); got != 0 {
		t.Errorf("live handles after Close = %d, want 0", got)
	}
}

func TestNewKeepsConfiguredOverrides(t *testing.T) {
	cfg := config.Defaults(config.Layout1)
	cfg.Badge.VerifiedText = "Trusted by"
	cfg.Badge.Colors.Background = colors.Transparent

	s, err := New(context.Background(), cfg, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if err := s.SetLayout(config.Layout4); err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	b := s.Snapshot()
	if b.VerifiedText != "Trusted by" {
		t.Errorf("verified text = %q, want configured value", b.VerifiedText)
	}
	if b.Colors.Background != colors.Transparent {
		t.Errorf("background = %q, want configured value", b.Colors.Background)
	}
}
