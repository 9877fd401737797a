package craft

import (
	"context"
	"testing"
)

func TestRenderString(t *testing.T) {
	tests := []struct {
		name   string
		html   string
		expect string
	}{
		{"raw markup", "<b>bold</b>", "<b>bold</b>"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderString(context.Background(), Raw(tt.html))
			if err != nil {
				t.Fatalf("RenderString() error = %v", err)
			}
			if got != tt.expect {
				t.Errorf("RenderString() = %q, want %q", got, tt.expect)
			}
		})
	}

	if got, err := RenderString(context.Background(), nil); err != nil || got != "" {
		t.Errorf("RenderString(nil) = %q, %v", got, err)
	}
}

func TestText_Escapes(t *testing.T) {
	got, err := RenderString(context.Background(), Text(`<script>"x"</script>`))
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if got != "&lt;script&gt;&#34;x&#34;&lt;/script&gt;" {
		t.Errorf("Text() rendered %q", got)
	}
}

func TestMarkup_ReceivesID(t *testing.T) {
	tmpl := Markup(func(id string) string { return `<div id="` + id + `-body"></div>` })
	got, err := RenderString(context.Background(), tmpl("Card_3"))
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if got != `<div id="Card_3-body"></div>` {
		t.Errorf("Markup() rendered %q", got)
	}
}
