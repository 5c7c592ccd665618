package upsell_test

import (
	"testing"

	"seatservice/internal/domain/upsell"
)

func TestPromptVisibility(t *testing.T) {
	p := upsell.New(upsell.Links{UpgradeURL: "/plan/upgrade", SalesURL: "https://example.com/sales"})
	if p.IsOpen() {
		t.Fatalf("new prompt should be closed")
	}
	if p.UpgradeURL != "/plan/upgrade" || p.Title == "" {
		t.Fatalf("unexpected prompt %+v", p)
	}

	p.Open()
	if !p.IsOpen() {
		t.Fatalf("prompt should be open")
	}
	p.Close()
	if p.IsOpen() {
		t.Fatalf("prompt should be closed again")
	}
}
