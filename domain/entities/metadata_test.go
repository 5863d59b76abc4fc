package entities

import "testing"

func TestNewMetadata(t *testing.T) {
	metadata := NewMetadata("chicago", "report", "shell", "month: january, day: all")

	if metadata.GetCity() != "chicago" || metadata.GetType() != "report" || metadata.GetProducer() != "shell" {
		t.Errorf("unexpected metadata: %+v", metadata)
	}
	if metadata.GetMessage() != "month: january, day: all" {
		t.Errorf("message = %q", metadata.GetMessage())
	}
	if metadata.GeneratedAt.IsZero() {
		t.Error("expected a generation time")
	}

	other := NewMetadata("chicago", "report", "shell", "month: january, day: all")
	if metadata.GetID() == "" || metadata.GetID() == other.GetID() {
		t.Errorf("expected distinct ids, got %q and %q", metadata.GetID(), other.GetID())
	}
}
