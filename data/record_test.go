package data

import "testing"

// --- Record tests ---

func TestNewRecordPlaceholder(t *testing.T) {
	rec := NewRecord(Output("blur", "out", TypeFrame))
	if rec.ID == "" {
		t.Fatal("record should get a generated id")
	}
	if rec.Instantiated {
		t.Fatal("placeholder record should not be instantiated")
	}
	if rec.IsCollection {
		t.Fatal("frame record should not be marked as collection")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("record should carry a creation timestamp")
	}
}

func TestNewRecordCollectionFlag(t *testing.T) {
	rec := NewRecord(Output("tile", "tiles", TypeFrameCollection))
	if !rec.IsCollection {
		t.Fatal("frame_collection record should be marked as collection")
	}
}

func TestInstantiateIsOneWay(t *testing.T) {
	rec := NewRecord(Output("blur", "out", TypeFrame))
	if err := rec.Instantiate("payload"); err != nil {
		t.Fatalf("first instantiation failed: %v", err)
	}
	if !rec.Instantiated || rec.Payload != "payload" {
		t.Fatalf("payload not attached: %+v", rec)
	}
	if rec.InstantiatedAt.IsZero() {
		t.Fatal("instantiation timestamp not set")
	}
	if err := rec.Instantiate("again"); err == nil {
		t.Fatal("second instantiation should fail")
	}
	if rec.Payload != "payload" {
		t.Fatalf("failed instantiation must not replace payload, got %v", rec.Payload)
	}
}

func TestNewInstantiatedRecord(t *testing.T) {
	rec := NewInstantiatedRecord(OutputAs(SeedOwner, "image", TypeFrame, SeedLinkID("image")), 7)
	if !rec.Instantiated {
		t.Fatal("seed record should be instantiated from the start")
	}
	if rec.Payload != 7 {
		t.Fatalf("unexpected payload %v", rec.Payload)
	}
	if err := rec.Instantiate(8); err == nil {
		t.Fatal("seed record should reject re-instantiation")
	}
}

func TestAttachInputGrows(t *testing.T) {
	rec := NewRecord(Output("blur", "out", TypeFrame))
	rec.AttachInput(Input("threshold", "in", TypeFrame, "blur.out", ""))
	rec.AttachInput(Input("label", "in", TypeFrame, "blur.out", ""))
	if len(rec.InputLinks) != 2 {
		t.Fatalf("expected 2 consumer links, got %d", len(rec.InputLinks))
	}
	if rec.InputLinks[0].OwnerID != "threshold" || rec.InputLinks[1].OwnerID != "label" {
		t.Fatalf("consumer links out of order: %+v", rec.InputLinks)
	}
}
