package messages

import (
	"encoding/json"
	"testing"
)

func TestDecodePosition(t *testing.T) {
	raw := `{"type":"position","position":{"x":412.5,"y":233}}`

	msg, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	pos, ok := msg.(*PositionMessage)
	if !ok {
		t.Fatalf("expected *PositionMessage, got %T", msg)
	}
	if pos.Position.X != 412.5 || pos.Position.Y != 233 {
		t.Fatalf("unexpected position %+v", pos.Position)
	}
}

func TestDecodeHitResultWithCoords(t *testing.T) {
	raw := `{"type":"hit_result","hit":true,"hit_x":101,"hit_y":99,"target_x":100,"target_y":100}`

	msg, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	hr := msg.(*HitResultMessage)
	if !hr.Hit {
		t.Fatalf("expected hit")
	}
	if !hr.HasCoords() {
		t.Fatalf("expected full coordinate set")
	}
	if *hr.HitX != 101 || *hr.TargetY != 100 {
		t.Fatalf("unexpected coordinates %+v", hr)
	}
}

func TestDecodeHitResultMissingCoords(t *testing.T) {
	// A hit without coordinates is legal on the wire; the client degrades to
	// marker-only feedback.
	raw := `{"type":"hit_result","hit":true}`

	msg, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	hr := msg.(*HitResultMessage)
	if hr.HasCoords() {
		t.Fatalf("expected missing coordinates to be detectable")
	}
}

func TestDecodeSyncResponse(t *testing.T) {
	raw := `{"type":"sync_response","clientTime":1000,"serverRecvTime":1050,"serverSendTime":1050}`

	msg, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	sr := msg.(*SyncResponseMessage)
	if sr.ClientTime != 1000 || sr.ServerRecvTime != 1050 || sr.ServerSendTime != 1050 {
		t.Fatalf("unexpected sync response %+v", sr)
	}
}

func TestDecodeUnknownTypeIgnored(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"chat","text":"hello"}`))
	if err != nil {
		t.Fatalf("unknown type must not error: %v", err)
	}
	if msg != nil {
		t.Fatalf("unknown type must decode to nil, got %T", msg)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode([]byte(`{"type":`)); err == nil {
		t.Fatalf("expected error for malformed frame")
	}
}

func TestShootMessageWireFormat(t *testing.T) {
	out, err := json.Marshal(ShootMessage{
		Type:                TypeShoot,
		Timestamp:           4850,
		X:                   320,
		Y:                   240,
		Offset:              12,
		CompensationEnabled: true,
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	// Exact field names are part of the wire contract.
	var fields map[string]any
	if err := json.Unmarshal(out, &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"type", "timestamp", "x", "y", "offset", "compensation_enabled"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("missing wire field %q in %s", key, out)
		}
	}
}
