package detector

import (
	"encoding/json"
	"testing"
)

func responseLine(t *testing.T, hands []jsonHand) []byte {
	t.Helper()

	line, err := json.Marshal(struct {
		Hands []jsonHand `json:"hands"`
	}{Hands: hands})
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return line
}

func fullHand() jsonHand {
	h := jsonHand{Handedness: "Right", Score: 0.9}
	for i := 0; i < NumLandmarks; i++ {
		h.Points = append(h.Points, jsonPoint{X: float64(i) * 0.01, Y: 0.5, Z: 0})
	}
	return h
}

func TestParseHands(t *testing.T) {
	t.Run("full hand round-trips", func(t *testing.T) {
		hands, err := parseHands(responseLine(t, []jsonHand{fullHand()}))
		if err != nil {
			t.Fatalf("parseHands() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
		if hands[0].Handedness != "Right" {
			t.Errorf("expected handedness Right, got %s", hands[0].Handedness)
		}
		if hands[0].Points[IndexTip].X != float64(IndexTip)*0.01 {
			t.Errorf("unexpected index tip X %f", hands[0].Points[IndexTip].X)
		}
	})

	t.Run("short hand is dropped", func(t *testing.T) {
		short := fullHand()
		short.Points = short.Points[:NumLandmarks-1]

		hands, err := parseHands(responseLine(t, []jsonHand{short, fullHand()}))
		if err != nil {
			t.Fatalf("parseHands() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected the short hand to be dropped, got %d hands", len(hands))
		}
		// The surviving hand is the complete one, not a zero-padded copy.
		if hands[0].Points[PinkyTip].X != float64(PinkyTip)*0.01 {
			t.Errorf("unexpected pinky tip X %f", hands[0].Points[PinkyTip].X)
		}
	})

	t.Run("no hands", func(t *testing.T) {
		hands, err := parseHands([]byte(`{"hands": []}`))
		if err != nil {
			t.Fatalf("parseHands() error = %v", err)
		}
		if len(hands) != 0 {
			t.Errorf("expected no hands, got %d", len(hands))
		}
	})

	t.Run("malformed line errors", func(t *testing.T) {
		if _, err := parseHands([]byte("{not json")); err == nil {
			t.Error("expected an error for a malformed response line")
		}
	})
}
