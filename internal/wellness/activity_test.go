package wellness

import "testing"

func TestActivityForUnknownType(t *testing.T) {
	if _, err := ActivityFor("yoga"); err == nil {
		t.Fatal("expected error for unknown activity type")
	}
}

func TestActivityTimedFlags(t *testing.T) {
	timed := map[ActivityType]bool{
		ActivityBreathing:   true,
		ActivityMiniMindful: true,
		ActivityGratitude:   false,
		ActivityReframe:     false,
		ActivityMindfulWalk: false,
		ActivityKindAct:     false,
	}
	for typ, want := range timed {
		act, err := ActivityFor(typ)
		if err != nil {
			t.Fatalf("ActivityFor(%q): %v", typ, err)
		}
		if act.Timed() != want {
			t.Errorf("%q timed = %v, want %v", typ, act.Timed(), want)
		}
	}
}

func TestValidatePayload(t *testing.T) {
	tests := []struct {
		name    string
		typ     ActivityType
		payload Payload
		wantErr bool
	}{
		{"gratitude complete", ActivityGratitude, Payload{Gratitude: []string{"sun", "coffee", "friends"}}, false},
		{"gratitude short", ActivityGratitude, Payload{Gratitude: []string{"sun", "", "  "}}, true},
		{"reframe complete", ActivityReframe, Payload{Negative: "I always fail", Balanced: "I sometimes struggle and often succeed"}, false},
		{"reframe missing balanced", ActivityReframe, Payload{Negative: "I always fail"}, true},
		{"kind act complete", ActivityKindAct, Payload{Act: "helped a neighbor"}, false},
		{"kind act empty", ActivityKindAct, Payload{Act: "   "}, true},
		{"walk confirmed", ActivityMindfulWalk, Payload{Completed: true}, false},
		{"walk unconfirmed", ActivityMindfulWalk, Payload{}, true},
		{"breathing via timer", ActivityBreathing, TimedPayload(), false},
		{"breathing not completed", ActivityBreathing, Payload{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := ActivityFor(tt.typ)
			if err != nil {
				t.Fatalf("ActivityFor: %v", err)
			}
			err = act.ValidatePayload(tt.payload)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePayload() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
