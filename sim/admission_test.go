package sim

import "testing"

func TestStrictValidator_ValidateExternal(t *testing.T) {
	cfg := DefaultConfig().Building
	v := &StrictValidator{}

	tests := []struct {
		name        string
		origin      int
		destination int
		wantErr     bool
		wantKind    Kind
	}{
		{"valid pair", 1, 5, false, ""},
		{"origin equals destination", 4, 4, true, KindInvalidInput},
		{"origin below range", 0, 5, true, KindInvalidInput},
		{"destination above range", 1, cfg.NFloors + 1, true, KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateExternal(cfg, tt.origin, tt.destination)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.wantErr {
				se, ok := err.(*Error)
				if !ok || se.Kind != tt.wantKind {
					t.Errorf("expected kind %s, got %v", tt.wantKind, err)
				}
			}
		})
	}
}

func TestStrictValidator_ValidateInternal(t *testing.T) {
	cfg := DefaultConfig().Building
	v := &StrictValidator{}

	t.Run("rejects full elevator", func(t *testing.T) {
		e := NewElevator("e0", 1, 6, 0)
		e.PassengerCount = 6
		err := v.ValidateInternal(cfg, e, 5)
		se, ok := err.(*Error)
		if !ok || se.Kind != KindFull {
			t.Errorf("expected KindFull, got %v", err)
		}
	})

	t.Run("rejects out of range destination", func(t *testing.T) {
		e := NewElevator("e0", 1, 6, 0)
		err := v.ValidateInternal(cfg, e, cfg.NFloors+5)
		se, ok := err.(*Error)
		if !ok || se.Kind != KindInvalidInput {
			t.Errorf("expected KindInvalidInput, got %v", err)
		}
	})

	t.Run("admits within capacity", func(t *testing.T) {
		e := NewElevator("e0", 1, 6, 0)
		e.PassengerCount = 3
		if err := v.ValidateInternal(cfg, e, 5); err != nil {
			t.Errorf("expected admission, got %v", err)
		}
	})
}

func TestNewRequestValidator_ValidNames(t *testing.T) {
	t.Run("strict", func(t *testing.T) {
		v := NewRequestValidator("strict")
		if _, ok := v.(*StrictValidator); !ok {
			t.Errorf("expected *StrictValidator, got %T", v)
		}
	})
	t.Run("empty string returns strict", func(t *testing.T) {
		v := NewRequestValidator("")
		if _, ok := v.(*StrictValidator); !ok {
			t.Errorf("expected *StrictValidator for empty string, got %T", v)
		}
	})
}

func TestNewRequestValidator_InvalidName_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unknown validator name")
		}
	}()
	NewRequestValidator("lenient")
}
