package domain

import (
	"errors"
	"testing"
)

func TestObjectTypeStringRoundTrip(t *testing.T) {
	for i := 0; i < NumObjectTypes; i++ {
		typ := ObjectType(i)
		parsed, err := ParseObjectType(typ.String())
		if err != nil {
			t.Fatalf("ParseObjectType(%q) error = %v", typ.String(), err)
		}
		if parsed != typ {
			t.Errorf("ParseObjectType(%q) = %v, want %v", typ.String(), parsed, typ)
		}
	}
}

func TestParseObjectTypeUnknown(t *testing.T) {
	_, err := ParseObjectType("modem")
	if !errors.Is(err, ErrUnknownObjectType) {
		t.Errorf("error = %v, want ErrUnknownObjectType", err)
	}
}

func TestTypeValidity(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"first object type", KnownNetworkType.Valid(), true},
		{"last object type", NetworkType.Valid(), true},
		{"object type past end", ObjectType(NumObjectTypes).Valid(), false},
		{"negative object type", ObjectType(-1).Valid(), false},
		{"first couple type", AdapterDevice.Valid(), true},
		{"couple type past end", CoupleType(NumCoupleTypes).Valid(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Valid() = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestSideOther(t *testing.T) {
	if Side0.Other() != Side1 || Side1.Other() != Side0 {
		t.Errorf("Other() does not swap sides")
	}
}

func TestOutOfRangeNames(t *testing.T) {
	if got := ObjectType(42).String(); got != "object_type(42)" {
		t.Errorf("String() = %q", got)
	}
	if got := CoupleType(9).String(); got != "couple_type(9)" {
		t.Errorf("String() = %q", got)
	}
}
