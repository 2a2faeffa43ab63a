package service

import (
	"encoding/base64"
	"testing"
)

func TestCartCookieRoundTrip(t *testing.T) {
	cart := Cart{
		1: {Quantity: 2, Selected: true},
		5: {Quantity: 1, Selected: false},
		9: {Quantity: 30, Selected: true},
	}

	encoded, err := EncodeCartCookie(cart)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded == "" {
		t.Fatalf("non-empty cart should not encode to empty value")
	}

	decoded := DecodeCartCookie(encoded)
	if len(decoded) != len(cart) {
		t.Fatalf("line count want %d got %d", len(cart), len(decoded))
	}
	for productID, line := range cart {
		got, ok := decoded[productID]
		if !ok {
			t.Fatalf("product %d missing after round trip", productID)
		}
		if got != line {
			t.Fatalf("product %d want %+v got %+v", productID, line, got)
		}
	}
}

func TestEncodeCartCookieEmpty(t *testing.T) {
	encoded, err := EncodeCartCookie(Cart{})
	if err != nil {
		t.Fatalf("encode empty cart failed: %v", err)
	}
	if encoded != "" {
		t.Fatalf("empty cart should encode to empty value, got %q", encoded)
	}
}

func TestEncodeCartCookieDropsInvalidLines(t *testing.T) {
	cart := Cart{
		1: {Quantity: 2, Selected: true},
		2: {Quantity: 0, Selected: true},
		3: {Quantity: -5, Selected: false},
	}

	encoded, err := EncodeCartCookie(cart)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded := DecodeCartCookie(encoded)
	if len(decoded) != 1 {
		t.Fatalf("only positive-quantity lines should survive, got %v", decoded)
	}
	if decoded[1].Quantity != 2 {
		t.Fatalf("product 1 quantity want 2 got %d", decoded[1].Quantity)
	}

	allInvalid := Cart{
		7: {Quantity: 0, Selected: true},
	}
	encoded, err = EncodeCartCookie(allInvalid)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "" {
		t.Fatalf("cart with only zero-quantity lines should encode to empty value")
	}
}

func TestDecodeCartCookieCorruptInput(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{name: "empty", value: ""},
		{name: "not base64", value: "%%%%"},
		{name: "not json", value: base64.RawURLEncoding.EncodeToString([]byte("hello"))},
		{name: "wrong version", value: mustEncodeRaw(t, `{"v":99,"items":{"1":{"q":2,"s":true}}}`)},
		{name: "missing version", value: mustEncodeRaw(t, `{"items":{"1":{"q":2,"s":true}}}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cart := DecodeCartCookie(tc.value)
			if len(cart) != 0 {
				t.Fatalf("corrupt cookie should decode to empty cart, got %v", cart)
			}
		})
	}
}

func TestDecodeCartCookieSanitizesLines(t *testing.T) {
	value := mustEncodeRaw(t, `{"v":1,"items":{"1":{"q":3,"s":true},"2":{"q":0,"s":true},"3":{"q":-1,"s":false}}}`)
	cart := DecodeCartCookie(value)
	if len(cart) != 1 {
		t.Fatalf("invalid lines should be dropped, got %v", cart)
	}
	if line := cart[1]; line.Quantity != 3 || !line.Selected {
		t.Fatalf("product 1 want {3 true} got %+v", line)
	}
}

func mustEncodeRaw(t *testing.T, raw string) string {
	t.Helper()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}
