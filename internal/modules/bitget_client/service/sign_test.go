package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func TestSignMessageLayout(t *testing.T) {
	secret := "test-secret"
	ts := "1700000000000"
	path := "/order/placeOrder"
	body := `{"symbol":"BTCUSDT_UMCBL"}`

	// сообщение — конкатенация ts+METHOD+path+body без разделителей
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(ts + "POST" + path + body))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))

	if got := Sign(secret, ts, "POST", path, body); got != want {
		t.Fatalf("Sign = %q, want %q", got, want)
	}
}

func TestSignDeterministic(t *testing.T) {
	a := Sign("s", "1", "GET", "/p", "")
	b := Sign("s", "1", "GET", "/p", "")
	if a != b {
		t.Fatalf("same inputs produced different signatures: %q vs %q", a, b)
	}
}

func TestSignUppercasesMethod(t *testing.T) {
	if Sign("s", "1", "get", "/p", "") != Sign("s", "1", "GET", "/p", "") {
		t.Fatal("method case must not affect the signature")
	}
}

func TestSignSensitivity(t *testing.T) {
	base := Sign("s", "1", "GET", "/p", "b")
	variants := []string{
		Sign("x", "1", "GET", "/p", "b"),
		Sign("s", "2", "GET", "/p", "b"),
		Sign("s", "1", "POST", "/p", "b"),
		Sign("s", "1", "GET", "/q", "b"),
		Sign("s", "1", "GET", "/p", "c"),
	}
	for i, v := range variants {
		if v == base {
			t.Fatalf("variant %d did not change the signature", i)
		}
	}
}

func TestSignEmptyBody(t *testing.T) {
	// GET без тела: в сообщении после path ничего нет
	h := hmac.New(sha256.New, []byte("s"))
	h.Write([]byte("1GET/market/ticker"))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))

	if got := Sign("s", "1", "GET", "/market/ticker", ""); got != want {
		t.Fatalf("Sign = %q, want %q", got, want)
	}
}
